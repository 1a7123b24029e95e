package player

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/starwheel/internal/services/player Service

import (
	"context"

	"github.com/KirkDiggler/starwheel/internal/models"
)

// Service defines player account operations
type Service interface {
	// Authenticate resolves a credential and returns the player's account,
	// creating it on first sight
	Authenticate(ctx context.Context, input *AuthenticateInput) (*AuthenticateOutput, error)

	// GetAccount returns a player's account
	GetAccount(ctx context.Context, input *GetAccountInput) (*models.Account, error)

	// GetLeaderboard returns players ranked by total winnings
	GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error)
}
