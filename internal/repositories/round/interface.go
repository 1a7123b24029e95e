package round

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/starwheel/internal/repositories/round Repository

import (
	"context"

	"github.com/KirkDiggler/starwheel/internal/models"
)

// Repository defines read access to rounds
type Repository interface {
	// GetRound retrieves a round by ID
	GetRound(ctx context.Context, input *GetRoundInput) (*models.Round, error)

	// GetCurrentRound retrieves the round currently accepting players
	GetCurrentRound(ctx context.Context) (*models.Round, error)

	// ListRounds retrieves the most recently created rounds, newest first
	ListRounds(ctx context.Context, input *ListRoundsInput) (*ListRoundsOutput, error)
}
