package account

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/starwheel/internal/repositories/account Repository

import (
	"context"

	"github.com/KirkDiggler/starwheel/internal/models"
)

// Repository defines read access to player accounts. Writes go through the
// store unit of work so balances and ledger records commit together.
type Repository interface {
	// GetAccount retrieves an account by player ID
	GetAccount(ctx context.Context, input *GetAccountInput) (*models.Account, error)

	// GetLeaderboard retrieves accounts ordered by total winnings
	GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error)
}
