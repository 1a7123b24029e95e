package ledger

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/starwheel/internal/repositories/ledger Repository

import (
	"context"

	"github.com/KirkDiggler/starwheel/internal/models"
)

// Repository defines read access to the transaction log and payment charges
type Repository interface {
	// GetTransaction retrieves a single transaction record
	GetTransaction(ctx context.Context, input *GetTransactionInput) (*models.Transaction, error)

	// ListTransactionsForPlayer retrieves a player's transactions, newest first
	ListTransactionsForPlayer(ctx context.Context, input *ListTransactionsForPlayerInput) (*ListTransactionsOutput, error)

	// ListTransactionsForRound retrieves the transactions tied to a round, oldest first
	ListTransactionsForRound(ctx context.Context, input *ListTransactionsForRoundInput) (*ListTransactionsOutput, error)

	// GetCharge retrieves a payment charge by its provider-issued ID
	GetCharge(ctx context.Context, input *GetChargeInput) (*models.Charge, error)
}
