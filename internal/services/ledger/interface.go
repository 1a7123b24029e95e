package ledger

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/starwheel/internal/services/ledger Service

import "context"

// Service defines balance operations on player accounts
type Service interface {
	// Debit removes stars from a balance, failing when the balance is too low
	Debit(ctx context.Context, input *DebitInput) (*PostingOutput, error)

	// Credit adds stars to a balance
	Credit(ctx context.Context, input *CreditInput) (*PostingOutput, error)

	// BalanceOf returns the latest committed balance
	BalanceOf(ctx context.Context, input *BalanceOfInput) (*BalanceOfOutput, error)

	// ListTransactions returns audit records for a player or a round
	ListTransactions(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error)
}
