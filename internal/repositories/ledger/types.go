package ledger

import "github.com/KirkDiggler/starwheel/internal/models"

// GetTransactionInput contains parameters for retrieving a transaction
type GetTransactionInput struct {
	TransactionID string
}

// ListTransactionsForPlayerInput contains parameters for retrieving a player's transactions
type ListTransactionsForPlayerInput struct {
	PlayerID string

	// Limit caps the number of records, defaults to 50
	Limit int
}

// ListTransactionsForRoundInput contains parameters for retrieving a round's transactions
type ListTransactionsForRoundInput struct {
	RoundID string
}

// ListTransactionsOutput contains a page of transaction records
type ListTransactionsOutput struct {
	Transactions []*models.Transaction
}

// GetChargeInput contains parameters for retrieving a charge
type GetChargeInput struct {
	ChargeID string
}
