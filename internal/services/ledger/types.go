package ledger

import (
	"github.com/KirkDiggler/starwheel/internal/common/clock"
	"github.com/KirkDiggler/starwheel/internal/common/keylock"
	"github.com/KirkDiggler/starwheel/internal/common/uuid"
	"github.com/KirkDiggler/starwheel/internal/models"
	accountRepo "github.com/KirkDiggler/starwheel/internal/repositories/account"
	ledgerRepo "github.com/KirkDiggler/starwheel/internal/repositories/ledger"
	"github.com/KirkDiggler/starwheel/internal/repositories/store"
	"go.uber.org/zap"
)

// Config holds configuration for the ledger service
type Config struct {
	// Storage dependencies
	Store       store.Store
	AccountRepo accountRepo.Repository
	LedgerRepo  ledgerRepo.Repository

	// Locker serializes balance mutations per player in this process
	Locker *keylock.Locker

	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// Logger defaults to a no-op logger
	Logger *zap.Logger
}

// DebitInput contains parameters for removing stars from a balance
type DebitInput struct {
	PlayerID string
	Amount   int64

	// Kind defaults to withdrawal
	Kind models.TransactionKind

	RoundID   string
	Reference string
}

// CreditInput contains parameters for adding stars to a balance
type CreditInput struct {
	PlayerID string
	Amount   int64

	// Kind defaults to balance_topup
	Kind models.TransactionKind

	RoundID   string
	Reference string
}

// PostingOutput contains the result of a debit or credit
type PostingOutput struct {
	// Balance is the balance after the posting
	Balance int64

	// Transaction is the audit record written with the posting
	Transaction *models.Transaction
}

// BalanceOfInput contains parameters for reading a balance
type BalanceOfInput struct {
	PlayerID string
}

// BalanceOfOutput contains a player's balance
type BalanceOfOutput struct {
	Balance int64
}

// ListTransactionsInput selects audit records by player or by round.
// PlayerID wins when both are set.
type ListTransactionsInput struct {
	PlayerID string
	RoundID  string
	Limit    int
}

// ListTransactionsOutput contains audit records
type ListTransactionsOutput struct {
	Transactions []*models.Transaction
}
