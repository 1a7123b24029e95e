package store

import (
	"context"

	"github.com/KirkDiggler/starwheel/internal/models"
)

// Store runs read-modify-write units of work against Redis
type Store interface {
	// Atomically runs fn and commits every write it buffered in one MULTI/EXEC.
	// fn is re-run from scratch when a key it read changed before commit, so it
	// must not have side effects outside tx.
	Atomically(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the view of storage inside one unit of work. Reads watch their key
// and observe the unit's own buffered writes. Writes are buffered until commit.
type Tx interface {
	// GetAccount returns account.ErrAccountNotFound when the player has no account
	GetAccount(ctx context.Context, playerID string) (*models.Account, error)
	PutAccount(account *models.Account) error

	// GetRound returns round.ErrRoundNotFound when the round does not exist
	GetRound(ctx context.Context, roundID string) (*models.Round, error)
	PutRound(round *models.Round) error

	// CurrentRoundID returns "" when no round is open
	CurrentRoundID(ctx context.Context) (string, error)
	SetCurrentRound(roundID string)
	ClearCurrentRound()

	// AppendTransaction writes an immutable ledger record and indexes it
	AppendTransaction(txn *models.Transaction) error

	// GetCharge returns ledger.ErrChargeNotFound when the charge is unknown
	GetCharge(ctx context.Context, chargeID string) (*models.Charge, error)
	PutCharge(charge *models.Charge) error
}
