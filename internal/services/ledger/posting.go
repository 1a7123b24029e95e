package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/KirkDiggler/starwheel/internal/metrics"
	"github.com/KirkDiggler/starwheel/internal/models"
	accountRepo "github.com/KirkDiggler/starwheel/internal/repositories/account"
	"github.com/KirkDiggler/starwheel/internal/repositories/store"
)

// Posting is one balance change applied inside a caller's unit of work
type Posting struct {
	// ID becomes the transaction record ID
	ID       string
	PlayerID string
	Kind     models.TransactionKind
	Amount   int64
	RoundID  string

	// Reference is the provider charge or payout ID, if any
	Reference string
	At        time.Time
}

// ApplyDebit checks and decrements a balance and buffers the audit record
// on tx. Nothing is written unless the caller's unit of work commits.
func ApplyDebit(ctx context.Context, tx store.Tx, p Posting) (*models.Account, *models.Transaction, error) {
	if p.Kind.IsCredit() || !p.Kind.Valid() {
		return nil, nil, ErrInvalidKind
	}
	return apply(ctx, tx, p, -1)
}

// ApplyCredit increments a balance and buffers the audit record on tx
func ApplyCredit(ctx context.Context, tx store.Tx, p Posting) (*models.Account, *models.Transaction, error) {
	if !p.Kind.IsCredit() {
		return nil, nil, ErrInvalidKind
	}
	return apply(ctx, tx, p, 1)
}

func apply(ctx context.Context, tx store.Tx, p Posting, sign int64) (*models.Account, *models.Transaction, error) {
	if p.Amount < 0 {
		return nil, nil, ErrInvalidAmount
	}

	account, err := tx.GetAccount(ctx, p.PlayerID)
	if err != nil {
		if errors.Is(err, accountRepo.ErrAccountNotFound) {
			return nil, nil, ErrAccountNotFound
		}
		return nil, nil, err
	}

	if sign < 0 && account.Balance < p.Amount {
		return nil, nil, ErrInsufficientFunds
	}

	account.Balance += sign * p.Amount
	account.UpdatedAt = p.At
	if err := tx.PutAccount(account); err != nil {
		return nil, nil, err
	}

	txn := &models.Transaction{
		ID:           p.ID,
		PlayerID:     p.PlayerID,
		Kind:         p.Kind,
		Amount:       p.Amount,
		BalanceAfter: account.Balance,
		RoundID:      p.RoundID,
		Reference:    p.Reference,
		CreatedAt:    p.At,
	}
	if err := tx.AppendTransaction(txn); err != nil {
		return nil, nil, err
	}

	return account, txn, nil
}

// RecordCommitted reports committed postings to metrics
func RecordCommitted(txns ...*models.Transaction) {
	for _, txn := range txns {
		if txn != nil {
			metrics.RecordPosting(string(txn.Kind), txn.Amount)
		}
	}
}
