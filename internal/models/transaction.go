package models

import (
	"time"
)

// TransactionKind represents why a balance changed
type TransactionKind string

const (
	// TransactionKindEntryStake is the entry fee debited when a player joins a round
	TransactionKindEntryStake TransactionKind = "entry_stake"

	// TransactionKindEntryRefund is the compensating credit written when a player leaves an open round
	TransactionKindEntryRefund TransactionKind = "entry_refund"

	// TransactionKindPrizePayout is a prize share credited at settlement
	TransactionKindPrizePayout TransactionKind = "prize_payout"

	// TransactionKindBalanceTopup is a purchase confirmed by the payment provider
	TransactionKindBalanceTopup TransactionKind = "balance_topup"

	// TransactionKindWithdrawal is a payout executed by the payment provider
	TransactionKindWithdrawal TransactionKind = "withdrawal"
)

// IsCredit reports whether the kind adds to a balance
func (k TransactionKind) IsCredit() bool {
	switch k {
	case TransactionKindEntryRefund, TransactionKindPrizePayout, TransactionKindBalanceTopup:
		return true
	}
	return false
}

// Valid reports whether k is a known kind
func (k TransactionKind) Valid() bool {
	switch k {
	case TransactionKindEntryStake, TransactionKindEntryRefund, TransactionKindPrizePayout,
		TransactionKindBalanceTopup, TransactionKindWithdrawal:
		return true
	}
	return false
}

// Transaction is an append-only audit record of one balance change.
// Records are never updated or deleted once written.
type Transaction struct {
	ID       string          `json:"id"`
	PlayerID string          `json:"playerId"`
	Kind     TransactionKind `json:"kind"`

	// Amount is always non-negative; direction follows from Kind
	Amount int64 `json:"amount"`

	// BalanceAfter is the player's balance once this record was applied
	BalanceAfter int64 `json:"balanceAfter"`

	// RoundID is set for stakes, refunds and prizes
	RoundID string `json:"roundId,omitempty"`

	// Reference is the provider charge or payout id for top-ups and withdrawals
	Reference string `json:"reference,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}
