package models

import (
	"time"
)

// ChargeDirection tells whether a provider operation adds or removes stars
type ChargeDirection string

const (
	ChargeDirectionTopup      ChargeDirection = "topup"
	ChargeDirectionWithdrawal ChargeDirection = "withdrawal"
)

// ChargeStatus is the confirmation state of a provider operation
type ChargeStatus string

const (
	ChargeStatusPending   ChargeStatus = "pending"
	ChargeStatusConfirmed ChargeStatus = "confirmed"
)

// Charge tracks one payment-provider operation keyed by the provider's id so a
// duplicated confirmation never touches the ledger twice
type Charge struct {
	// ID is issued by the payment provider
	ID        string          `json:"id"`
	PlayerID  string          `json:"playerId"`
	Amount    int64           `json:"amount"`
	Direction ChargeDirection `json:"direction"`
	Status    ChargeStatus    `json:"status"`

	// PaymentURL is where the player completes a pending top-up
	PaymentURL string `json:"paymentUrl,omitempty"`

	// TransactionID is the ledger record written on confirmation
	TransactionID string `json:"transactionId,omitempty"`

	CreatedAt   time.Time  `json:"createdAt"`
	ConfirmedAt *time.Time `json:"confirmedAt,omitempty"`
}
