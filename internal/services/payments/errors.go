package payments

import "github.com/KirkDiggler/starwheel/internal/services/ledger"

// PaymentError is a custom error type for payment errors
type PaymentError string

// Error implements the error interface
func (e PaymentError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrChargeNotFound     PaymentError = "charge not found"
	ErrChargeMismatch     PaymentError = "charge belongs to a different operation"
	ErrPlayerNotFound     PaymentError = "player not found"
	ErrInvalidAmount      PaymentError = "amount must be positive"
	ErrNilConfig          PaymentError = "config cannot be nil"
	ErrNilStore           PaymentError = "store cannot be nil"
	ErrNilLedgerRepo      PaymentError = "ledger repository cannot be nil"
	ErrNilPaymentProvider PaymentError = "payment provider cannot be nil"
	ErrNilLocker          PaymentError = "locker cannot be nil"
	ErrNilClock           PaymentError = "clock cannot be nil"
	ErrNilUUIDGenerator   PaymentError = "UUID generator cannot be nil"
)

// ErrInsufficientFunds is returned by RecordWithdrawal when the balance is too low
const ErrInsufficientFunds = ledger.ErrInsufficientFunds
