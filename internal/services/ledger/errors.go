package ledger

// LedgerError is a custom error type for balance-related errors
type LedgerError string

// Error implements the error interface
func (e LedgerError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInsufficientFunds LedgerError = "insufficient funds"
	ErrInvalidAmount     LedgerError = "amount must not be negative"
	ErrInvalidKind       LedgerError = "transaction kind does not match posting direction"
	ErrAccountNotFound   LedgerError = "account not found"
	ErrNilConfig         LedgerError = "config cannot be nil"
	ErrNilStore          LedgerError = "store cannot be nil"
	ErrNilAccountRepo    LedgerError = "account repository cannot be nil"
	ErrNilLedgerRepo     LedgerError = "ledger repository cannot be nil"
	ErrNilLocker         LedgerError = "locker cannot be nil"
	ErrNilClock          LedgerError = "clock cannot be nil"
	ErrNilUUIDGenerator  LedgerError = "UUID generator cannot be nil"
)
