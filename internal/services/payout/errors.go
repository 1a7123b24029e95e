package payout

import (
	"fmt"

	"github.com/KirkDiggler/starwheel/internal/models"
)

// PayoutError is a custom error type for settlement errors
type PayoutError string

// Error implements the error interface
func (e PayoutError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrSettlementFailed PayoutError = "settlement failed"
	ErrRoundNotFound    PayoutError = "round not found"
	ErrRoundNotDrawing  PayoutError = "round is not drawing"
	ErrNumbersMismatch  PayoutError = "winning numbers differ from the recorded draw"
	ErrNilConfig        PayoutError = "config cannot be nil"
	ErrNilStore         PayoutError = "store cannot be nil"
	ErrNilRoundRepo     PayoutError = "round repository cannot be nil"
	ErrNilLocker        PayoutError = "locker cannot be nil"
	ErrNilClock         PayoutError = "clock cannot be nil"
	ErrNilUUIDGenerator PayoutError = "UUID generator cannot be nil"
)

// SettlementFailedError reports a settlement that did not commit cleanly.
// Applied lists the payouts whose credit reached the ledger.
type SettlementFailedError struct {
	RoundID string
	Planned []models.Payout
	Applied []models.Payout
	Err     error
}

func (e *SettlementFailedError) Error() string {
	return fmt.Sprintf("settlement of round %s failed after %d of %d payouts: %v",
		e.RoundID, len(e.Applied), len(e.Planned), e.Err)
}

func (e *SettlementFailedError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrSettlementFailed) hold
func (e *SettlementFailedError) Is(target error) bool {
	return target == ErrSettlementFailed
}
