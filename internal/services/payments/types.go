package payments

import (
	"github.com/KirkDiggler/starwheel/internal/common/clock"
	"github.com/KirkDiggler/starwheel/internal/common/keylock"
	"github.com/KirkDiggler/starwheel/internal/common/uuid"
	"github.com/KirkDiggler/starwheel/internal/models"
	"github.com/KirkDiggler/starwheel/internal/providers"
	ledgerRepo "github.com/KirkDiggler/starwheel/internal/repositories/ledger"
	"github.com/KirkDiggler/starwheel/internal/repositories/store"
	"go.uber.org/zap"
)

// Config holds configuration for the payments service
type Config struct {
	Store      store.Store
	LedgerRepo ledgerRepo.Repository

	PaymentProvider providers.PaymentProvider
	Locker          *keylock.Locker

	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	Logger *zap.Logger
}

// CreateChargeInput contains parameters for starting a top-up
type CreateChargeInput struct {
	PlayerID string
	Amount   int64
}

// ConfirmChargeInput identifies a charge by its provider id
type ConfirmChargeInput struct {
	ChargeID string
}

// ConfirmChargeOutput contains the confirmed charge
type ConfirmChargeOutput struct {
	Charge  *models.Charge
	Balance int64

	// AlreadyConfirmed is true when an earlier call did the credit
	AlreadyConfirmed bool
}

// RecordWithdrawalInput contains a provider payout to debit
type RecordWithdrawalInput struct {
	PayoutID string
	PlayerID string
	Amount   int64
}

// RecordWithdrawalOutput contains the recorded withdrawal
type RecordWithdrawalOutput struct {
	Charge  *models.Charge
	Balance int64

	// AlreadyRecorded is true when an earlier call did the debit
	AlreadyRecorded bool
}
