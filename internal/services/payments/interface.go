package payments

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/starwheel/internal/services/payments Service

import (
	"context"

	"github.com/KirkDiggler/starwheel/internal/models"
)

// Service defines the payment-provider confirmation entry points. Every
// mutation is keyed by the provider's id so a replayed call is a no-op.
type Service interface {
	// CreateCharge starts a top-up at the provider and records it as pending
	CreateCharge(ctx context.Context, input *CreateChargeInput) (*models.Charge, error)

	// ConfirmCharge credits a pending top-up exactly once
	ConfirmCharge(ctx context.Context, input *ConfirmChargeInput) (*ConfirmChargeOutput, error)

	// RecordWithdrawal debits a provider payout exactly once
	RecordWithdrawal(ctx context.Context, input *RecordWithdrawalInput) (*RecordWithdrawalOutput, error)
}
