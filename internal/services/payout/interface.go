package payout

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/starwheel/internal/services/payout Service

import "context"

// Service credits the winners of a drawn round and finalizes it
type Service interface {
	// Settle pays out a drawing round and moves it to settled in one unit
	Settle(ctx context.Context, input *SettleInput) (*SettleOutput, error)
}
