package payout

import (
	"github.com/KirkDiggler/starwheel/internal/common/clock"
	"github.com/KirkDiggler/starwheel/internal/common/keylock"
	"github.com/KirkDiggler/starwheel/internal/common/uuid"
	"github.com/KirkDiggler/starwheel/internal/draw"
	"github.com/KirkDiggler/starwheel/internal/models"
	roundRepo "github.com/KirkDiggler/starwheel/internal/repositories/round"
	"github.com/KirkDiggler/starwheel/internal/repositories/store"
	"go.uber.org/zap"
)

// Config holds configuration for the payout coordinator
type Config struct {
	// Split defaults to draw.DefaultSplit
	Split *draw.Split

	Store     store.Store
	RoundRepo roundRepo.Repository
	Locker    *keylock.Locker

	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// Logger defaults to a no-op logger
	Logger *zap.Logger
}

// SettleInput contains parameters for settling a round
type SettleInput struct {
	RoundID string

	// Numbers must match the numbers recorded when the round entered drawing
	Numbers models.WinningNumbers
}

// SettleOutput contains the result of settling a round
type SettleOutput struct {
	Record *models.SettlementRecord
}
