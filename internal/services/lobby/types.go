package lobby

import (
	"github.com/KirkDiggler/starwheel/internal/common/clock"
	"github.com/KirkDiggler/starwheel/internal/common/keylock"
	"github.com/KirkDiggler/starwheel/internal/common/uuid"
	"github.com/KirkDiggler/starwheel/internal/draw"
	"github.com/KirkDiggler/starwheel/internal/models"
	roundRepo "github.com/KirkDiggler/starwheel/internal/repositories/round"
	"github.com/KirkDiggler/starwheel/internal/repositories/store"
	"github.com/KirkDiggler/starwheel/internal/services/payout"
	"go.uber.org/zap"
)

const (
	DefaultCapacity   = 10
	DefaultEntryFee   = 10
	DefaultMinPlayers = 2
)

// Config holds configuration for the lobby service
type Config struct {
	// Capacity is the number of seats and wheel numbers of a new round
	Capacity int

	// EntryFee is the stake debited on join. Nil means DefaultEntryFee;
	// zero makes rounds free to enter.
	EntryFee *int64

	// MinPlayers is the number of human entries needed to lock
	MinPlayers int

	// Storage dependencies
	Store     store.Store
	RoundRepo roundRepo.Repository

	// Service dependencies
	PayoutService payout.Service
	Source        draw.Source
	Locker        *keylock.Locker

	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// Logger defaults to a no-op logger
	Logger *zap.Logger
}

// RoundOutput is a read-only round snapshot
type RoundOutput struct {
	Round     *models.Round
	Pool      int64
	SeatsLeft int
}

// JoinInput contains parameters for joining a round
type JoinInput struct {
	RoundID  string
	PlayerID string

	// DisplayName and AvatarRef override the account's own for this entry
	DisplayName string
	AvatarRef   string
}

// JoinOutput contains the result of joining a round
type JoinOutput struct {
	Round          *RoundOutput
	AssignedNumber int

	// Balance is the player's balance after the entry fee
	Balance int64
}

// LeaveInput contains parameters for leaving a round
type LeaveInput struct {
	RoundID  string
	PlayerID string
}

// LeaveOutput contains the result of leaving a round
type LeaveOutput struct {
	Round   *RoundOutput
	Balance int64
}

// AddBotInput contains parameters for seating a house entry
type AddBotInput struct {
	RoundID string
}

// AddBotOutput contains the seated bot entry
type AddBotOutput struct {
	Round *RoundOutput
	Entry models.Entry
}

// LockInput contains parameters for locking a round
type LockInput struct {
	RoundID string
}

// BeginDrawInput contains parameters for drawing a round
type BeginDrawInput struct {
	RoundID string
}

// BeginDrawOutput contains the settlement produced by a draw
type BeginDrawOutput struct {
	Record *models.SettlementRecord
}

// RetrySettlementInput contains parameters for re-settling a failed round
type RetrySettlementInput struct {
	RoundID string
}

// ArchiveInput contains parameters for archiving a round
type ArchiveInput struct {
	RoundID string
}

// GetRoundInput contains parameters for reading a round
type GetRoundInput struct {
	RoundID string
}

// GetSettlementInput contains parameters for reading a settlement
type GetSettlementInput struct {
	RoundID string
}

// GetSettlementOutput contains a settlement record
type GetSettlementOutput struct {
	Record *models.SettlementRecord
}

// ListRoundsInput contains parameters for listing rounds
type ListRoundsInput struct {
	Limit  int
	Status models.RoundStatus
}

// ListRoundsOutput contains recent rounds
type ListRoundsOutput struct {
	Rounds []*RoundOutput
}
