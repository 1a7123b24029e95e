package lobby

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/starwheel/internal/services/lobby Service

import "context"

// Service defines the round lifecycle: open, locked, drawing, settled, archived
type Service interface {
	// GetOrCreateOpenRound returns the open round, creating one if none exists
	GetOrCreateOpenRound(ctx context.Context) (*RoundOutput, error)

	// Join debits the entry fee and seats the player on a free number
	Join(ctx context.Context, input *JoinInput) (*JoinOutput, error)

	// Leave removes the player from an open round and refunds the entry fee
	Leave(ctx context.Context, input *LeaveInput) (*LeaveOutput, error)

	// AddBot seats a house entry that pays no stake
	AddBot(ctx context.Context, input *AddBotInput) (*AddBotOutput, error)

	// Lock freezes the roster of an open round
	Lock(ctx context.Context, input *LockInput) (*RoundOutput, error)

	// BeginDraw draws the winning numbers of a locked round and settles it
	BeginDraw(ctx context.Context, input *BeginDrawInput) (*BeginDrawOutput, error)

	// RetrySettlement settles a drawing round again with its recorded numbers
	RetrySettlement(ctx context.Context, input *RetrySettlementInput) (*BeginDrawOutput, error)

	// Archive moves a settled round out of the live history
	Archive(ctx context.Context, input *ArchiveInput) (*RoundOutput, error)

	// GetRound returns a read-only round snapshot
	GetRound(ctx context.Context, input *GetRoundInput) (*RoundOutput, error)

	// GetCurrentRound returns the open round without creating one
	GetCurrentRound(ctx context.Context) (*RoundOutput, error)

	// GetSettlement returns the settlement record of a settled round
	GetSettlement(ctx context.Context, input *GetSettlementInput) (*GetSettlementOutput, error)

	// ListRounds returns recent rounds, newest first
	ListRounds(ctx context.Context, input *ListRoundsInput) (*ListRoundsOutput, error)
}
