package messaging

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/starwheel/internal/services/messaging Service

import "context"

// Service picks the player-facing text shown next to lobby events
type Service interface {
	// GetJoinMessage returns a message for a player taking a seat
	GetJoinMessage(ctx context.Context, input *GetJoinMessageInput) (*MessageOutput, error)

	// GetLeaveMessage returns a message for a player giving up a seat
	GetLeaveMessage(ctx context.Context, input *GetLeaveMessageInput) (*MessageOutput, error)

	// GetResultMessage returns a message for a player's outcome in a settled round
	GetResultMessage(ctx context.Context, input *GetResultMessageInput) (*MessageOutput, error)

	// GetErrorMessage returns a user-friendly message for a rejected request
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*MessageOutput, error)
}
