package messaging

import (
	"github.com/KirkDiggler/starwheel/internal/draw"
	"github.com/KirkDiggler/starwheel/internal/models"
)

// MessageTone represents the tone of a message
type MessageTone string

const (
	ToneNeutral     MessageTone = "neutral"
	ToneFunny       MessageTone = "funny"
	ToneEncouraging MessageTone = "encouraging"
	ToneCelebration MessageTone = "celebration"
)

// Config contains configuration for the messaging service
type Config struct {
	// Source picks among equivalent messages
	Source draw.Source
}

// MessageOutput contains a generated message
type MessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetJoinMessageInput contains parameters for a join message
type GetJoinMessageInput struct {
	PlayerName string

	// Number is the wheel number the player was seated on
	Number int

	SeatsLeft int
}

// GetLeaveMessageInput contains parameters for a leave message
type GetLeaveMessageInput struct {
	PlayerName string
	Refund     int64
}

// GetResultMessageInput contains parameters for a result message
type GetResultMessageInput struct {
	PlayerName string
	Numbers    models.WinningNumbers

	// Payout is the player's prize, nil when they won nothing
	Payout *models.Payout
}

// GetErrorMessageInput contains the error to explain
type GetErrorMessageInput struct {
	Err error
}
