package api

import (
	"github.com/KirkDiggler/starwheel/internal/models"
	"github.com/KirkDiggler/starwheel/internal/services/lobby"
)

type roundView struct {
	Round     *models.Round `json:"round"`
	Pool      int64         `json:"pool"`
	SeatsLeft int           `json:"seatsLeft"`
}

func newRoundView(out *lobby.RoundOutput) *roundView {
	if out == nil {
		return nil
	}
	return &roundView{
		Round:     out.Round,
		Pool:      out.Pool,
		SeatsLeft: out.SeatsLeft,
	}
}

type authRequest struct {
	Credential string `json:"credential"`
}

type authResponse struct {
	Account *models.Account `json:"account"`
	Created bool            `json:"created"`
}

type joinRequest struct {
	DisplayName string `json:"displayName"`
	AvatarRef   string `json:"avatarRef"`
}

type joinResponse struct {
	Round          *roundView `json:"round"`
	AssignedNumber int        `json:"assignedNumber"`
	Balance        int64      `json:"balance"`
	Message        string     `json:"message,omitempty"`
}

type leaveResponse struct {
	Round   *roundView `json:"round"`
	Balance int64      `json:"balance"`
	Message string     `json:"message,omitempty"`
}

type resultResponse struct {
	RoundID        string                `json:"roundId"`
	WinningNumbers models.WinningNumbers `json:"winningNumbers"`
	Payout         *models.Payout        `json:"payout"`
	Message        string                `json:"message,omitempty"`
}

type chargeRequest struct {
	Amount int64 `json:"amount" binding:"required"`
}

type withdrawalRequest struct {
	PayoutID string `json:"payoutId" binding:"required"`
	PlayerID string `json:"playerId" binding:"required"`
	Amount   int64  `json:"amount" binding:"required"`
}

type postingResponse struct {
	Charge  *models.Charge `json:"charge"`
	Balance int64          `json:"balance"`
	Replay  bool           `json:"replay"`
}
