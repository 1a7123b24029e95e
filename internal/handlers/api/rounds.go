package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KirkDiggler/starwheel/internal/models"
	"github.com/KirkDiggler/starwheel/internal/services/lobby"
	"github.com/KirkDiggler/starwheel/internal/services/messaging"
)

func (h *Handler) currentRound(c *gin.Context) {
	out, err := h.lobby.GetCurrentRound(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newRoundView(out))
}

func (h *Handler) listRounds(c *gin.Context) {
	out, err := h.lobby.ListRounds(c.Request.Context(), &lobby.ListRoundsInput{
		Limit:  queryLimit(c),
		Status: models.RoundStatus(c.Query("status")),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	rounds := make([]*roundView, 0, len(out.Rounds))
	for _, r := range out.Rounds {
		rounds = append(rounds, newRoundView(r))
	}
	c.JSON(http.StatusOK, gin.H{"rounds": rounds})
}

func (h *Handler) getRound(c *gin.Context) {
	out, err := h.lobby.GetRound(c.Request.Context(), &lobby.GetRoundInput{RoundID: c.Param("id")})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newRoundView(out))
}

func (h *Handler) getSettlement(c *gin.Context) {
	out, err := h.lobby.GetSettlement(c.Request.Context(), &lobby.GetSettlementInput{RoundID: c.Param("id")})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out.Record)
}

func (h *Handler) join(c *gin.Context) {
	var req joinRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
	}

	out, err := h.lobby.Join(c.Request.Context(), &lobby.JoinInput{
		RoundID:     c.Param("id"),
		PlayerID:    playerID(c),
		DisplayName: req.DisplayName,
		AvatarRef:   req.AvatarRef,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	name := req.DisplayName
	if name == "" {
		name = playerName(c)
	}
	msg := h.say(c, func(ctx context.Context) (*messaging.MessageOutput, error) {
		return h.messaging.GetJoinMessage(ctx, &messaging.GetJoinMessageInput{
			PlayerName: name,
			Number:     out.AssignedNumber,
			SeatsLeft:  out.Round.SeatsLeft,
		})
	})

	c.JSON(http.StatusOK, joinResponse{
		Round:          newRoundView(out.Round),
		AssignedNumber: out.AssignedNumber,
		Balance:        out.Balance,
		Message:        msg,
	})
}

func (h *Handler) leave(c *gin.Context) {
	out, err := h.lobby.Leave(c.Request.Context(), &lobby.LeaveInput{
		RoundID:  c.Param("id"),
		PlayerID: playerID(c),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	msg := h.say(c, func(ctx context.Context) (*messaging.MessageOutput, error) {
		return h.messaging.GetLeaveMessage(ctx, &messaging.GetLeaveMessageInput{
			PlayerName: playerName(c),
			Refund:     out.Round.Round.EntryFee,
		})
	})

	c.JSON(http.StatusOK, leaveResponse{
		Round:   newRoundView(out.Round),
		Balance: out.Balance,
		Message: msg,
	})
}

// myResult handles GET /api/me/rounds/:id/result: the caller's payout line in
// a settled round, nil when they won nothing.
func (h *Handler) myResult(c *gin.Context) {
	out, err := h.lobby.GetSettlement(c.Request.Context(), &lobby.GetSettlementInput{RoundID: c.Param("id")})
	if err != nil {
		h.fail(c, err)
		return
	}

	var won *models.Payout
	for i := range out.Record.Payouts {
		if out.Record.Payouts[i].PlayerID == playerID(c) {
			won = &out.Record.Payouts[i]
			break
		}
	}

	msg := h.say(c, func(ctx context.Context) (*messaging.MessageOutput, error) {
		return h.messaging.GetResultMessage(ctx, &messaging.GetResultMessageInput{
			PlayerName: playerName(c),
			Numbers:    out.Record.WinningNumbers,
			Payout:     won,
		})
	})

	c.JSON(http.StatusOK, resultResponse{
		RoundID:        out.Record.RoundID,
		WinningNumbers: out.Record.WinningNumbers,
		Payout:         won,
		Message:        msg,
	})
}
