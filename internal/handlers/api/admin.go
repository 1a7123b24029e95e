package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KirkDiggler/starwheel/internal/services/lobby"
	"github.com/KirkDiggler/starwheel/internal/services/payments"
)

func (h *Handler) openRound(c *gin.Context) {
	out, err := h.lobby.GetOrCreateOpenRound(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newRoundView(out))
}

func (h *Handler) lock(c *gin.Context) {
	out, err := h.lobby.Lock(c.Request.Context(), &lobby.LockInput{RoundID: c.Param("id")})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newRoundView(out))
}

func (h *Handler) draw(c *gin.Context) {
	out, err := h.lobby.BeginDraw(c.Request.Context(), &lobby.BeginDrawInput{RoundID: c.Param("id")})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out.Record)
}

func (h *Handler) retry(c *gin.Context) {
	out, err := h.lobby.RetrySettlement(c.Request.Context(), &lobby.RetrySettlementInput{RoundID: c.Param("id")})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out.Record)
}

func (h *Handler) archive(c *gin.Context) {
	out, err := h.lobby.Archive(c.Request.Context(), &lobby.ArchiveInput{RoundID: c.Param("id")})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newRoundView(out))
}

func (h *Handler) addBot(c *gin.Context) {
	out, err := h.lobby.AddBot(c.Request.Context(), &lobby.AddBotInput{RoundID: c.Param("id")})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"round": newRoundView(out.Round), "entry": out.Entry})
}

// confirmCharge is the provider's confirmation hook; replays answer 200
func (h *Handler) confirmCharge(c *gin.Context) {
	out, err := h.payments.ConfirmCharge(c.Request.Context(), &payments.ConfirmChargeInput{ChargeID: c.Param("id")})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, postingResponse{
		Charge:  out.Charge,
		Balance: out.Balance,
		Replay:  out.AlreadyConfirmed,
	})
}

func (h *Handler) recordWithdrawal(c *gin.Context) {
	var req withdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	out, err := h.payments.RecordWithdrawal(c.Request.Context(), &payments.RecordWithdrawalInput{
		PayoutID: req.PayoutID,
		PlayerID: req.PlayerID,
		Amount:   req.Amount,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, postingResponse{
		Charge:  out.Charge,
		Balance: out.Balance,
		Replay:  out.AlreadyRecorded,
	})
}
