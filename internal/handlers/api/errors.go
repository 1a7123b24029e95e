package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/KirkDiggler/starwheel/internal/common/logger"
	"github.com/KirkDiggler/starwheel/internal/providers"
	"github.com/KirkDiggler/starwheel/internal/repositories/store"
	"github.com/KirkDiggler/starwheel/internal/services/ledger"
	"github.com/KirkDiggler/starwheel/internal/services/lobby"
	"github.com/KirkDiggler/starwheel/internal/services/messaging"
	"github.com/KirkDiggler/starwheel/internal/services/payments"
	"github.com/KirkDiggler/starwheel/internal/services/payout"
	"github.com/KirkDiggler/starwheel/internal/services/player"
)

// statusFor maps service errors onto HTTP statuses. Unknown errors are 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, player.ErrInvalidCredential):
		return http.StatusUnauthorized
	case errors.Is(err, lobby.ErrRoundNotFound),
		errors.Is(err, player.ErrPlayerNotFound),
		errors.Is(err, payments.ErrChargeNotFound),
		errors.Is(err, payments.ErrPlayerNotFound),
		errors.Is(err, ledger.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, lobby.ErrInvalidState),
		errors.Is(err, lobby.ErrAlreadyJoined),
		errors.Is(err, lobby.ErrRoundFull),
		errors.Is(err, lobby.ErrNotInRound),
		errors.Is(err, lobby.ErrNotEnoughPlayers),
		errors.Is(err, lobby.ErrNotSettled),
		errors.Is(err, payments.ErrChargeMismatch),
		errors.Is(err, store.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, payments.ErrInvalidAmount),
		errors.Is(err, providers.ErrInvalidCharge):
		return http.StatusBadRequest
	case errors.Is(err, providers.ErrUpstreamUnavailable):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()

	var settlement *payout.SettlementFailedError
	switch {
	case errors.As(err, &settlement):
		logger.For(c.Request.Context(), h.log).Error("settlement failed",
			zap.String("round_id", settlement.RoundID),
			zap.Error(err),
		)
		c.JSON(status, gin.H{"error": payout.ErrSettlementFailed.Error(), "roundId": settlement.RoundID})
		return
	case status == http.StatusInternalServerError:
		logger.For(c.Request.Context(), h.log).Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		msg = "internal error"
	}

	body := gin.H{"error": msg}
	if status < http.StatusInternalServerError {
		if text := h.say(c, func(ctx context.Context) (*messaging.MessageOutput, error) {
			return h.messaging.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{Err: err})
		}); text != "" {
			body["message"] = text
		}
	}
	c.JSON(status, body)
}

// say returns the player-facing text for an event. A messaging failure only
// drops the text.
func (h *Handler) say(c *gin.Context, get func(ctx context.Context) (*messaging.MessageOutput, error)) string {
	out, err := get(c.Request.Context())
	if err != nil {
		logger.For(c.Request.Context(), h.log).Warn("message unavailable", zap.Error(err))
		return ""
	}
	return out.Message
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
