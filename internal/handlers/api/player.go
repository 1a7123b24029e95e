package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KirkDiggler/starwheel/internal/services/ledger"
	"github.com/KirkDiggler/starwheel/internal/services/payments"
	"github.com/KirkDiggler/starwheel/internal/services/player"
)

func queryLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

// authenticate handles POST /api/auth. The credential comes from the body or
// the bearer header.
func (h *Handler) authenticate(c *gin.Context) {
	var req authRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
	}
	if req.Credential == "" {
		req.Credential = bearer(c)
	}

	out, err := h.player.Authenticate(c.Request.Context(), &player.AuthenticateInput{Credential: req.Credential})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, authResponse{Account: out.Account, Created: out.Created})
}

func (h *Handler) me(c *gin.Context) {
	account, err := h.player.GetAccount(c.Request.Context(), &player.GetAccountInput{PlayerID: playerID(c)})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (h *Handler) myTransactions(c *gin.Context) {
	out, err := h.ledger.ListTransactions(c.Request.Context(), &ledger.ListTransactionsInput{
		PlayerID: playerID(c),
		Limit:    queryLimit(c),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": out.Transactions})
}

func (h *Handler) leaderboard(c *gin.Context) {
	out, err := h.player.GetLeaderboard(c.Request.Context(), &player.GetLeaderboardInput{Limit: queryLimit(c)})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": out.Entries})
}

func (h *Handler) createCharge(c *gin.Context) {
	var req chargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	charge, err := h.payments.CreateCharge(c.Request.Context(), &payments.CreateChargeInput{
		PlayerID: playerID(c),
		Amount:   req.Amount,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, charge)
}
