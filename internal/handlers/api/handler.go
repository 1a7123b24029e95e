// Package api exposes the lobby over HTTP with gin: read-only round views,
// join and leave for authenticated players, payment entry points and the
// admin surface.
package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/KirkDiggler/starwheel/internal/common/logger"
	"github.com/KirkDiggler/starwheel/internal/common/uuid"
	"github.com/KirkDiggler/starwheel/internal/metrics"
	"github.com/KirkDiggler/starwheel/internal/services/ledger"
	"github.com/KirkDiggler/starwheel/internal/services/lobby"
	"github.com/KirkDiggler/starwheel/internal/services/messaging"
	"github.com/KirkDiggler/starwheel/internal/services/payments"
	"github.com/KirkDiggler/starwheel/internal/services/player"
)

const (
	headerAdminToken = "X-Admin-Token"
	headerRequestID  = "X-Request-ID"

	ctxAccount = "account"
	ctxName    = "name"
)

var (
	ErrNilConfig           = errors.New("config cannot be nil")
	ErrNilLobbyService     = errors.New("lobby service cannot be nil")
	ErrNilPlayerService    = errors.New("player service cannot be nil")
	ErrNilLedgerService    = errors.New("ledger service cannot be nil")
	ErrNilPaymentsService  = errors.New("payments service cannot be nil")
	ErrNilMessagingService = errors.New("messaging service cannot be nil")
	ErrNilUUIDGenerator    = errors.New("UUID generator cannot be nil")
)

type Config struct {
	LobbyService     lobby.Service
	PlayerService    player.Service
	LedgerService    ledger.Service
	PaymentsService  payments.Service
	MessagingService messaging.Service
	UUIDGenerator    uuid.UUID

	// AdminToken guards /admin; empty leaves the admin routes unregistered
	AdminToken string

	// Health reports backing store reachability for /healthz
	Health func(ctx context.Context) error

	Logger *zap.Logger
}

type Handler struct {
	lobby         lobby.Service
	player        player.Service
	ledger        ledger.Service
	payments      payments.Service
	messaging     messaging.Service
	uuidGenerator uuid.UUID
	adminToken    string
	health        func(ctx context.Context) error
	log           *zap.Logger
}

func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.LobbyService == nil {
		return nil, ErrNilLobbyService
	}
	if cfg.PlayerService == nil {
		return nil, ErrNilPlayerService
	}
	if cfg.LedgerService == nil {
		return nil, ErrNilLedgerService
	}
	if cfg.PaymentsService == nil {
		return nil, ErrNilPaymentsService
	}
	if cfg.MessagingService == nil {
		return nil, ErrNilMessagingService
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Handler{
		lobby:         cfg.LobbyService,
		player:        cfg.PlayerService,
		ledger:        cfg.LedgerService,
		payments:      cfg.PaymentsService,
		messaging:     cfg.MessagingService,
		uuidGenerator: cfg.UUIDGenerator,
		adminToken:    cfg.AdminToken,
		health:        cfg.Health,
		log:           log.Named("http"),
	}, nil
}

// Router builds the gin engine with every route registered
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), h.requestID(), metrics.GinMiddleware())

	r.GET("/healthz", h.healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.POST("/auth", h.authenticate)
	api.GET("/leaderboard", h.leaderboard)
	api.GET("/rounds", h.listRounds)
	api.GET("/rounds/current", h.currentRound)
	api.GET("/rounds/:id", h.getRound)
	api.GET("/rounds/:id/settlement", h.getSettlement)

	me := api.Group("", h.requirePlayer())
	me.GET("/me", h.me)
	me.GET("/me/transactions", h.myTransactions)
	me.GET("/me/rounds/:id/result", h.myResult)
	me.POST("/rounds/:id/join", h.join)
	me.POST("/rounds/:id/leave", h.leave)
	me.POST("/payments/charges", h.createCharge)

	if h.adminToken != "" {
		admin := r.Group("/admin", h.requireAdmin())
		admin.POST("/rounds/open", h.openRound)
		admin.POST("/rounds/:id/lock", h.lock)
		admin.POST("/rounds/:id/draw", h.draw)
		admin.POST("/rounds/:id/retry", h.retry)
		admin.POST("/rounds/:id/archive", h.archive)
		admin.POST("/rounds/:id/bots", h.addBot)
		admin.POST("/charges/:id/confirm", h.confirmCharge)
		admin.POST("/withdrawals", h.recordWithdrawal)
	}

	return r
}

func (h *Handler) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = h.uuidGenerator.NewUUID()
		}
		c.Header(headerRequestID, id)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

func bearer(c *gin.Context) string {
	const prefix = "Bearer "
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}

// requirePlayer resolves the bearer credential into an account for the
// rest of the chain
func (h *Handler) requirePlayer() gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := h.player.Authenticate(c.Request.Context(), &player.AuthenticateInput{Credential: bearer(c)})
		if err != nil {
			h.fail(c, err)
			c.Abort()
			return
		}
		c.Set(ctxAccount, out.Account.ID)
		c.Set(ctxName, out.Account.DisplayName)
		c.Next()
	}
}

func (h *Handler) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(headerAdminToken) != h.adminToken {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin token required"})
			return
		}
		c.Next()
	}
}

func playerID(c *gin.Context) string {
	return c.GetString(ctxAccount)
}

func playerName(c *gin.Context) string {
	if name := c.GetString(ctxName); name != "" {
		return name
	}
	return playerID(c)
}

func (h *Handler) healthz(c *gin.Context) {
	if h.health != nil {
		if err := h.health(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
