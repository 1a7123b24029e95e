// Package worker runs the background trigger that starts rounds without an
// admin: it locks and draws the open round once it is full or once enough
// players have waited out the countdown.
package worker

import (
	"context"
	"errors"
	"time"

	"github.com/KirkDiggler/starwheel/internal/common/clock"
	"github.com/KirkDiggler/starwheel/internal/common/logger"
	"github.com/KirkDiggler/starwheel/internal/models"
	"github.com/KirkDiggler/starwheel/internal/services/lobby"
	"github.com/KirkDiggler/starwheel/internal/services/payout"
	"go.uber.org/zap"
)

const (
	DefaultInterval   = time.Second
	DefaultCountdown  = 30 * time.Second
	DefaultStaleAfter = time.Minute

	// recoverLimit bounds how many stuck rounds one tick looks at
	recoverLimit = 20
)

var (
	ErrNilConfig       = errors.New("config cannot be nil")
	ErrNilLobbyService = errors.New("lobby service cannot be nil")
	ErrNilClock        = errors.New("clock cannot be nil")
)

type Config struct {
	LobbyService lobby.Service
	Clock        clock.Clock

	// Interval between ticks
	Interval time.Duration

	// Countdown starts when the open round reaches MinPlayers humans
	Countdown time.Duration

	// MinPlayers must match the lobby's setting
	MinPlayers int

	// FillWithBots seats bots in the empty seats before a countdown start
	FillWithBots bool

	// StaleAfter is how long a round may sit in drawing before the
	// settlement is retried
	StaleAfter time.Duration

	Logger *zap.Logger
}

type AutoStarter struct {
	lobby        lobby.Service
	clock        clock.Clock
	interval     time.Duration
	countdown    time.Duration
	minPlayers   int
	fillWithBots bool
	staleAfter   time.Duration
	log          *zap.Logger
}

func New(cfg *Config) (*AutoStarter, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.LobbyService == nil {
		return nil, ErrNilLobbyService
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	a := &AutoStarter{
		lobby:        cfg.LobbyService,
		clock:        cfg.Clock,
		interval:     cfg.Interval,
		countdown:    cfg.Countdown,
		minPlayers:   cfg.MinPlayers,
		fillWithBots: cfg.FillWithBots,
		staleAfter:   cfg.StaleAfter,
		log:          cfg.Logger,
	}
	if a.interval <= 0 {
		a.interval = DefaultInterval
	}
	if a.countdown <= 0 {
		a.countdown = DefaultCountdown
	}
	if a.minPlayers <= 0 {
		a.minPlayers = lobby.DefaultMinPlayers
	}
	if a.staleAfter <= 0 {
		a.staleAfter = DefaultStaleAfter
	}
	if a.log == nil {
		a.log = zap.NewNop()
	}
	a.log = a.log.Named("autostart")

	return a, nil
}

// Run ticks until ctx is done
func (a *AutoStarter) Run(ctx context.Context) {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	a.log.Info("auto-start running",
		zap.Duration("interval", a.interval),
		zap.Duration("countdown", a.countdown),
	)

	for {
		select {
		case <-ctx.Done():
			a.log.Info("auto-start stopped")
			return
		case <-ticker.C:
			if err := a.Tick(ctx); err != nil {
				logger.For(ctx, a.log).Error("auto-start tick failed", zap.Error(err))
			}
		}
	}
}

// Tick finishes stuck rounds and then starts the open round when it is due
func (a *AutoStarter) Tick(ctx context.Context) error {
	if err := a.recover(ctx); err != nil {
		return err
	}

	current, err := a.lobby.GetOrCreateOpenRound(ctx)
	if err != nil {
		return err
	}

	r := current.Round
	switch {
	case r.IsFull():
		return a.start(ctx, r.ID, "full")
	case a.countdownElapsed(r):
		if a.fillWithBots {
			if err := a.fill(ctx, r.ID); err != nil {
				return err
			}
		}
		return a.start(ctx, r.ID, "countdown")
	}

	return nil
}

func (a *AutoStarter) countdownElapsed(r *models.Round) bool {
	if r.MinReachedAt == nil || r.HumanCount() < a.minPlayers {
		return false
	}
	return a.clock.Now().Sub(*r.MinReachedAt) >= a.countdown
}

func (a *AutoStarter) fill(ctx context.Context, roundID string) error {
	for {
		_, err := a.lobby.AddBot(ctx, &lobby.AddBotInput{RoundID: roundID})
		switch {
		case err == nil:
			continue
		case errors.Is(err, lobby.ErrRoundFull), errors.Is(err, lobby.ErrInvalidState):
			return nil
		default:
			return err
		}
	}
}

func (a *AutoStarter) start(ctx context.Context, roundID, reason string) error {
	log := logger.For(ctx, a.log).With(zap.String("round_id", roundID))

	if _, err := a.lobby.Lock(ctx, &lobby.LockInput{RoundID: roundID}); err != nil {
		// Someone left or another trigger got there first
		if errors.Is(err, lobby.ErrNotEnoughPlayers) || errors.Is(err, lobby.ErrInvalidState) {
			log.Debug("round not started", zap.Error(err))
			return nil
		}
		return err
	}
	log.Info("round auto-locked", zap.String("reason", reason))

	return a.draw(ctx, roundID)
}

func (a *AutoStarter) draw(ctx context.Context, roundID string) error {
	_, err := a.lobby.BeginDraw(ctx, &lobby.BeginDrawInput{RoundID: roundID})
	return a.settled(ctx, roundID, err)
}

func (a *AutoStarter) settled(ctx context.Context, roundID string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, lobby.ErrInvalidState):
		return nil
	case errors.Is(err, payout.ErrSettlementFailed):
		// The round stays in drawing and is retried by a later tick
		logger.For(ctx, a.log).Error("settlement failed",
			zap.String("round_id", roundID),
			zap.Error(err),
		)
		return nil
	}
	return err
}

// recover draws rounds left locked and retries settlements left in drawing
func (a *AutoStarter) recover(ctx context.Context) error {
	locked, err := a.lobby.ListRounds(ctx, &lobby.ListRoundsInput{Limit: recoverLimit, Status: models.RoundStatusLocked})
	if err != nil {
		return err
	}
	for _, r := range locked.Rounds {
		if err := a.draw(ctx, r.Round.ID); err != nil {
			return err
		}
	}

	drawing, err := a.lobby.ListRounds(ctx, &lobby.ListRoundsInput{Limit: recoverLimit, Status: models.RoundStatusDrawing})
	if err != nil {
		return err
	}
	now := a.clock.Now()
	for _, r := range drawing.Rounds {
		stale := r.Round.DrawStartedAt != nil && now.Sub(*r.Round.DrawStartedAt) >= a.staleAfter
		if r.Round.Failure == nil && !stale {
			continue
		}
		_, err := a.lobby.RetrySettlement(ctx, &lobby.RetrySettlementInput{RoundID: r.Round.ID})
		if err := a.settled(ctx, r.Round.ID, err); err != nil {
			return err
		}
	}

	return nil
}
