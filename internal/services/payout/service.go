package payout

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/KirkDiggler/starwheel/internal/common/clock"
	"github.com/KirkDiggler/starwheel/internal/common/keylock"
	"github.com/KirkDiggler/starwheel/internal/common/logger"
	"github.com/KirkDiggler/starwheel/internal/common/uuid"
	"github.com/KirkDiggler/starwheel/internal/draw"
	"github.com/KirkDiggler/starwheel/internal/metrics"
	"github.com/KirkDiggler/starwheel/internal/models"
	accountRepo "github.com/KirkDiggler/starwheel/internal/repositories/account"
	roundRepo "github.com/KirkDiggler/starwheel/internal/repositories/round"
	"github.com/KirkDiggler/starwheel/internal/repositories/store"
	"github.com/KirkDiggler/starwheel/internal/services/ledger"
	"go.uber.org/zap"
)

type service struct {
	split         draw.Split
	store         store.Store
	roundRepo     roundRepo.Repository
	locker        *keylock.Locker
	clock         clock.Clock
	uuidGenerator uuid.UUID
	log           *zap.Logger
}

// New creates a new payout coordinator
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Store == nil {
		return nil, ErrNilStore
	}
	if cfg.RoundRepo == nil {
		return nil, ErrNilRoundRepo
	}
	if cfg.Locker == nil {
		return nil, ErrNilLocker
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	split := draw.DefaultSplit()
	if cfg.Split != nil {
		if err := cfg.Split.Validate(); err != nil {
			return nil, err
		}
		split = *cfg.Split
	}

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &service{
		split:         split,
		store:         cfg.Store,
		roundRepo:     cfg.RoundRepo,
		locker:        cfg.Locker,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
		log:           log.Named("payout"),
	}, nil
}

// attempt carries what one settlement run planned and committed
type attempt struct {
	planned []models.Payout
	txns    []*models.Transaction

	// touched lists players whose account was rewritten in this attempt
	touched []string
}

// Settle credits every human payout, updates player stats and finalizes the
// round, all in one unit of work
func (s *service) Settle(ctx context.Context, input *SettleInput) (*SettleOutput, error) {
	if input == nil || input.RoundID == "" {
		return nil, errors.New("input and round ID cannot be empty")
	}
	started := time.Now()
	log := logger.For(ctx, s.log).With(zap.String("round_id", input.RoundID))

	// The roster is frozen once locked, so it is safe to read it before locking
	round, err := s.roundRepo.GetRound(ctx, &roundRepo.GetRoundInput{RoundID: input.RoundID})
	if err != nil {
		if errors.Is(err, roundRepo.ErrRoundNotFound) {
			return nil, ErrRoundNotFound
		}
		return nil, err
	}

	release := s.locker.Acquire(lockKeys(round)...)
	defer release()

	now := s.clock.Now()
	var (
		run    *attempt
		record *models.SettlementRecord
	)
	err = s.store.Atomically(ctx, func(tx store.Tx) error {
		run = nil

		r, err := tx.GetRound(ctx, input.RoundID)
		if err != nil {
			if errors.Is(err, roundRepo.ErrRoundNotFound) {
				return ErrRoundNotFound
			}
			return err
		}
		if r.Status != models.RoundStatusDrawing {
			return ErrRoundNotDrawing
		}
		if r.WinningNumbers != nil && *r.WinningNumbers != input.Numbers {
			return ErrNumbersMismatch
		}

		run = &attempt{
			planned: draw.Resolve(r.Entries, input.Numbers, r.Pool(), s.split),
		}
		if err := s.apply(ctx, tx, r, run, now); err != nil {
			return err
		}

		numbers := input.Numbers
		r.WinningNumbers = &numbers
		r.Settlement = run.planned
		r.Status = models.RoundStatusSettled
		r.SettledAt = &now
		r.UpdatedAt = now
		r.Failure = nil
		if err := tx.PutRound(r); err != nil {
			return err
		}

		record, _ = models.SettlementRecordFor(r)
		return nil
	})
	if err != nil {
		if run == nil || errors.Is(err, ErrRoundNotDrawing) || errors.Is(err, ErrNumbersMismatch) {
			return nil, err
		}
		failed := s.fail(ctx, round.ID, input.Numbers, run, err, now)
		metrics.RecordSettlement(failed, 0, started)
		log.Error("settlement failed",
			zap.Int("planned", len(failed.Planned)),
			zap.Int("applied", len(failed.Applied)),
			zap.Error(err),
		)
		return nil, failed
	}

	ledger.RecordCommitted(run.txns...)
	metrics.RecordSettlement(nil, record.Pool-record.Unallocated, started)
	metrics.RecordTransition(string(models.RoundStatusSettled))
	log.Info("round settled",
		zap.Int("center", record.WinningNumbers.Center),
		zap.Int64("pool", record.Pool),
		zap.Int("payouts", len(record.Payouts)),
		zap.Int64("unallocated", record.Unallocated),
	)

	return &SettleOutput{
		Record: record,
	}, nil
}

// apply buffers credits and stats for every human entry not already
// accounted by an earlier partial settlement
func (s *service) apply(ctx context.Context, tx store.Tx, r *models.Round, run *attempt, now time.Time) error {
	shares := make(map[string]int64, len(run.planned))
	won := make(map[string]bool, len(run.planned))
	for _, p := range run.planned {
		if p.Bot {
			continue
		}
		shares[p.PlayerID] += p.PrizeShare
		won[p.PlayerID] = true
	}

	done := make(map[string]bool)
	if r.Failure != nil {
		for _, id := range r.Failure.Accounted {
			done[id] = true
		}
	}

	for _, e := range r.Entries {
		if e.Bot || done[e.PlayerID] {
			continue
		}

		account, err := tx.GetAccount(ctx, e.PlayerID)
		if err != nil {
			return fmt.Errorf("failed to load account %s: %w", e.PlayerID, err)
		}
		account.GamesPlayed++
		if won[e.PlayerID] {
			account.GamesWon++
			account.TotalWinnings += shares[e.PlayerID]
		}
		account.UpdatedAt = now
		if err := tx.PutAccount(account); err != nil {
			return err
		}
		run.touched = append(run.touched, e.PlayerID)

		if !won[e.PlayerID] {
			continue
		}
		_, txn, err := ledger.ApplyCredit(ctx, tx, ledger.Posting{
			ID:       s.uuidGenerator.NewUUID(),
			PlayerID: e.PlayerID,
			Kind:     models.TransactionKindPrizePayout,
			Amount:   shares[e.PlayerID],
			RoundID:  r.ID,
			At:       now,
		})
		if err != nil {
			return fmt.Errorf("failed to credit %s: %w", e.PlayerID, err)
		}
		run.txns = append(run.txns, txn)
	}

	return nil
}

// fail records the failed attempt on the round so it can be reconciled or retried
func (s *service) fail(ctx context.Context, roundID string, numbers models.WinningNumbers, run *attempt, cause error, now time.Time) *SettlementFailedError {
	failed := &SettlementFailedError{
		RoundID: roundID,
		Planned: run.planned,
		Applied: []models.Payout{},
		Err:     cause,
	}

	var accounted []string
	var commitErr *store.CommitError
	if errors.As(cause, &commitErr) {
		for _, id := range run.touched {
			if commitErr.IsCommitted(accountRepo.Key(id)) {
				accounted = append(accounted, id)
			}
		}
		isAccounted := make(map[string]bool, len(accounted))
		for _, id := range accounted {
			isAccounted[id] = true
		}
		for _, p := range run.planned {
			if !p.Bot && isAccounted[p.PlayerID] {
				failed.Applied = append(failed.Applied, p)
			}
		}
	}

	err := s.store.Atomically(ctx, func(tx store.Tx) error {
		r, err := tx.GetRound(ctx, roundID)
		if err != nil {
			return err
		}

		prior := []string{}
		if r.Failure != nil {
			prior = r.Failure.Accounted
		}
		r.Failure = &models.SettlementFailure{
			Reason:    cause.Error(),
			Numbers:   numbers,
			Planned:   failed.Planned,
			Applied:   failed.Applied,
			Accounted: mergeIDs(prior, accounted),
			FailedAt:  now,
		}
		r.UpdatedAt = now
		return tx.PutRound(r)
	})
	if err != nil {
		s.log.Error("failed to record settlement failure",
			zap.String("round_id", roundID),
			zap.Error(err),
		)
	}

	return failed
}

func lockKeys(r *models.Round) []string {
	ids := make([]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		if !e.Bot {
			ids = append(ids, e.PlayerID)
		}
	}
	sort.Strings(ids)

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, keylock.PlayerKey(id))
	}
	return append(keys, keylock.RoundKey(r.ID))
}

func mergeIDs(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, id := range append(append([]string{}, a...), b...) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
