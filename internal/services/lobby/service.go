package lobby

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/starwheel/internal/common/clock"
	"github.com/KirkDiggler/starwheel/internal/common/keylock"
	"github.com/KirkDiggler/starwheel/internal/common/logger"
	"github.com/KirkDiggler/starwheel/internal/common/uuid"
	"github.com/KirkDiggler/starwheel/internal/draw"
	"github.com/KirkDiggler/starwheel/internal/metrics"
	"github.com/KirkDiggler/starwheel/internal/models"
	roundRepo "github.com/KirkDiggler/starwheel/internal/repositories/round"
	"github.com/KirkDiggler/starwheel/internal/repositories/store"
	"github.com/KirkDiggler/starwheel/internal/services/ledger"
	"github.com/KirkDiggler/starwheel/internal/services/payout"
	"go.uber.org/zap"
)

type service struct {
	capacity   int
	entryFee   int64
	minPlayers int

	store         store.Store
	roundRepo     roundRepo.Repository
	payoutService payout.Service
	source        draw.Source
	locker        *keylock.Locker
	clock         clock.Clock
	uuidGenerator uuid.UUID
	log           *zap.Logger
}

// New creates a new lobby service
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
	if cfg.PayoutService == nil {
		return nil, ErrNilPayoutService
	}
	if cfg.Source == nil {
		return nil, ErrNilSource
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

	capacity := cfg.Capacity
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	entryFee := int64(DefaultEntryFee)
	if cfg.EntryFee != nil {
		entryFee = *cfg.EntryFee
	}
	minPlayers := cfg.MinPlayers
	if minPlayers <= 0 {
		minPlayers = DefaultMinPlayers
	}
	if capacity < 3 || entryFee < 0 {
		return nil, ErrInvalidRoundShape
	}

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &service{
		capacity:      capacity,
		entryFee:      entryFee,
		minPlayers:    minPlayers,
		store:         cfg.Store,
		roundRepo:     cfg.RoundRepo,
		payoutService: cfg.PayoutService,
		source:        cfg.Source,
		locker:        cfg.Locker,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
		log:           log.Named("lobby"),
	}, nil
}

func snapshot(r *models.Round) *RoundOutput {
	return &RoundOutput{
		Round:     r,
		Pool:      r.Pool(),
		SeatsLeft: r.SeatsLeft(),
	}
}

// loadRound reads a round inside tx, mapping the repository miss
func loadRound(ctx context.Context, tx store.Tx, roundID string) (*models.Round, error) {
	r, err := tx.GetRound(ctx, roundID)
	if err != nil {
		if errors.Is(err, roundRepo.ErrRoundNotFound) {
			return nil, ErrRoundNotFound
		}
		return nil, err
	}
	return r, nil
}

// GetOrCreateOpenRound returns the single open round, creating it when absent
func (s *service) GetOrCreateOpenRound(ctx context.Context) (*RoundOutput, error) {
	var (
		current *models.Round
		created bool
	)
	err := s.store.Atomically(ctx, func(tx store.Tx) error {
		created = false

		id, err := tx.CurrentRoundID(ctx)
		if err != nil {
			return err
		}
		if id != "" {
			r, err := tx.GetRound(ctx, id)
			if err != nil && !errors.Is(err, roundRepo.ErrRoundNotFound) {
				return err
			}
			if err == nil && r.Status.IsOpen() {
				current = r
				return nil
			}
		}

		// The pointer is missing or stale, so this unit creates the round
		r := models.NewRound(s.uuidGenerator.NewUUID(), s.capacity, s.entryFee, s.clock.Now())
		if err := tx.PutRound(r); err != nil {
			return err
		}
		tx.SetCurrentRound(r.ID)
		current = r
		created = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if created {
		metrics.RecordTransition(string(models.RoundStatusOpen))
		logger.For(ctx, s.log).Info("round opened",
			zap.String("round_id", current.ID),
			zap.Int("capacity", current.Capacity),
			zap.Int64("entry_fee", current.EntryFee),
		)
	}

	return snapshot(current), nil
}

// Join seats a player on a uniformly chosen free number. The entry fee debit
// and the roster append commit together or not at all.
func (s *service) Join(ctx context.Context, input *JoinInput) (*JoinOutput, error) {
	if input == nil || input.RoundID == "" || input.PlayerID == "" {
		return nil, errors.New("input, round ID and player ID cannot be empty")
	}

	release := s.locker.Acquire(keylock.PlayerKey(input.PlayerID), keylock.RoundKey(input.RoundID))
	defer release()

	var (
		output *JoinOutput
		stake  *models.Transaction
	)
	err := s.store.Atomically(ctx, func(tx store.Tx) error {
		r, err := loadRound(ctx, tx, input.RoundID)
		if err != nil {
			return err
		}
		if !r.Status.IsOpen() {
			return ErrInvalidState
		}
		if r.HasPlayer(input.PlayerID) {
			return ErrAlreadyJoined
		}
		if r.IsFull() {
			return ErrRoundFull
		}

		number, err := draw.PickFreeNumber(r.Capacity, r.UsedNumbers(), s.source)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		account, txn, err := ledger.ApplyDebit(ctx, tx, ledger.Posting{
			ID:       s.uuidGenerator.NewUUID(),
			PlayerID: input.PlayerID,
			Kind:     models.TransactionKindEntryStake,
			Amount:   r.EntryFee,
			RoundID:  r.ID,
			At:       now,
		})
		if err != nil {
			return err
		}

		entry := models.Entry{
			PlayerID:  input.PlayerID,
			Number:    number,
			Name:      account.DisplayName,
			AvatarRef: account.AvatarRef,
			JoinedAt:  now,
		}
		if input.DisplayName != "" {
			entry.Name = input.DisplayName
		}
		if input.AvatarRef != "" {
			entry.AvatarRef = input.AvatarRef
		}
		r.Entries = append(r.Entries, entry)
		if r.MinReachedAt == nil && r.HumanCount() >= s.minPlayers {
			r.MinReachedAt = &now
		}
		r.UpdatedAt = now
		if err := tx.PutRound(r); err != nil {
			return err
		}

		stake = txn
		output = &JoinOutput{
			Round:          snapshot(r),
			AssignedNumber: number,
			Balance:        account.Balance,
		}
		return nil
	})
	metrics.RecordRoster("join", err)
	if err != nil {
		return nil, err
	}

	ledger.RecordCommitted(stake)
	logger.For(ctx, s.log).Info("player joined",
		zap.String("round_id", input.RoundID),
		zap.String("player_id", input.PlayerID),
		zap.Int("number", output.AssignedNumber),
		zap.Int64("pool", output.Round.Pool),
	)

	return output, nil
}

// Leave removes a player from an open round and refunds exactly the entry fee
func (s *service) Leave(ctx context.Context, input *LeaveInput) (*LeaveOutput, error) {
	if input == nil || input.RoundID == "" || input.PlayerID == "" {
		return nil, errors.New("input, round ID and player ID cannot be empty")
	}

	release := s.locker.Acquire(keylock.PlayerKey(input.PlayerID), keylock.RoundKey(input.RoundID))
	defer release()

	var (
		output *LeaveOutput
		refund *models.Transaction
	)
	err := s.store.Atomically(ctx, func(tx store.Tx) error {
		r, err := loadRound(ctx, tx, input.RoundID)
		if err != nil {
			return err
		}
		entry, ok := r.EntryFor(input.PlayerID)
		if !ok || entry.Bot {
			return ErrNotInRound
		}
		if !r.Status.IsOpen() {
			return ErrInvalidState
		}

		now := s.clock.Now()
		r.RemoveEntry(input.PlayerID)
		if r.HumanCount() < s.minPlayers {
			r.MinReachedAt = nil
		}
		r.UpdatedAt = now

		account, txn, err := ledger.ApplyCredit(ctx, tx, ledger.Posting{
			ID:       s.uuidGenerator.NewUUID(),
			PlayerID: input.PlayerID,
			Kind:     models.TransactionKindEntryRefund,
			Amount:   r.EntryFee,
			RoundID:  r.ID,
			At:       now,
		})
		if err != nil {
			return err
		}
		if err := tx.PutRound(r); err != nil {
			return err
		}

		refund = txn
		output = &LeaveOutput{
			Round:   snapshot(r),
			Balance: account.Balance,
		}
		return nil
	})
	metrics.RecordRoster("leave", err)
	if err != nil {
		return nil, err
	}

	ledger.RecordCommitted(refund)
	logger.For(ctx, s.log).Info("player left",
		zap.String("round_id", input.RoundID),
		zap.String("player_id", input.PlayerID),
		zap.Int64("pool", output.Round.Pool),
	)

	return output, nil
}

// AddBot seats a house entry. Bots fill seats and the pool but never pay a
// stake, never receive credits and do not count toward the minimum to start.
func (s *service) AddBot(ctx context.Context, input *AddBotInput) (*AddBotOutput, error) {
	if input == nil || input.RoundID == "" {
		return nil, errors.New("input and round ID cannot be empty")
	}

	release := s.locker.Acquire(keylock.RoundKey(input.RoundID))
	defer release()

	var output *AddBotOutput
	err := s.store.Atomically(ctx, func(tx store.Tx) error {
		r, err := loadRound(ctx, tx, input.RoundID)
		if err != nil {
			return err
		}
		if !r.Status.IsOpen() {
			return ErrInvalidState
		}
		if r.IsFull() {
			return ErrRoundFull
		}

		number, err := draw.PickFreeNumber(r.Capacity, r.UsedNumbers(), s.source)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		entry := models.Entry{
			PlayerID: "bot-" + s.uuidGenerator.NewUUID(),
			Number:   number,
			Name:     fmt.Sprintf("Bot %d", number),
			Bot:      true,
			JoinedAt: now,
		}
		r.Entries = append(r.Entries, entry)
		r.UpdatedAt = now
		if err := tx.PutRound(r); err != nil {
			return err
		}

		output = &AddBotOutput{
			Round: snapshot(r),
			Entry: entry,
		}
		return nil
	})
	metrics.RecordRoster("bot", err)
	if err != nil {
		return nil, err
	}

	logger.For(ctx, s.log).Info("bot seated",
		zap.String("round_id", input.RoundID),
		zap.Int("number", output.Entry.Number),
	)

	return output, nil
}

// Lock freezes the roster and releases the open-round slot for the next round
func (s *service) Lock(ctx context.Context, input *LockInput) (*RoundOutput, error) {
	if input == nil || input.RoundID == "" {
		return nil, errors.New("input and round ID cannot be empty")
	}

	release := s.locker.Acquire(keylock.RoundKey(input.RoundID))
	defer release()

	var locked *models.Round
	err := s.store.Atomically(ctx, func(tx store.Tx) error {
		r, err := loadRound(ctx, tx, input.RoundID)
		if err != nil {
			return err
		}
		if !r.Status.IsOpen() {
			return ErrInvalidState
		}
		if r.HumanCount() < s.minPlayers {
			return ErrNotEnoughPlayers
		}

		now := s.clock.Now()
		r.Status = models.RoundStatusLocked
		r.LockedAt = &now
		r.UpdatedAt = now
		if err := tx.PutRound(r); err != nil {
			return err
		}

		current, err := tx.CurrentRoundID(ctx)
		if err != nil {
			return err
		}
		if current == r.ID {
			tx.ClearCurrentRound()
		}

		locked = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordTransition(string(models.RoundStatusLocked))
	logger.For(ctx, s.log).Info("round locked",
		zap.String("round_id", locked.ID),
		zap.Int("entries", len(locked.Entries)),
		zap.Int64("pool", locked.Pool()),
	)

	return snapshot(locked), nil
}

// BeginDraw moves a locked round to drawing, draws its numbers once and hands
// them to the payout coordinator. A repeated call finds the round past locked
// and is rejected, so a round is never drawn twice.
func (s *service) BeginDraw(ctx context.Context, input *BeginDrawInput) (*BeginDrawOutput, error) {
	if input == nil || input.RoundID == "" {
		return nil, errors.New("input and round ID cannot be empty")
	}

	numbers, err := s.startDrawing(ctx, input.RoundID)
	if err != nil {
		return nil, err
	}

	return s.settle(ctx, input.RoundID, numbers)
}

func (s *service) startDrawing(ctx context.Context, roundID string) (models.WinningNumbers, error) {
	release := s.locker.Acquire(keylock.RoundKey(roundID))
	defer release()

	var numbers models.WinningNumbers
	err := s.store.Atomically(ctx, func(tx store.Tx) error {
		r, err := loadRound(ctx, tx, roundID)
		if err != nil {
			return err
		}
		if r.Status != models.RoundStatusLocked {
			return ErrInvalidState
		}

		numbers, err = draw.WinningNumbers(r.Capacity, s.source)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		r.Status = models.RoundStatusDrawing
		r.WinningNumbers = &numbers
		r.DrawStartedAt = &now
		r.UpdatedAt = now
		return tx.PutRound(r)
	})
	if err != nil {
		return models.WinningNumbers{}, err
	}

	metrics.RecordTransition(string(models.RoundStatusDrawing))
	logger.For(ctx, s.log).Info("round drawing",
		zap.String("round_id", roundID),
		zap.Int("center", numbers.Center),
		zap.Int("left", numbers.Left),
		zap.Int("right", numbers.Right),
	)

	return numbers, nil
}

func (s *service) settle(ctx context.Context, roundID string, numbers models.WinningNumbers) (*BeginDrawOutput, error) {
	out, err := s.payoutService.Settle(ctx, &payout.SettleInput{
		RoundID: roundID,
		Numbers: numbers,
	})
	if err != nil {
		switch {
		case errors.Is(err, payout.ErrRoundNotDrawing), errors.Is(err, payout.ErrNumbersMismatch):
			return nil, ErrInvalidState
		case errors.Is(err, payout.ErrRoundNotFound):
			return nil, ErrRoundNotFound
		}
		return nil, err
	}

	metrics.RecordDraw(len(out.Record.Payouts))

	return &BeginDrawOutput{
		Record: out.Record,
	}, nil
}

// RetrySettlement settles a round left in drawing by a failed settlement,
// reusing the numbers recorded when it entered drawing
func (s *service) RetrySettlement(ctx context.Context, input *RetrySettlementInput) (*BeginDrawOutput, error) {
	if input == nil || input.RoundID == "" {
		return nil, errors.New("input and round ID cannot be empty")
	}

	r, err := s.roundRepo.GetRound(ctx, &roundRepo.GetRoundInput{RoundID: input.RoundID})
	if err != nil {
		if errors.Is(err, roundRepo.ErrRoundNotFound) {
			return nil, ErrRoundNotFound
		}
		return nil, err
	}
	if r.Status != models.RoundStatusDrawing || r.WinningNumbers == nil {
		return nil, ErrInvalidState
	}

	logger.For(ctx, s.log).Warn("retrying settlement",
		zap.String("round_id", r.ID),
		zap.Bool("had_failure", r.Failure != nil),
	)

	return s.settle(ctx, r.ID, *r.WinningNumbers)
}

// Archive moves a settled round to archived
func (s *service) Archive(ctx context.Context, input *ArchiveInput) (*RoundOutput, error) {
	if input == nil || input.RoundID == "" {
		return nil, errors.New("input and round ID cannot be empty")
	}

	release := s.locker.Acquire(keylock.RoundKey(input.RoundID))
	defer release()

	var archived *models.Round
	err := s.store.Atomically(ctx, func(tx store.Tx) error {
		r, err := loadRound(ctx, tx, input.RoundID)
		if err != nil {
			return err
		}
		if !r.Status.CanTransitionTo(models.RoundStatusArchived) {
			return ErrInvalidState
		}

		now := s.clock.Now()
		r.Status = models.RoundStatusArchived
		r.ArchivedAt = &now
		r.UpdatedAt = now
		archived = r
		return tx.PutRound(r)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordTransition(string(models.RoundStatusArchived))

	return snapshot(archived), nil
}

// GetRound returns a read-only snapshot of a round
func (s *service) GetRound(ctx context.Context, input *GetRoundInput) (*RoundOutput, error) {
	if input == nil || input.RoundID == "" {
		return nil, errors.New("input and round ID cannot be empty")
	}

	r, err := s.roundRepo.GetRound(ctx, &roundRepo.GetRoundInput{RoundID: input.RoundID})
	if err != nil {
		if errors.Is(err, roundRepo.ErrRoundNotFound) {
			return nil, ErrRoundNotFound
		}
		return nil, err
	}

	return snapshot(r), nil
}

// GetCurrentRound returns the open round, or ErrRoundNotFound when there is none
func (s *service) GetCurrentRound(ctx context.Context) (*RoundOutput, error) {
	r, err := s.roundRepo.GetCurrentRound(ctx)
	if err != nil {
		if errors.Is(err, roundRepo.ErrRoundNotFound) {
			return nil, ErrRoundNotFound
		}
		return nil, err
	}
	if !r.Status.IsOpen() {
		return nil, ErrRoundNotFound
	}

	return snapshot(r), nil
}

// GetSettlement returns the settlement record of a settled or archived round
func (s *service) GetSettlement(ctx context.Context, input *GetSettlementInput) (*GetSettlementOutput, error) {
	if input == nil || input.RoundID == "" {
		return nil, errors.New("input and round ID cannot be empty")
	}

	out, err := s.GetRound(ctx, &GetRoundInput{RoundID: input.RoundID})
	if err != nil {
		return nil, err
	}

	record, ok := models.SettlementRecordFor(out.Round)
	if !ok {
		return nil, ErrNotSettled
	}

	return &GetSettlementOutput{
		Record: record,
	}, nil
}

// ListRounds returns recent rounds, newest first
func (s *service) ListRounds(ctx context.Context, input *ListRoundsInput) (*ListRoundsOutput, error) {
	repoInput := &roundRepo.ListRoundsInput{}
	if input != nil {
		repoInput.Limit = input.Limit
		repoInput.Status = input.Status
	}

	out, err := s.roundRepo.ListRounds(ctx, repoInput)
	if err != nil {
		return nil, err
	}

	rounds := make([]*RoundOutput, 0, len(out.Rounds))
	for _, r := range out.Rounds {
		rounds = append(rounds, snapshot(r))
	}

	return &ListRoundsOutput{
		Rounds: rounds,
	}, nil
}
