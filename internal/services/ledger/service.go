package ledger

import (
	"context"
	"errors"

	"github.com/KirkDiggler/starwheel/internal/common/clock"
	"github.com/KirkDiggler/starwheel/internal/common/keylock"
	"github.com/KirkDiggler/starwheel/internal/common/logger"
	"github.com/KirkDiggler/starwheel/internal/common/uuid"
	"github.com/KirkDiggler/starwheel/internal/models"
	accountRepo "github.com/KirkDiggler/starwheel/internal/repositories/account"
	ledgerRepo "github.com/KirkDiggler/starwheel/internal/repositories/ledger"
	"github.com/KirkDiggler/starwheel/internal/repositories/store"
	"go.uber.org/zap"
)

type service struct {
	store         store.Store
	accountRepo   accountRepo.Repository
	ledgerRepo    ledgerRepo.Repository
	locker        *keylock.Locker
	clock         clock.Clock
	uuidGenerator uuid.UUID
	log           *zap.Logger
}

// New creates a new ledger service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Store == nil {
		return nil, ErrNilStore
	}
	if cfg.AccountRepo == nil {
		return nil, ErrNilAccountRepo
	}
	if cfg.LedgerRepo == nil {
		return nil, ErrNilLedgerRepo
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

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &service{
		store:         cfg.Store,
		accountRepo:   cfg.AccountRepo,
		ledgerRepo:    cfg.LedgerRepo,
		locker:        cfg.Locker,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
		log:           log.Named("ledger"),
	}, nil
}

// Debit removes stars from a player's balance
func (s *service) Debit(ctx context.Context, input *DebitInput) (*PostingOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}

	kind := input.Kind
	if kind == "" {
		kind = models.TransactionKindWithdrawal
	}

	return s.post(ctx, ApplyDebit, Posting{
		PlayerID:  input.PlayerID,
		Kind:      kind,
		Amount:    input.Amount,
		RoundID:   input.RoundID,
		Reference: input.Reference,
	})
}

// Credit adds stars to a player's balance
func (s *service) Credit(ctx context.Context, input *CreditInput) (*PostingOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}

	kind := input.Kind
	if kind == "" {
		kind = models.TransactionKindBalanceTopup
	}

	return s.post(ctx, ApplyCredit, Posting{
		PlayerID:  input.PlayerID,
		Kind:      kind,
		Amount:    input.Amount,
		RoundID:   input.RoundID,
		Reference: input.Reference,
	})
}

type applyFunc func(ctx context.Context, tx store.Tx, p Posting) (*models.Account, *models.Transaction, error)

func (s *service) post(ctx context.Context, apply applyFunc, p Posting) (*PostingOutput, error) {
	if p.Amount < 0 {
		return nil, ErrInvalidAmount
	}

	release := s.locker.Acquire(keylock.PlayerKey(p.PlayerID))
	defer release()

	p.ID = s.uuidGenerator.NewUUID()
	p.At = s.clock.Now()

	var output *PostingOutput
	err := s.store.Atomically(ctx, func(tx store.Tx) error {
		account, txn, err := apply(ctx, tx, p)
		if err != nil {
			return err
		}
		output = &PostingOutput{
			Balance:     account.Balance,
			Transaction: txn,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	RecordCommitted(output.Transaction)
	logger.For(ctx, s.log).Info("posting committed",
		zap.String("player_id", p.PlayerID),
		zap.String("kind", string(p.Kind)),
		zap.Int64("amount", p.Amount),
		zap.Int64("balance", output.Balance),
	)

	return output, nil
}

// BalanceOf returns a player's committed balance
func (s *service) BalanceOf(ctx context.Context, input *BalanceOfInput) (*BalanceOfOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}

	account, err := s.accountRepo.GetAccount(ctx, &accountRepo.GetAccountInput{
		PlayerID: input.PlayerID,
	})
	if err != nil {
		if errors.Is(err, accountRepo.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	return &BalanceOfOutput{
		Balance: account.Balance,
	}, nil
}

// ListTransactions returns audit records for a player or a round
func (s *service) ListTransactions(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	if input == nil || (input.PlayerID == "" && input.RoundID == "") {
		return nil, errors.New("player ID or round ID is required")
	}

	var (
		out *ledgerRepo.ListTransactionsOutput
		err error
	)
	if input.PlayerID != "" {
		out, err = s.ledgerRepo.ListTransactionsForPlayer(ctx, &ledgerRepo.ListTransactionsForPlayerInput{
			PlayerID: input.PlayerID,
			Limit:    input.Limit,
		})
	} else {
		out, err = s.ledgerRepo.ListTransactionsForRound(ctx, &ledgerRepo.ListTransactionsForRoundInput{
			RoundID: input.RoundID,
		})
	}
	if err != nil {
		return nil, err
	}

	return &ListTransactionsOutput{
		Transactions: out.Transactions,
	}, nil
}
