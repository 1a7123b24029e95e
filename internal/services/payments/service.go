package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/starwheel/internal/common/clock"
	"github.com/KirkDiggler/starwheel/internal/common/keylock"
	"github.com/KirkDiggler/starwheel/internal/common/logger"
	"github.com/KirkDiggler/starwheel/internal/common/uuid"
	"github.com/KirkDiggler/starwheel/internal/models"
	"github.com/KirkDiggler/starwheel/internal/providers"
	accountRepo "github.com/KirkDiggler/starwheel/internal/repositories/account"
	ledgerRepo "github.com/KirkDiggler/starwheel/internal/repositories/ledger"
	"github.com/KirkDiggler/starwheel/internal/repositories/store"
	"github.com/KirkDiggler/starwheel/internal/services/ledger"
	"go.uber.org/zap"
)

type service struct {
	store           store.Store
	ledgerRepo      ledgerRepo.Repository
	paymentProvider providers.PaymentProvider
	locker          *keylock.Locker
	clock           clock.Clock
	uuidGenerator   uuid.UUID
	log             *zap.Logger
}

// New creates a new payments service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Store == nil {
		return nil, ErrNilStore
	}
	if cfg.LedgerRepo == nil {
		return nil, ErrNilLedgerRepo
	}
	if cfg.PaymentProvider == nil {
		return nil, ErrNilPaymentProvider
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
		store:           cfg.Store,
		ledgerRepo:      cfg.LedgerRepo,
		paymentProvider: cfg.PaymentProvider,
		locker:          cfg.Locker,
		clock:           cfg.Clock,
		uuidGenerator:   cfg.UUIDGenerator,
		log:             log.Named("payments"),
	}, nil
}

func mapAccountErr(err error) error {
	if errors.Is(err, accountRepo.ErrAccountNotFound) || errors.Is(err, ledger.ErrAccountNotFound) {
		return ErrPlayerNotFound
	}
	return err
}

// CreateCharge calls the provider first, outside of any lock. A provider
// failure leaves no trace.
func (s *service) CreateCharge(ctx context.Context, input *CreateChargeInput) (*models.Charge, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}
	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	handle, err := s.paymentProvider.CreateCharge(ctx, &providers.ChargeRequest{
		PlayerID: input.PlayerID,
		Amount:   input.Amount,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create charge: %w", err)
	}

	charge := &models.Charge{
		ID:         handle.ChargeID,
		PlayerID:   input.PlayerID,
		Amount:     input.Amount,
		Direction:  models.ChargeDirectionTopup,
		Status:     models.ChargeStatusPending,
		PaymentURL: handle.PaymentURL,
		CreatedAt:  s.clock.Now(),
	}

	err = s.store.Atomically(ctx, func(tx store.Tx) error {
		if _, err := tx.GetAccount(ctx, input.PlayerID); err != nil {
			return mapAccountErr(err)
		}
		if _, err := tx.GetCharge(ctx, charge.ID); err == nil {
			return ErrChargeMismatch
		} else if !errors.Is(err, ledgerRepo.ErrChargeNotFound) {
			return err
		}
		return tx.PutCharge(charge)
	})
	if err != nil {
		return nil, err
	}

	logger.For(ctx, s.log).Info("charge created",
		zap.String("charge_id", charge.ID),
		zap.String("player_id", charge.PlayerID),
		zap.Int64("amount", charge.Amount),
	)

	return charge, nil
}

// ConfirmCharge credits the charge amount and marks it confirmed in one unit
func (s *service) ConfirmCharge(ctx context.Context, input *ConfirmChargeInput) (*ConfirmChargeOutput, error) {
	if input == nil || input.ChargeID == "" {
		return nil, errors.New("input and charge ID cannot be empty")
	}

	pending, err := s.ledgerRepo.GetCharge(ctx, &ledgerRepo.GetChargeInput{ChargeID: input.ChargeID})
	if err != nil {
		if errors.Is(err, ledgerRepo.ErrChargeNotFound) {
			return nil, ErrChargeNotFound
		}
		return nil, err
	}
	if pending.Direction != models.ChargeDirectionTopup {
		return nil, ErrChargeMismatch
	}

	release := s.locker.Acquire(keylock.PlayerKey(pending.PlayerID))
	defer release()

	var (
		output *ConfirmChargeOutput
		credit *models.Transaction
	)
	err = s.store.Atomically(ctx, func(tx store.Tx) error {
		credit = nil

		charge, err := tx.GetCharge(ctx, input.ChargeID)
		if err != nil {
			return err
		}
		if charge.Status == models.ChargeStatusConfirmed {
			account, err := tx.GetAccount(ctx, charge.PlayerID)
			if err != nil {
				return mapAccountErr(err)
			}
			output = &ConfirmChargeOutput{Charge: charge, Balance: account.Balance, AlreadyConfirmed: true}
			return nil
		}

		now := s.clock.Now()
		account, txn, err := ledger.ApplyCredit(ctx, tx, ledger.Posting{
			ID:        s.uuidGenerator.NewUUID(),
			PlayerID:  charge.PlayerID,
			Kind:      models.TransactionKindBalanceTopup,
			Amount:    charge.Amount,
			Reference: charge.ID,
			At:        now,
		})
		if err != nil {
			return mapAccountErr(err)
		}

		charge.Status = models.ChargeStatusConfirmed
		charge.TransactionID = txn.ID
		charge.ConfirmedAt = &now
		if err := tx.PutCharge(charge); err != nil {
			return err
		}

		credit = txn
		output = &ConfirmChargeOutput{Charge: charge, Balance: account.Balance}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if credit != nil {
		ledger.RecordCommitted(credit)
		logger.For(ctx, s.log).Info("charge confirmed",
			zap.String("charge_id", input.ChargeID),
			zap.String("player_id", output.Charge.PlayerID),
			zap.Int64("balance", output.Balance),
		)
	}

	return output, nil
}

// RecordWithdrawal debits a payout executed by the provider, keyed by payout id
func (s *service) RecordWithdrawal(ctx context.Context, input *RecordWithdrawalInput) (*RecordWithdrawalOutput, error) {
	if input == nil || input.PayoutID == "" || input.PlayerID == "" {
		return nil, errors.New("input, payout ID and player ID cannot be empty")
	}
	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	release := s.locker.Acquire(keylock.PlayerKey(input.PlayerID))
	defer release()

	var (
		output *RecordWithdrawalOutput
		debit  *models.Transaction
	)
	err := s.store.Atomically(ctx, func(tx store.Tx) error {
		debit = nil

		existing, err := tx.GetCharge(ctx, input.PayoutID)
		switch {
		case err == nil:
			if existing.Direction != models.ChargeDirectionWithdrawal ||
				existing.PlayerID != input.PlayerID || existing.Amount != input.Amount {
				return ErrChargeMismatch
			}
			account, err := tx.GetAccount(ctx, input.PlayerID)
			if err != nil {
				return mapAccountErr(err)
			}
			output = &RecordWithdrawalOutput{Charge: existing, Balance: account.Balance, AlreadyRecorded: true}
			return nil
		case !errors.Is(err, ledgerRepo.ErrChargeNotFound):
			return err
		}

		now := s.clock.Now()
		account, txn, err := ledger.ApplyDebit(ctx, tx, ledger.Posting{
			ID:        s.uuidGenerator.NewUUID(),
			PlayerID:  input.PlayerID,
			Kind:      models.TransactionKindWithdrawal,
			Amount:    input.Amount,
			Reference: input.PayoutID,
			At:        now,
		})
		if err != nil {
			return mapAccountErr(err)
		}

		charge := &models.Charge{
			ID:            input.PayoutID,
			PlayerID:      input.PlayerID,
			Amount:        input.Amount,
			Direction:     models.ChargeDirectionWithdrawal,
			Status:        models.ChargeStatusConfirmed,
			TransactionID: txn.ID,
			CreatedAt:     now,
			ConfirmedAt:   &now,
		}
		if err := tx.PutCharge(charge); err != nil {
			return err
		}

		debit = txn
		output = &RecordWithdrawalOutput{Charge: charge, Balance: account.Balance}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if debit != nil {
		ledger.RecordCommitted(debit)
		logger.For(ctx, s.log).Info("withdrawal recorded",
			zap.String("payout_id", input.PayoutID),
			zap.String("player_id", input.PlayerID),
			zap.Int64("balance", output.Balance),
		)
	}

	return output, nil
}
