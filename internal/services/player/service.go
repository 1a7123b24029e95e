package player

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/starwheel/internal/common/clock"
	"github.com/KirkDiggler/starwheel/internal/common/keylock"
	"github.com/KirkDiggler/starwheel/internal/common/logger"
	"github.com/KirkDiggler/starwheel/internal/models"
	"github.com/KirkDiggler/starwheel/internal/providers"
	accountRepo "github.com/KirkDiggler/starwheel/internal/repositories/account"
	"github.com/KirkDiggler/starwheel/internal/repositories/store"
	"go.uber.org/zap"
)

type service struct {
	startingBalance  int64
	store            store.Store
	accountRepo      accountRepo.Repository
	identityProvider providers.IdentityProvider
	locker           *keylock.Locker
	clock            clock.Clock
	log              *zap.Logger
}

// New creates a new player service
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
	if cfg.IdentityProvider == nil {
		return nil, ErrNilIdentityProvider
	}
	if cfg.Locker == nil {
		return nil, ErrNilLocker
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	startingBalance := models.DefaultStartingBalance
	if cfg.StartingBalance != nil {
		if *cfg.StartingBalance < 0 {
			return nil, ErrNegativeStartBalance
		}
		startingBalance = *cfg.StartingBalance
	}

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &service{
		startingBalance:  startingBalance,
		store:            cfg.Store,
		accountRepo:      cfg.AccountRepo,
		identityProvider: cfg.IdentityProvider,
		locker:           cfg.Locker,
		clock:            cfg.Clock,
		log:              log.Named("player"),
	}, nil
}

// Authenticate resolves the credential before any lock is taken, then creates
// the account once or refreshes its display fields
func (s *service) Authenticate(ctx context.Context, input *AuthenticateInput) (*AuthenticateOutput, error) {
	if input == nil || input.Credential == "" {
		return nil, ErrInvalidCredential
	}

	identity, err := s.identityProvider.Resolve(ctx, input.Credential)
	if err != nil {
		if errors.Is(err, providers.ErrInvalidCredential) {
			return nil, ErrInvalidCredential
		}
		return nil, fmt.Errorf("failed to resolve identity: %w", err)
	}

	release := s.locker.Acquire(keylock.PlayerKey(identity.ExternalID))
	defer release()

	var output *AuthenticateOutput
	err = s.store.Atomically(ctx, func(tx store.Tx) error {
		now := s.clock.Now()

		account, err := tx.GetAccount(ctx, identity.ExternalID)
		switch {
		case errors.Is(err, accountRepo.ErrAccountNotFound):
			account = models.NewAccount(identity.ExternalID, identity.DisplayName, identity.AvatarRef, s.startingBalance, now)
			output = &AuthenticateOutput{Account: account, Created: true}
			return tx.PutAccount(account)
		case err != nil:
			return err
		}

		output = &AuthenticateOutput{Account: account}
		if account.DisplayName == identity.DisplayName && account.AvatarRef == identity.AvatarRef {
			return nil
		}
		account.DisplayName = identity.DisplayName
		account.AvatarRef = identity.AvatarRef
		account.UpdatedAt = now
		return tx.PutAccount(account)
	})
	if err != nil {
		return nil, err
	}

	if output.Created {
		logger.For(ctx, s.log).Info("account created",
			zap.String("player_id", output.Account.ID),
			zap.Int64("balance", output.Account.Balance),
		)
	}

	return output, nil
}

func (s *service) GetAccount(ctx context.Context, input *GetAccountInput) (*models.Account, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}

	account, err := s.accountRepo.GetAccount(ctx, &accountRepo.GetAccountInput{PlayerID: input.PlayerID})
	if err != nil {
		if errors.Is(err, accountRepo.ErrAccountNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	return account, nil
}

func (s *service) GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error) {
	limit := 0
	if input != nil {
		limit = input.Limit
	}

	out, err := s.accountRepo.GetLeaderboard(ctx, &accountRepo.GetLeaderboardInput{Limit: limit})
	if err != nil {
		return nil, err
	}

	return &GetLeaderboardOutput{
		Entries: out.Entries,
	}, nil
}
