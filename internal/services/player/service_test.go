package player

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/starwheel/internal/common/clock/mocks"
	"github.com/KirkDiggler/starwheel/internal/common/keylock"
	"github.com/KirkDiggler/starwheel/internal/models"
	"github.com/KirkDiggler/starwheel/internal/providers"
	providerMocks "github.com/KirkDiggler/starwheel/internal/providers/mocks"
	accountRepo "github.com/KirkDiggler/starwheel/internal/repositories/account"
	"github.com/KirkDiggler/starwheel/internal/repositories/store"
)

type PlayerServiceTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockClock    *mocks.MockClock
	mockIdentity *providerMocks.MockIdentityProvider
	mr           *miniredis.Miniredis
	client       *redis.Client
	store        store.Store
	accountRepo  accountRepo.Repository
	service      *service
	ctx          context.Context
	testTime     time.Time
}

func (s *PlayerServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = mocks.NewMockClock(s.mockCtrl)
	s.mockIdentity = providerMocks.NewMockIdentityProvider(s.mockCtrl)
	s.ctx = context.Background()
	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr
	s.client = redis.NewClient(&redis.Options{Addr: s.mr.Addr()})

	st, err := store.NewRedis(&store.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.store = st
	accounts, err := accountRepo.NewRedis(&accountRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.accountRepo = accounts

	startingBalance := int64(250)
	svc, err := New(&Config{
		StartingBalance:  &startingBalance,
		Store:            s.store,
		AccountRepo:      s.accountRepo,
		IdentityProvider: s.mockIdentity,
		Locker:           keylock.New(),
		Clock:            s.mockClock,
	})
	s.Require().NoError(err)
	s.service = svc
}

func (s *PlayerServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
	s.client.Close()
	s.mr.Close()
}

func TestPlayerServiceSuite(t *testing.T) {
	suite.Run(t, new(PlayerServiceTestSuite))
}

func (s *PlayerServiceTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	negative := int64(-1)
	_, err = New(&Config{
		StartingBalance:  &negative,
		Store:            s.store,
		AccountRepo:      s.accountRepo,
		IdentityProvider: s.mockIdentity,
		Locker:           keylock.New(),
		Clock:            s.mockClock,
	})
	s.ErrorIs(err, ErrNegativeStartBalance)
}

func (s *PlayerServiceTestSuite) TestAuthenticateCreatesAccountOnce() {
	s.mockIdentity.EXPECT().Resolve(s.ctx, "token").Return(&providers.Identity{
		ExternalID:  "user-1",
		DisplayName: "Alice",
		AvatarRef:   "a.png",
	}, nil).Times(2)

	first, err := s.service.Authenticate(s.ctx, &AuthenticateInput{Credential: "token"})
	s.Require().NoError(err)
	s.True(first.Created)
	s.Equal(int64(250), first.Account.Balance)
	s.Equal("Alice", first.Account.DisplayName)

	// Spending must survive a second sign-in
	err = s.store.Atomically(s.ctx, func(tx store.Tx) error {
		a, err := tx.GetAccount(s.ctx, "user-1")
		if err != nil {
			return err
		}
		a.Balance = 40
		return tx.PutAccount(a)
	})
	s.Require().NoError(err)

	second, err := s.service.Authenticate(s.ctx, &AuthenticateInput{Credential: "token"})
	s.Require().NoError(err)
	s.False(second.Created)
	s.Equal(int64(40), second.Account.Balance)
}

func (s *PlayerServiceTestSuite) TestAuthenticateRefreshesProfile() {
	s.mockIdentity.EXPECT().Resolve(s.ctx, "old").Return(&providers.Identity{ExternalID: "user-1", DisplayName: "Alice"}, nil)
	s.mockIdentity.EXPECT().Resolve(s.ctx, "new").Return(&providers.Identity{ExternalID: "user-1", DisplayName: "Alicia", AvatarRef: "b.png"}, nil)

	_, err := s.service.Authenticate(s.ctx, &AuthenticateInput{Credential: "old"})
	s.Require().NoError(err)
	_, err = s.service.Authenticate(s.ctx, &AuthenticateInput{Credential: "new"})
	s.Require().NoError(err)

	account, err := s.service.GetAccount(s.ctx, &GetAccountInput{PlayerID: "user-1"})
	s.Require().NoError(err)
	s.Equal("Alicia", account.DisplayName)
	s.Equal("b.png", account.AvatarRef)
}

func (s *PlayerServiceTestSuite) TestAuthenticateErrors() {
	_, err := s.service.Authenticate(s.ctx, &AuthenticateInput{})
	s.ErrorIs(err, ErrInvalidCredential)

	s.mockIdentity.EXPECT().Resolve(s.ctx, "bad").Return(nil, providers.ErrInvalidCredential)
	_, err = s.service.Authenticate(s.ctx, &AuthenticateInput{Credential: "bad"})
	s.ErrorIs(err, ErrInvalidCredential)

	s.mockIdentity.EXPECT().Resolve(s.ctx, "down").Return(nil, providers.ErrUpstreamUnavailable)
	_, err = s.service.Authenticate(s.ctx, &AuthenticateInput{Credential: "down"})
	s.ErrorIs(err, providers.ErrUpstreamUnavailable)

	// No state is touched when the provider fails
	keys := s.mr.Keys()
	s.Empty(keys)
}

func (s *PlayerServiceTestSuite) TestGetAccountNotFound() {
	_, err := s.service.GetAccount(s.ctx, &GetAccountInput{PlayerID: "nobody"})
	s.True(errors.Is(err, ErrPlayerNotFound))
}

func (s *PlayerServiceTestSuite) TestGetLeaderboard() {
	err := s.store.Atomically(s.ctx, func(tx store.Tx) error {
		for id, winnings := range map[string]int64{"a": 10, "b": 30, "c": 20} {
			a := models.NewAccount(id, id, "", 0, s.testTime)
			a.TotalWinnings = winnings
			if err := tx.PutAccount(a); err != nil {
				return err
			}
		}
		return nil
	})
	s.Require().NoError(err)

	out, err := s.service.GetLeaderboard(s.ctx, &GetLeaderboardInput{Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(out.Entries, 2)
	s.Equal("b", out.Entries[0].PlayerID)
	s.Equal("c", out.Entries[1].PlayerID)
}
