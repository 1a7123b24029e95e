package payout

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/starwheel/internal/common/clock/mocks"
	"github.com/KirkDiggler/starwheel/internal/common/keylock"
	uuidMocks "github.com/KirkDiggler/starwheel/internal/common/uuid/mocks"
	"github.com/KirkDiggler/starwheel/internal/models"
	accountRepo "github.com/KirkDiggler/starwheel/internal/repositories/account"
	ledgerRepo "github.com/KirkDiggler/starwheel/internal/repositories/ledger"
	roundRepo "github.com/KirkDiggler/starwheel/internal/repositories/round"
	"github.com/KirkDiggler/starwheel/internal/repositories/store"
)

type PayoutServiceTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	mockClock   *mocks.MockClock
	mockUUID    *uuidMocks.MockUUID
	mr          *miniredis.Miniredis
	client      *redis.Client
	store       store.Store
	accountRepo accountRepo.Repository
	roundRepo   roundRepo.Repository
	ledgerRepo  ledgerRepo.Repository
	service     Service
	ctx         context.Context
	testTime    time.Time
	ids         atomic.Int64

	numbers models.WinningNumbers
}

func (s *PayoutServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = mocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.ctx = context.Background()
	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.numbers = models.WinningNumbers{Center: 4, Left: 3, Right: 5}

	s.ids.Store(0)
	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()
	s.mockUUID.EXPECT().NewUUID().DoAndReturn(func() string {
		return fmt.Sprintf("tx-%d", s.ids.Add(1))
	}).AnyTimes()

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
	rounds, err := roundRepo.NewRedis(&roundRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.roundRepo = rounds
	ledgers, err := ledgerRepo.NewRedis(&ledgerRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.ledgerRepo = ledgers

	svc, err := New(&Config{
		Store:         s.store,
		RoundRepo:     s.roundRepo,
		Locker:        keylock.New(),
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)
	s.service = svc
}

func (s *PayoutServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
	s.client.Close()
	s.mr.Close()
}

func TestPayoutServiceSuite(t *testing.T) {
	suite.Run(t, new(PayoutServiceTestSuite))
}

// seedDrawingRound stores A(4) B(3) C(7) at 90 stars each in a drawing round
func (s *PayoutServiceTestSuite) seedDrawingRound(extra ...models.Entry) *models.Round {
	r := models.NewRound("r1", 10, 10, s.testTime)
	r.Status = models.RoundStatusDrawing
	numbers := s.numbers
	r.WinningNumbers = &numbers
	r.Entries = append([]models.Entry{
		{PlayerID: "A", Number: 4, Name: "A", JoinedAt: s.testTime},
		{PlayerID: "B", Number: 3, Name: "B", JoinedAt: s.testTime},
		{PlayerID: "C", Number: 7, Name: "C", JoinedAt: s.testTime},
	}, extra...)

	err := s.store.Atomically(s.ctx, func(tx store.Tx) error {
		for _, id := range []string{"A", "B", "C"} {
			if err := tx.PutAccount(models.NewAccount(id, id, "", 90, s.testTime)); err != nil {
				return err
			}
		}
		return tx.PutRound(r)
	})
	s.Require().NoError(err)
	return r
}

func (s *PayoutServiceTestSuite) account(id string) *models.Account {
	a, err := s.accountRepo.GetAccount(s.ctx, &accountRepo.GetAccountInput{PlayerID: id})
	s.Require().NoError(err)
	return a
}

func (s *PayoutServiceTestSuite) round() *models.Round {
	r, err := s.roundRepo.GetRound(s.ctx, &roundRepo.GetRoundInput{RoundID: "r1"})
	s.Require().NoError(err)
	return r
}

func (s *PayoutServiceTestSuite) TestSettle() {
	s.seedDrawingRound()

	out, err := s.service.Settle(s.ctx, &SettleInput{RoundID: "r1", Numbers: s.numbers})
	s.Require().NoError(err)

	s.Equal(&models.SettlementRecord{
		RoundID:        "r1",
		WinningNumbers: s.numbers,
		Pool:           30,
		Payouts: []models.Payout{
			{PlayerID: "A", PrizeShare: 15, Role: models.PrizeRoleCenter, Number: 4},
			{PlayerID: "B", PrizeShare: 7, Role: models.PrizeRoleLeft, Number: 3},
		},
		Unallocated: 8,
		SettledAt:   s.testTime,
	}, out.Record)

	a, b, c := s.account("A"), s.account("B"), s.account("C")
	s.Equal(int64(105), a.Balance)
	s.Equal(int64(97), b.Balance)
	s.Equal(int64(90), c.Balance)

	s.Equal(1, a.GamesPlayed)
	s.Equal(1, a.GamesWon)
	s.Equal(int64(15), a.TotalWinnings)
	s.Equal(1, c.GamesPlayed)
	s.Equal(0, c.GamesWon)
	s.Equal(int64(0), c.TotalWinnings)

	r := s.round()
	s.Equal(models.RoundStatusSettled, r.Status)
	s.Nil(r.Failure)

	txns, err := s.ledgerRepo.ListTransactionsForRound(s.ctx, &ledgerRepo.ListTransactionsForRoundInput{RoundID: "r1"})
	s.Require().NoError(err)
	s.Require().Len(txns.Transactions, 2)
	for _, txn := range txns.Transactions {
		s.Equal(models.TransactionKindPrizePayout, txn.Kind)
	}
}

func (s *PayoutServiceTestSuite) TestSettleTwiceIsRejected() {
	s.seedDrawingRound()

	_, err := s.service.Settle(s.ctx, &SettleInput{RoundID: "r1", Numbers: s.numbers})
	s.Require().NoError(err)

	_, err = s.service.Settle(s.ctx, &SettleInput{RoundID: "r1", Numbers: s.numbers})
	s.ErrorIs(err, ErrRoundNotDrawing)
	s.False(errors.Is(err, ErrSettlementFailed))
	s.Equal(int64(105), s.account("A").Balance)
}

func (s *PayoutServiceTestSuite) TestSettleRejectsOtherNumbers() {
	s.seedDrawingRound()

	_, err := s.service.Settle(s.ctx, &SettleInput{
		RoundID: "r1",
		Numbers: models.WinningNumbers{Center: 7, Left: 6, Right: 8},
	})
	s.ErrorIs(err, ErrNumbersMismatch)
	s.Equal(models.RoundStatusDrawing, s.round().Status)
}

func (s *PayoutServiceTestSuite) TestSettleUnknownRound() {
	_, err := s.service.Settle(s.ctx, &SettleInput{RoundID: "nope", Numbers: s.numbers})
	s.ErrorIs(err, ErrRoundNotFound)
}

func (s *PayoutServiceTestSuite) TestBotSharesAreNotCredited() {
	s.seedDrawingRound(models.Entry{PlayerID: "bot-1", Number: 5, Name: "Bot 5", Bot: true, JoinedAt: s.testTime})

	out, err := s.service.Settle(s.ctx, &SettleInput{RoundID: "r1", Numbers: s.numbers})
	s.Require().NoError(err)

	// pool of 4 seats is 40: center 20, sides 10
	s.Require().Len(out.Record.Payouts, 3)
	s.Equal(models.Payout{PlayerID: "bot-1", PrizeShare: 10, Role: models.PrizeRoleRight, Number: 5, Bot: true}, out.Record.Payouts[2])
	s.Equal(int64(110), s.account("A").Balance)
	s.Equal(int64(100), s.account("B").Balance)
	s.False(s.mr.Exists(accountRepo.Key("bot-1")))
}

func (s *PayoutServiceTestSuite) TestFailureIsRecordedAndNothingApplied() {
	s.seedDrawingRound()
	s.mr.Del(accountRepo.Key("B"))

	_, err := s.service.Settle(s.ctx, &SettleInput{RoundID: "r1", Numbers: s.numbers})
	s.Require().ErrorIs(err, ErrSettlementFailed)

	var failed *SettlementFailedError
	s.Require().ErrorAs(err, &failed)
	s.Equal("r1", failed.RoundID)
	s.Len(failed.Planned, 2)
	s.Empty(failed.Applied)

	// Nothing from the unit reached Redis
	s.Equal(int64(90), s.account("A").Balance)
	s.Equal(0, s.account("A").GamesPlayed)

	r := s.round()
	s.Equal(models.RoundStatusDrawing, r.Status)
	s.Require().NotNil(r.Failure)
	s.Equal(s.numbers, r.Failure.Numbers)
	s.Empty(r.Failure.Accounted)

	// Once the account is back the same numbers settle normally
	s.Require().NoError(s.store.Atomically(s.ctx, func(tx store.Tx) error {
		return tx.PutAccount(models.NewAccount("B", "B", "", 90, s.testTime))
	}))
	_, err = s.service.Settle(s.ctx, &SettleInput{RoundID: "r1", Numbers: s.numbers})
	s.Require().NoError(err)
	s.Equal(int64(105), s.account("A").Balance)
	s.Equal(int64(97), s.account("B").Balance)
	s.Nil(s.round().Failure)
}

func (s *PayoutServiceTestSuite) TestIndexFailureDoesNotFailSettlement() {
	s.seedDrawingRound()
	// Leaderboard and ledger indexes are unusable; only their ZADDs fail inside EXEC
	s.Require().NoError(s.mr.Set(accountRepo.WinningsKey, "corrupt"))
	s.Require().NoError(s.mr.Set(ledgerRepo.PlayerIndexKey("B"), "corrupt"))

	out, err := s.service.Settle(s.ctx, &SettleInput{RoundID: "r1", Numbers: s.numbers})
	s.Require().NoError(err)
	s.Len(out.Record.Payouts, 2)

	s.Equal(int64(105), s.account("A").Balance)
	s.Equal(int64(97), s.account("B").Balance)
	s.Equal(1, s.account("C").GamesPlayed)

	r := s.round()
	s.Equal(models.RoundStatusSettled, r.Status)
	s.Nil(r.Failure)

	_, err = s.service.Settle(s.ctx, &SettleInput{RoundID: "r1", Numbers: s.numbers})
	s.ErrorIs(err, ErrRoundNotDrawing)
}

func (s *PayoutServiceTestSuite) TestFailureReportsPrimaryCommittedAccounts() {
	s.seedDrawingRound()
	svc := s.service.(*service)

	run := &attempt{
		planned: []models.Payout{
			{PlayerID: "A", PrizeShare: 15, Role: models.PrizeRoleCenter, Number: 4},
			{PlayerID: "B", PrizeShare: 7, Role: models.PrizeRoleLeft, Number: 3},
		},
		touched: []string{"A", "B", "C"},
	}
	cause := &store.CommitError{
		Committed: []string{accountRepo.Key("A"), accountRepo.Key("B")},
		Failed:    []string{accountRepo.Key("C")},
		Degraded:  []string{accountRepo.Key("B")},
		Err:       errors.New("EXEC failed"),
	}

	failed := svc.fail(s.ctx, "r1", s.numbers, run, cause, s.testTime)
	s.Equal("r1", failed.RoundID)
	s.Equal(run.planned, failed.Applied)

	r := s.round()
	s.Require().NotNil(r.Failure)
	s.Equal([]string{"A", "B"}, r.Failure.Accounted)
	s.Len(r.Failure.Applied, 2)
}
