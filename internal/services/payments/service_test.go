package payments

import (
	"context"
	"fmt"
	"sync"
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
	"github.com/KirkDiggler/starwheel/internal/providers"
	providerMocks "github.com/KirkDiggler/starwheel/internal/providers/mocks"
	ledgerRepo "github.com/KirkDiggler/starwheel/internal/repositories/ledger"
	"github.com/KirkDiggler/starwheel/internal/repositories/store"
)

type PaymentsServiceTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockClock    *mocks.MockClock
	mockUUID     *uuidMocks.MockUUID
	mockProvider *providerMocks.MockPaymentProvider
	mr           *miniredis.Miniredis
	client       *redis.Client
	store        store.Store
	ledgerRepo   ledgerRepo.Repository
	service      *service
	ctx          context.Context
	testTime     time.Time
	ids          atomic.Int64
}

func (s *PaymentsServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = mocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.mockProvider = providerMocks.NewMockPaymentProvider(s.mockCtrl)
	s.ctx = context.Background()
	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)

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
	ledgers, err := ledgerRepo.NewRedis(&ledgerRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.ledgerRepo = ledgers

	s.service = s.newService(keylock.New())

	err = s.store.Atomically(s.ctx, func(tx store.Tx) error {
		return tx.PutAccount(models.NewAccount("p1", "Alice", "", 100, s.testTime))
	})
	s.Require().NoError(err)
}

func (s *PaymentsServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
	s.client.Close()
	s.mr.Close()
}

func TestPaymentsServiceSuite(t *testing.T) {
	suite.Run(t, new(PaymentsServiceTestSuite))
}

func (s *PaymentsServiceTestSuite) newService(locker *keylock.Locker) *service {
	svc, err := New(&Config{
		Store:           s.store,
		LedgerRepo:      s.ledgerRepo,
		PaymentProvider: s.mockProvider,
		Locker:          locker,
		Clock:           s.mockClock,
		UUIDGenerator:   s.mockUUID,
	})
	s.Require().NoError(err)
	return svc
}

func (s *PaymentsServiceTestSuite) balance() int64 {
	var balance int64
	err := s.store.Atomically(s.ctx, func(tx store.Tx) error {
		a, err := tx.GetAccount(s.ctx, "p1")
		if err != nil {
			return err
		}
		balance = a.Balance
		return nil
	})
	s.Require().NoError(err)
	return balance
}

func (s *PaymentsServiceTestSuite) createCharge(id string, amount int64) *models.Charge {
	s.mockProvider.EXPECT().
		CreateCharge(gomock.Any(), &providers.ChargeRequest{PlayerID: "p1", Amount: amount}).
		Return(&providers.ChargeHandle{ChargeID: id, PaymentURL: "https://pay/" + id}, nil)

	charge, err := s.service.CreateCharge(s.ctx, &CreateChargeInput{PlayerID: "p1", Amount: amount})
	s.Require().NoError(err)
	return charge
}

func (s *PaymentsServiceTestSuite) TestCreateCharge() {
	charge := s.createCharge("ch_1", 50)
	s.Equal(models.ChargeStatusPending, charge.Status)
	s.Equal("https://pay/ch_1", charge.PaymentURL)

	stored, err := s.ledgerRepo.GetCharge(s.ctx, &ledgerRepo.GetChargeInput{ChargeID: "ch_1"})
	s.Require().NoError(err)
	s.Equal(charge.Amount, stored.Amount)
	s.Equal(models.ChargeDirectionTopup, stored.Direction)

	// Nothing is credited until confirmation
	s.Equal(int64(100), s.balance())
}

func (s *PaymentsServiceTestSuite) TestCreateChargeErrors() {
	_, err := s.service.CreateCharge(s.ctx, &CreateChargeInput{PlayerID: "p1"})
	s.ErrorIs(err, ErrInvalidAmount)

	s.mockProvider.EXPECT().CreateCharge(gomock.Any(), gomock.Any()).Return(nil, providers.ErrUpstreamUnavailable)
	_, err = s.service.CreateCharge(s.ctx, &CreateChargeInput{PlayerID: "p1", Amount: 10})
	s.ErrorIs(err, providers.ErrUpstreamUnavailable)

	s.mockProvider.EXPECT().CreateCharge(gomock.Any(), gomock.Any()).
		Return(&providers.ChargeHandle{ChargeID: "ch_ghost"}, nil)
	_, err = s.service.CreateCharge(s.ctx, &CreateChargeInput{PlayerID: "ghost", Amount: 10})
	s.ErrorIs(err, ErrPlayerNotFound)

	_, err = s.ledgerRepo.GetCharge(s.ctx, &ledgerRepo.GetChargeInput{ChargeID: "ch_ghost"})
	s.ErrorIs(err, ledgerRepo.ErrChargeNotFound)
}

func (s *PaymentsServiceTestSuite) TestConfirmChargeIsIdempotent() {
	s.createCharge("ch_1", 50)

	first, err := s.service.ConfirmCharge(s.ctx, &ConfirmChargeInput{ChargeID: "ch_1"})
	s.Require().NoError(err)
	s.False(first.AlreadyConfirmed)
	s.Equal(int64(150), first.Balance)
	s.Equal(models.ChargeStatusConfirmed, first.Charge.Status)
	s.NotEmpty(first.Charge.TransactionID)

	second, err := s.service.ConfirmCharge(s.ctx, &ConfirmChargeInput{ChargeID: "ch_1"})
	s.Require().NoError(err)
	s.True(second.AlreadyConfirmed)
	s.Equal(int64(150), second.Balance)
	s.Equal(first.Charge.TransactionID, second.Charge.TransactionID)

	txns, err := s.ledgerRepo.ListTransactionsForPlayer(s.ctx, &ledgerRepo.ListTransactionsForPlayerInput{PlayerID: "p1"})
	s.Require().NoError(err)
	s.Require().Len(txns.Transactions, 1)
	s.Equal(models.TransactionKindBalanceTopup, txns.Transactions[0].Kind)
	s.Equal("ch_1", txns.Transactions[0].Reference)
}

func (s *PaymentsServiceTestSuite) TestConcurrentConfirmationsCreditOnce() {
	s.createCharge("ch_1", 50)

	// Separate lockers stand in for separate processes
	services := []*service{s.newService(keylock.New()), s.newService(keylock.New()), s.service}

	var (
		wg      sync.WaitGroup
		credits atomic.Int32
	)
	for i := 0; i < 9; i++ {
		wg.Add(1)
		go func(svc *service) {
			defer wg.Done()
			out, err := svc.ConfirmCharge(s.ctx, &ConfirmChargeInput{ChargeID: "ch_1"})
			if err == nil && !out.AlreadyConfirmed {
				credits.Add(1)
			}
		}(services[i%len(services)])
	}
	wg.Wait()

	s.Equal(int32(1), credits.Load())
	s.Equal(int64(150), s.balance())
}

func (s *PaymentsServiceTestSuite) TestConfirmChargeErrors() {
	_, err := s.service.ConfirmCharge(s.ctx, &ConfirmChargeInput{ChargeID: "missing"})
	s.ErrorIs(err, ErrChargeNotFound)

	_, err = s.service.RecordWithdrawal(s.ctx, &RecordWithdrawalInput{PayoutID: "po_1", PlayerID: "p1", Amount: 10})
	s.Require().NoError(err)
	_, err = s.service.ConfirmCharge(s.ctx, &ConfirmChargeInput{ChargeID: "po_1"})
	s.ErrorIs(err, ErrChargeMismatch)
}

func (s *PaymentsServiceTestSuite) TestRecordWithdrawal() {
	first, err := s.service.RecordWithdrawal(s.ctx, &RecordWithdrawalInput{PayoutID: "po_1", PlayerID: "p1", Amount: 30})
	s.Require().NoError(err)
	s.False(first.AlreadyRecorded)
	s.Equal(int64(70), first.Balance)

	again, err := s.service.RecordWithdrawal(s.ctx, &RecordWithdrawalInput{PayoutID: "po_1", PlayerID: "p1", Amount: 30})
	s.Require().NoError(err)
	s.True(again.AlreadyRecorded)
	s.Equal(int64(70), again.Balance)

	_, err = s.service.RecordWithdrawal(s.ctx, &RecordWithdrawalInput{PayoutID: "po_1", PlayerID: "p1", Amount: 31})
	s.ErrorIs(err, ErrChargeMismatch)
	s.Equal(int64(70), s.balance())
}

func (s *PaymentsServiceTestSuite) TestRecordWithdrawalErrors() {
	_, err := s.service.RecordWithdrawal(s.ctx, &RecordWithdrawalInput{PayoutID: "po_1", PlayerID: "p1", Amount: 0})
	s.ErrorIs(err, ErrInvalidAmount)

	_, err = s.service.RecordWithdrawal(s.ctx, &RecordWithdrawalInput{PayoutID: "po_1", PlayerID: "p1", Amount: 101})
	s.ErrorIs(err, ErrInsufficientFunds)
	s.Equal(int64(100), s.balance())

	// A rejected payout can be retried once funds allow it
	_, err = s.ledgerRepo.GetCharge(s.ctx, &ledgerRepo.GetChargeInput{ChargeID: "po_1"})
	s.ErrorIs(err, ledgerRepo.ErrChargeNotFound)

	_, err = s.service.RecordWithdrawal(s.ctx, &RecordWithdrawalInput{PayoutID: "po_2", PlayerID: "ghost", Amount: 1})
	s.ErrorIs(err, ErrPlayerNotFound)
}
