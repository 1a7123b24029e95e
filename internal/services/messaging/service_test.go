package messaging

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/starwheel/internal/draw/mocks"
	"github.com/KirkDiggler/starwheel/internal/models"
	"github.com/KirkDiggler/starwheel/internal/services/ledger"
	"github.com/KirkDiggler/starwheel/internal/services/lobby"
)

type MessagingServiceTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	mockSource *mocks.MockSource
	service    *service
	ctx        context.Context
}

func (s *MessagingServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockSource = mocks.NewMockSource(s.mockCtrl)
	s.ctx = context.Background()

	svc, err := New(&Config{Source: s.mockSource})
	s.Require().NoError(err)
	s.service = svc
}

func (s *MessagingServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestMessagingServiceSuite(t *testing.T) {
	suite.Run(t, new(MessagingServiceTestSuite))
}

func (s *MessagingServiceTestSuite) TestJoinMessage() {
	s.mockSource.EXPECT().Intn(4).Return(0)
	out, err := s.service.GetJoinMessage(s.ctx, &GetJoinMessageInput{PlayerName: "Alice", Number: 4, SeatsLeft: 7})
	s.Require().NoError(err)
	s.Equal("Alice takes number 4. 7 seats to go.", out.Message)
	s.Equal(ToneFunny, out.Tone)

	s.mockSource.EXPECT().Intn(3).Return(1)
	out, err = s.service.GetJoinMessage(s.ctx, &GetJoinMessageInput{PlayerName: "Bob", Number: 9})
	s.Require().NoError(err)
	s.Equal("Last seat taken by Bob on 9. Spinning up!", out.Message)
	s.Equal(ToneCelebration, out.Tone)
}

func (s *MessagingServiceTestSuite) TestResultMessages() {
	numbers := models.WinningNumbers{Center: 4, Left: 3, Right: 5}
	s.mockSource.EXPECT().Intn(3).Return(0).Times(3)

	center, err := s.service.GetResultMessage(s.ctx, &GetResultMessageInput{
		PlayerName: "A",
		Numbers:    numbers,
		Payout:     &models.Payout{PlayerID: "a", PrizeShare: 15, Role: models.PrizeRoleCenter, Number: 4},
	})
	s.Require().NoError(err)
	s.Equal("Dead centre! Number 4 wins A 15 stars!", center.Message)

	side, err := s.service.GetResultMessage(s.ctx, &GetResultMessageInput{
		PlayerName: "B",
		Numbers:    numbers,
		Payout:     &models.Payout{PlayerID: "b", PrizeShare: 7, Role: models.PrizeRoleLeft, Number: 3},
	})
	s.Require().NoError(err)
	s.Equal("Right next door! B's 3 sits beside 4 and earns 7 stars.", side.Message)

	none, err := s.service.GetResultMessage(s.ctx, &GetResultMessageInput{PlayerName: "C", Numbers: numbers})
	s.Require().NoError(err)
	s.Equal(ToneEncouraging, none.Tone)
	s.Contains(none.Message, "C")
}

func (s *MessagingServiceTestSuite) TestErrorMessages() {
	s.mockSource.EXPECT().Intn(gomock.Any()).Return(0).AnyTimes()

	tests := []struct {
		err  error
		want string
	}{
		{ledger.ErrInsufficientFunds, "Not enough stars for a seat. Top up and spin again!"},
		{fmt.Errorf("wrapped: %w", lobby.ErrRoundFull), "Every seat is taken. Catch the next round!"},
		{lobby.ErrNotInRound, "You don't have a seat in this round."},
		{errors.New("dial tcp: refused"), "Something went wrong. Please try again."},
	}
	for _, tt := range tests {
		out, err := s.service.GetErrorMessage(s.ctx, &GetErrorMessageInput{Err: tt.err})
		s.Require().NoError(err)
		s.Equal(tt.want, out.Message)
	}
}

func (s *MessagingServiceTestSuite) TestNilInput() {
	_, err := s.service.GetLeaveMessage(s.ctx, nil)
	s.Error(err)

	_, err = New(&Config{})
	s.ErrorIs(err, ErrNilSource)
}
