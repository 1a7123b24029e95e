package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/starwheel/internal/draw"
	"github.com/KirkDiggler/starwheel/internal/models"
	"github.com/KirkDiggler/starwheel/internal/services/ledger"
	"github.com/KirkDiggler/starwheel/internal/services/lobby"
)

var (
	ErrNilConfig = errors.New("config cannot be nil")
	ErrNilSource = errors.New("source cannot be nil")
)

type service struct {
	source draw.Source
}

// New creates a new messaging service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Source == nil {
		return nil, ErrNilSource
	}

	return &service{
		source: cfg.Source,
	}, nil
}

func (s *service) pick(messages []string) string {
	return messages[s.source.Intn(len(messages))]
}

func (s *service) GetJoinMessage(ctx context.Context, input *GetJoinMessageInput) (*MessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.SeatsLeft == 0 {
		return &MessageOutput{
			Message: s.pick([]string{
				fmt.Sprintf("%s grabs the last seat on number %d. The wheel is full, here we go!", input.PlayerName, input.Number),
				fmt.Sprintf("Last seat taken by %s on %d. Spinning up!", input.PlayerName, input.Number),
				fmt.Sprintf("%s closes the table on number %d. Good luck, everyone!", input.PlayerName, input.Number),
			}),
			Tone: ToneCelebration,
		}, nil
	}

	return &MessageOutput{
		Message: s.pick([]string{
			fmt.Sprintf("%s takes number %d. %d seats to go.", input.PlayerName, input.Number, input.SeatsLeft),
			fmt.Sprintf("Welcome aboard, %s! You're on %d.", input.PlayerName, input.Number),
			fmt.Sprintf("%s is riding on number %d. Keep those neighbours close!", input.PlayerName, input.Number),
			fmt.Sprintf("Number %d belongs to %s now. %d left on the wheel.", input.Number, input.PlayerName, input.SeatsLeft),
		}),
		Tone: ToneFunny,
	}, nil
}

func (s *service) GetLeaveMessage(ctx context.Context, input *GetLeaveMessageInput) (*MessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	return &MessageOutput{
		Message: s.pick([]string{
			fmt.Sprintf("%s steps away from the wheel. %d stars are back in the wallet.", input.PlayerName, input.Refund),
			fmt.Sprintf("Cold feet, %s? Your %d stars have been refunded.", input.PlayerName, input.Refund),
			fmt.Sprintf("%s folds before the spin and keeps %d stars.", input.PlayerName, input.Refund),
		}),
		Tone: ToneNeutral,
	}, nil
}

func (s *service) GetResultMessage(ctx context.Context, input *GetResultMessageInput) (*MessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	n := input.Numbers
	if input.Payout == nil {
		return &MessageOutput{
			Message: s.pick([]string{
				fmt.Sprintf("The wheel stopped on %d, flanked by %d and %d. Not your spin this time, %s.", n.Center, n.Left, n.Right, input.PlayerName),
				fmt.Sprintf("%d, %d and %d take the prizes. Next round is yours, %s!", n.Center, n.Left, n.Right, input.PlayerName),
				fmt.Sprintf("So close, %s. The wheel picked %d.", input.PlayerName, n.Center),
			}),
			Tone: ToneEncouraging,
		}, nil
	}

	p := input.Payout
	if p.Role == models.PrizeRoleCenter {
		return &MessageOutput{
			Message: s.pick([]string{
				fmt.Sprintf("Dead centre! Number %d wins %s %d stars!", p.Number, input.PlayerName, p.PrizeShare),
				fmt.Sprintf("%s hits the jackpot on %d: %d stars!", input.PlayerName, p.Number, p.PrizeShare),
				fmt.Sprintf("The wheel loves %s. %d stars for number %d!", input.PlayerName, p.PrizeShare, p.Number),
			}),
			Tone: ToneCelebration,
		}, nil
	}

	return &MessageOutput{
		Message: s.pick([]string{
			fmt.Sprintf("Right next door! %s's %d sits beside %d and earns %d stars.", input.PlayerName, p.Number, n.Center, p.PrizeShare),
			fmt.Sprintf("%s rides the neighbour prize on %d: %d stars.", input.PlayerName, p.Number, p.PrizeShare),
			fmt.Sprintf("Close counts! %d stars to %s for sitting next to %d.", p.PrizeShare, input.PlayerName, n.Center),
		}),
		Tone: ToneCelebration,
	}, nil
}

// GetErrorMessage explains rejected requests. Unknown errors get a generic
// apology so internals never reach players.
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*MessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var messages []string
	switch {
	case errors.Is(input.Err, ledger.ErrInsufficientFunds):
		messages = []string{
			"Not enough stars for a seat. Top up and spin again!",
			"Your wallet is a little light for this round.",
		}
	case errors.Is(input.Err, lobby.ErrRoundFull):
		messages = []string{
			"Every seat is taken. Catch the next round!",
			"The wheel is full. The next one opens right after the spin.",
		}
	case errors.Is(input.Err, lobby.ErrAlreadyJoined):
		messages = []string{
			"You already have a seat in this round.",
			"Double-dipping? You're already on the wheel!",
		}
	case errors.Is(input.Err, lobby.ErrNotInRound):
		messages = []string{"You don't have a seat in this round."}
	case errors.Is(input.Err, lobby.ErrInvalidState):
		messages = []string{
			"Too late, the wheel is already spinning.",
			"This round is no longer taking changes.",
		}
	case errors.Is(input.Err, lobby.ErrRoundNotFound):
		messages = []string{"That round doesn't exist."}
	default:
		messages = []string{"Something went wrong. Please try again."}
	}

	return &MessageOutput{
		Message: s.pick(messages),
		Tone:    ToneNeutral,
	}, nil
}
