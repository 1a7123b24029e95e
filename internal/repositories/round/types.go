package round

import "github.com/KirkDiggler/starwheel/internal/models"

type GetRoundInput struct {
	RoundID string
}

type ListRoundsInput struct {
	// Limit caps the number of rounds, defaults to 20
	Limit int

	// Status filters rounds, empty means all
	Status models.RoundStatus
}

type ListRoundsOutput struct {
	Rounds []*models.Round
}
