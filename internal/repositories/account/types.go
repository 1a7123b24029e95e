package account

import "github.com/KirkDiggler/starwheel/internal/models"

type GetAccountInput struct {
	PlayerID string
}

type GetLeaderboardInput struct {
	// Limit caps the number of entries, defaults to 10
	Limit int
}

type GetLeaderboardOutput struct {
	Entries []*models.LeaderboardEntry
}
