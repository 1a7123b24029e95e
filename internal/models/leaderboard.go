package models

// LeaderboardEntry is one row of the all-time winnings table
type LeaderboardEntry struct {
	PlayerID      string `json:"playerId"`
	DisplayName   string `json:"displayName"`
	TotalWinnings int64  `json:"totalWinnings"`
	GamesWon      int    `json:"gamesWon"`
	GamesPlayed   int    `json:"gamesPlayed"`
}
