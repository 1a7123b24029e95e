package models

import (
	"time"
)

// DefaultStartingBalance is the balance granted to a newly created account
const DefaultStartingBalance int64 = 1000

// Account is a player's balance and lifetime statistics
type Account struct {
	// ID is the stable external identifier of the player
	ID string `json:"id"`

	// DisplayName is the player's name as reported by the identity provider
	DisplayName string `json:"displayName"`

	// AvatarRef points at the player's avatar image
	AvatarRef string `json:"avatarRef,omitempty"`

	// Balance is the spendable amount of stars, never negative
	Balance int64 `json:"balance"`

	// GamesPlayed counts settled rounds the player had a seat in
	GamesPlayed int `json:"gamesPlayed"`

	// GamesWon counts settled rounds in which the player received a prize share
	GamesWon int `json:"gamesWon"`

	// TotalWinnings is the sum of all prize shares credited to the player
	TotalWinnings int64 `json:"totalWinnings"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewAccount builds an account with the starting defaults. It is the only
// place an account comes into existence.
func NewAccount(id, displayName, avatarRef string, startingBalance int64, now time.Time) *Account {
	if startingBalance < 0 {
		startingBalance = 0
	}
	return &Account{
		ID:          id,
		DisplayName: displayName,
		AvatarRef:   avatarRef,
		Balance:     startingBalance,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
