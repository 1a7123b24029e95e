package player

import (
	"github.com/KirkDiggler/starwheel/internal/common/clock"
	"github.com/KirkDiggler/starwheel/internal/common/keylock"
	"github.com/KirkDiggler/starwheel/internal/models"
	"github.com/KirkDiggler/starwheel/internal/providers"
	accountRepo "github.com/KirkDiggler/starwheel/internal/repositories/account"
	"github.com/KirkDiggler/starwheel/internal/repositories/store"
	"go.uber.org/zap"
)

// Config holds configuration for the player service
type Config struct {
	// StartingBalance is granted once when an account is created.
	// Nil means models.DefaultStartingBalance.
	StartingBalance *int64

	Store       store.Store
	AccountRepo accountRepo.Repository

	IdentityProvider providers.IdentityProvider
	Locker           *keylock.Locker
	Clock            clock.Clock

	Logger *zap.Logger
}

// AuthenticateInput contains the opaque credential from the host platform
type AuthenticateInput struct {
	Credential string
}

// AuthenticateOutput contains the authenticated account
type AuthenticateOutput struct {
	Account *models.Account

	// Created is true when this call created the account
	Created bool
}

// GetAccountInput contains parameters for reading an account
type GetAccountInput struct {
	PlayerID string
}

// GetLeaderboardInput contains parameters for the leaderboard
type GetLeaderboardInput struct {
	Limit int
}

// GetLeaderboardOutput contains leaderboard rows, best first
type GetLeaderboardOutput struct {
	Entries []*models.LeaderboardEntry
}
