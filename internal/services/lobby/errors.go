package lobby

import "github.com/KirkDiggler/starwheel/internal/services/ledger"

// LobbyError is a custom error type for round lifecycle errors
type LobbyError string

// Error implements the error interface
func (e LobbyError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrRoundNotFound     LobbyError = "round not found"
	ErrInvalidState      LobbyError = "invalid round state"
	ErrAlreadyJoined     LobbyError = "player already joined this round"
	ErrRoundFull         LobbyError = "round is at capacity"
	ErrNotInRound        LobbyError = "player not in round"
	ErrNotEnoughPlayers  LobbyError = "not enough players to start"
	ErrNotSettled        LobbyError = "round is not settled"
	ErrNilConfig         LobbyError = "config cannot be nil"
	ErrNilStore          LobbyError = "store cannot be nil"
	ErrNilRoundRepo      LobbyError = "round repository cannot be nil"
	ErrNilPayoutService  LobbyError = "payout service cannot be nil"
	ErrNilSource         LobbyError = "random source cannot be nil"
	ErrNilLocker         LobbyError = "locker cannot be nil"
	ErrNilClock          LobbyError = "clock cannot be nil"
	ErrNilUUIDGenerator  LobbyError = "UUID generator cannot be nil"
	ErrInvalidRoundShape LobbyError = "capacity must be at least 3 and entry fee not negative"
)

// ErrInsufficientFunds is returned by Join when the entry fee cannot be debited
const ErrInsufficientFunds = ledger.ErrInsufficientFunds
