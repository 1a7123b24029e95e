package player

// PlayerError is a custom error type for player account errors
type PlayerError string

// Error implements the error interface
func (e PlayerError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrPlayerNotFound       PlayerError = "player not found"
	ErrInvalidCredential    PlayerError = "invalid credential"
	ErrNilConfig            PlayerError = "config cannot be nil"
	ErrNilStore             PlayerError = "store cannot be nil"
	ErrNilAccountRepo       PlayerError = "account repository cannot be nil"
	ErrNilIdentityProvider  PlayerError = "identity provider cannot be nil"
	ErrNilLocker            PlayerError = "locker cannot be nil"
	ErrNilClock             PlayerError = "clock cannot be nil"
	ErrNegativeStartBalance PlayerError = "starting balance cannot be negative"
)
