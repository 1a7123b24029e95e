// Package providers defines the external collaborators the engine depends on
// for identity and payments. Implementations live in sub-packages.
package providers

//go:generate mockgen -package=mocks -destination=mocks/mock_providers.go github.com/KirkDiggler/starwheel/internal/providers IdentityProvider,PaymentProvider

import "context"

// ProviderError is a custom error type for upstream collaborator errors
type ProviderError string

// Error implements the error interface
func (e ProviderError) Error() string {
	return string(e)
}

const (
	// ErrUpstreamUnavailable means the provider could not be reached; no state was touched
	ErrUpstreamUnavailable ProviderError = "upstream provider unavailable"

	// ErrInvalidCredential means the identity provider rejected the credential
	ErrInvalidCredential ProviderError = "invalid credential"

	// ErrInvalidCharge means the payment provider rejected the request
	ErrInvalidCharge ProviderError = "invalid charge request"
)

// Identity is a player as reported by the identity provider
type Identity struct {
	ExternalID  string
	DisplayName string
	AvatarRef   string
}

// IdentityProvider turns an opaque credential into an Identity
type IdentityProvider interface {
	Resolve(ctx context.Context, credential string) (*Identity, error)
}

// ChargeRequest asks the payment provider to start a top-up
type ChargeRequest struct {
	PlayerID string
	Amount   int64
}

// ChargeHandle identifies a charge at the payment provider
type ChargeHandle struct {
	ChargeID   string
	PaymentURL string
}

// PaymentProvider starts charges that are later confirmed out of band
type PaymentProvider interface {
	CreateCharge(ctx context.Context, req *ChargeRequest) (*ChargeHandle, error)
}
