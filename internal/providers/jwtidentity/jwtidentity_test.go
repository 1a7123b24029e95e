package jwtidentity

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/starwheel/internal/providers"
)

func TestNewRequiresSecret(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNilConfig)

	_, err = New(&Config{})
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestResolve(t *testing.T) {
	p, err := New(&Config{Secret: "s3cret", Issuer: "platform"})
	require.NoError(t, err)

	token, err := p.Sign(providers.Identity{
		ExternalID:  "user-1",
		DisplayName: "Alice",
		AvatarRef:   "https://cdn.example/alice.png",
	}, time.Now().Add(time.Hour))
	require.NoError(t, err)

	id, err := p.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, &providers.Identity{
		ExternalID:  "user-1",
		DisplayName: "Alice",
		AvatarRef:   "https://cdn.example/alice.png",
	}, id)
}

func TestResolveFallsBackToSubjectForName(t *testing.T) {
	p, err := New(&Config{Secret: "s3cret"})
	require.NoError(t, err)

	token, err := p.Sign(providers.Identity{ExternalID: "user-2"}, time.Now().Add(time.Hour))
	require.NoError(t, err)

	id, err := p.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-2", id.DisplayName)
}

func TestResolveRejects(t *testing.T) {
	p, err := New(&Config{Secret: "s3cret", Issuer: "platform"})
	require.NoError(t, err)
	other, err := New(&Config{Secret: "different", Issuer: "platform"})
	require.NoError(t, err)
	wrongIssuer, err := New(&Config{Secret: "s3cret", Issuer: "elsewhere"})
	require.NoError(t, err)

	id := providers.Identity{ExternalID: "user-1", DisplayName: "Alice"}
	expired, err := p.Sign(id, time.Now().Add(-time.Minute))
	require.NoError(t, err)
	foreign, err := other.Sign(id, time.Now().Add(time.Hour))
	require.NoError(t, err)
	misissued, err := wrongIssuer.Sign(id, time.Now().Add(time.Hour))
	require.NoError(t, err)
	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Name: "nobody"}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	tests := []struct {
		name       string
		credential string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"expired", expired},
		{"wrong secret", foreign},
		{"wrong issuer", misissued},
		{"missing subject", noSubject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Resolve(context.Background(), tt.credential)
			assert.ErrorIs(t, err, providers.ErrInvalidCredential)
		})
	}
}
