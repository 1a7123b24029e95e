// Package jwtidentity resolves players from HS256 signed tokens issued by the
// host platform.
package jwtidentity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/KirkDiggler/starwheel/internal/providers"
)

var ErrNilConfig = errors.New("config cannot be nil")
var ErrEmptySecret = errors.New("secret cannot be empty")

// Claims carries the identity fields of a platform token
type Claims struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
	jwt.RegisteredClaims
}

type Config struct {
	Secret string

	// Issuer, when set, must match the token's iss claim
	Issuer string
}

type provider struct {
	secret []byte
	issuer string
}

func New(cfg *Config) (*provider, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Secret == "" {
		return nil, ErrEmptySecret
	}

	return &provider{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
	}, nil
}

// Resolve validates the token and maps its claims to an Identity
func (p *provider) Resolve(_ context.Context, credential string) (*providers.Identity, error) {
	if credential == "" {
		return nil, providers.ErrInvalidCredential
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if p.issuer != "" {
		opts = append(opts, jwt.WithIssuer(p.issuer))
	}

	token, err := jwt.ParseWithClaims(credential, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return p.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", providers.ErrInvalidCredential, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, providers.ErrInvalidCredential
	}

	name := claims.Name
	if name == "" {
		name = claims.Subject
	}

	return &providers.Identity{
		ExternalID:  claims.Subject,
		DisplayName: name,
		AvatarRef:   claims.Avatar,
	}, nil
}

// Sign issues a token for id. The platform normally does this; it is used by
// development tooling and tests.
func (p *provider) Sign(id providers.Identity, expiresAt time.Time) (string, error) {
	claims := Claims{
		Name:   id.DisplayName,
		Avatar: id.AvatarRef,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ExternalID,
			Issuer:    p.issuer,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}
