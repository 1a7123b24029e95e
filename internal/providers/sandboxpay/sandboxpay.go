// Package sandboxpay is an in-process payment provider for development. It
// hands out charge ids and payment URLs; confirmation is driven through the
// admin surface.
package sandboxpay

import (
	"context"
	"errors"
	"strings"

	"github.com/KirkDiggler/starwheel/internal/common/uuid"
	"github.com/KirkDiggler/starwheel/internal/providers"
)

var ErrNilConfig = errors.New("config cannot be nil")
var ErrNilUUIDGenerator = errors.New("UUID generator cannot be nil")

type Config struct {
	// BaseURL prefixes the payment URLs handed back to players
	BaseURL       string
	UUIDGenerator uuid.UUID
}

type provider struct {
	baseURL       string
	uuidGenerator uuid.UUID
}

func New(cfg *Config) (*provider, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	return &provider{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		uuidGenerator: cfg.UUIDGenerator,
	}, nil
}

func (p *provider) CreateCharge(ctx context.Context, req *providers.ChargeRequest) (*providers.ChargeHandle, error) {
	if req == nil || req.PlayerID == "" || req.Amount <= 0 {
		return nil, providers.ErrInvalidCharge
	}
	if err := ctx.Err(); err != nil {
		return nil, providers.ErrUpstreamUnavailable
	}

	id := "ch_" + p.uuidGenerator.NewUUID()
	return &providers.ChargeHandle{
		ChargeID:   id,
		PaymentURL: p.baseURL + "/pay/" + id,
	}, nil
}
