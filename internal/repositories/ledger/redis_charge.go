package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/starwheel/internal/models"
	"github.com/redis/go-redis/v9"
)

const chargeKeyPrefix = "charge:"

// ErrChargeNotFound is returned when a charge is not found
var ErrChargeNotFound = errors.New("charge not found")

// ChargeKey returns the Redis key holding a payment charge
func ChargeKey(chargeID string) string {
	return chargeKeyPrefix + chargeID
}

// GetCharge retrieves a payment charge from Redis
func (r *redisRepository) GetCharge(ctx context.Context, input *GetChargeInput) (*models.Charge, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	if input.ChargeID == "" {
		return nil, fmt.Errorf("charge ID is required")
	}

	chargeJSON, err := r.client.Get(ctx, ChargeKey(input.ChargeID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrChargeNotFound
		}
		return nil, fmt.Errorf("failed to get charge: %w", err)
	}

	// Deserialize the charge
	var charge models.Charge
	if err := json.Unmarshal([]byte(chargeJSON), &charge); err != nil {
		return nil, fmt.Errorf("failed to unmarshal charge: %w", err)
	}

	return &charge, nil
}
