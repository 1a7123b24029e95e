package round

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/starwheel/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	roundKeyPrefix = "round:"

	// CurrentKey holds the ID of the single open round
	CurrentKey = "round:current"

	// IndexKey is a sorted set of round IDs scored by creation time
	IndexKey = "rounds:index"

	statusKeyPrefix = "rounds:status:"

	defaultListLimit = 20
)

// ErrRoundNotFound is returned when a round is not found
var ErrRoundNotFound = errors.New("round not found")

// Key returns the Redis key holding a round
func Key(roundID string) string {
	return fmt.Sprintf("%s%s", roundKeyPrefix, roundID)
}

// StatusKey returns the sorted set of round IDs in one status, scored by
// creation time
func StatusKey(status models.RoundStatus) string {
	return fmt.Sprintf("%s%s", statusKeyPrefix, status)
}

// Config holds configuration for the Redis round repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed round repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// GetRound retrieves a round by ID from Redis
func (r *redisRepository) GetRound(ctx context.Context, input *GetRoundInput) (*models.Round, error) {
	if input == nil || input.RoundID == "" {
		return nil, errors.New("input and round ID cannot be empty")
	}

	roundJSON, err := r.client.Get(ctx, Key(input.RoundID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("failed to get round: %w", err)
	}

	var round models.Round
	if err := json.Unmarshal([]byte(roundJSON), &round); err != nil {
		return nil, fmt.Errorf("failed to unmarshal round: %w", err)
	}

	return &round, nil
}

// GetCurrentRound retrieves the open round through the current-round pointer
func (r *redisRepository) GetCurrentRound(ctx context.Context) (*models.Round, error) {
	roundID, err := r.client.Get(ctx, CurrentKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("failed to get current round ID: %w", err)
	}

	return r.GetRound(ctx, &GetRoundInput{
		RoundID: roundID,
	})
}

// ListRounds retrieves recent rounds, newest first. A status filter reads
// the per-status index and pages through it until the limit is filled.
func (r *redisRepository) ListRounds(ctx context.Context, input *ListRoundsInput) (*ListRoundsOutput, error) {
	limit := defaultListLimit
	var status models.RoundStatus
	if input != nil {
		if input.Limit > 0 {
			limit = input.Limit
		}
		status = input.Status
	}

	key := IndexKey
	if status != "" {
		key = StatusKey(status)
	}

	rounds := make([]*models.Round, 0, limit)
	page := int64(limit)
	for start := int64(0); len(rounds) < limit; start += page {
		roundIDs, err := r.client.ZRevRange(ctx, key, start, start+page-1).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to get round IDs: %w", err)
		}

		loaded, err := r.getRounds(ctx, roundIDs)
		if err != nil {
			return nil, err
		}
		for _, round := range loaded {
			// A status index can trail the round it points at
			if status != "" && round.Status != status {
				continue
			}
			rounds = append(rounds, round)
			if len(rounds) == limit {
				break
			}
		}

		if int64(len(roundIDs)) < page {
			break
		}
	}

	return &ListRoundsOutput{
		Rounds: rounds,
	}, nil
}

// getRounds loads rounds in one pipeline, skipping IDs whose round is gone
func (r *redisRepository) getRounds(ctx context.Context, roundIDs []string) ([]*models.Round, error) {
	if len(roundIDs) == 0 {
		return nil, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(roundIDs))
	for i, roundID := range roundIDs {
		cmds[i] = pipe.Get(ctx, Key(roundID))
	}

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get rounds: %w", err)
	}

	rounds := make([]*models.Round, 0, len(roundIDs))
	for i, cmd := range cmds {
		roundJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("failed to get round %s: %w", roundIDs[i], err)
		}

		var round models.Round
		if err := json.Unmarshal([]byte(roundJSON), &round); err != nil {
			return nil, fmt.Errorf("failed to unmarshal round %s: %w", roundIDs[i], err)
		}
		rounds = append(rounds, &round)
	}

	return rounds, nil
}
