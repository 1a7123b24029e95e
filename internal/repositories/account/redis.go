package account

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
	accountKeyPrefix = "account:"

	// WinningsKey is a sorted set of player IDs scored by total winnings
	WinningsKey = "accounts:winnings"

	defaultLeaderboardLimit = 10
)

// ErrAccountNotFound is returned when an account is not found
var ErrAccountNotFound = errors.New("account not found")

// Key returns the Redis key holding a player's account
func Key(playerID string) string {
	return fmt.Sprintf("%s%s", accountKeyPrefix, playerID)
}

// Config holds configuration for the Redis account repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed account repository
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

// GetAccount retrieves an account by player ID from Redis
func (r *redisRepository) GetAccount(ctx context.Context, input *GetAccountInput) (*models.Account, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}

	accountJSON, err := r.client.Get(ctx, Key(input.PlayerID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	var account models.Account
	if err := json.Unmarshal([]byte(accountJSON), &account); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account: %w", err)
	}

	return &account, nil
}

// GetLeaderboard retrieves the accounts with the highest total winnings
func (r *redisRepository) GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error) {
	limit := defaultLeaderboardLimit
	if input != nil && input.Limit > 0 {
		limit = input.Limit
	}

	playerIDs, err := r.client.ZRevRange(ctx, WinningsKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	if len(playerIDs) == 0 {
		return &GetLeaderboardOutput{
			Entries: []*models.LeaderboardEntry{},
		}, nil
	}

	// Get all account records using a pipeline
	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(playerIDs))
	for i, playerID := range playerIDs {
		cmds[i] = pipe.Get(ctx, Key(playerID))
	}

	// redis.Nil on a single get is handled per command below
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get accounts: %w", err)
	}

	entries := make([]*models.LeaderboardEntry, 0, len(playerIDs))
	for i, cmd := range cmds {
		accountJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("failed to get account %s: %w", playerIDs[i], err)
		}

		var account models.Account
		if err := json.Unmarshal([]byte(accountJSON), &account); err != nil {
			return nil, fmt.Errorf("failed to unmarshal account %s: %w", playerIDs[i], err)
		}

		entries = append(entries, &models.LeaderboardEntry{
			PlayerID:      account.ID,
			DisplayName:   account.DisplayName,
			TotalWinnings: account.TotalWinnings,
			GamesWon:      account.GamesWon,
			GamesPlayed:   account.GamesPlayed,
		})
	}

	return &GetLeaderboardOutput{
		Entries: entries,
	}, nil
}
