package ledger

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
	transactionKeyPrefix = "ledger:tx:"
	playerIndexPrefix    = "ledger:player:"
	roundIndexPrefix     = "ledger:round:"

	defaultListLimit = 50
)

// ErrTransactionNotFound is returned when a transaction is not found
var ErrTransactionNotFound = errors.New("transaction not found")

// TransactionKey returns the Redis key holding a transaction record
func TransactionKey(transactionID string) string {
	return transactionKeyPrefix + transactionID
}

// PlayerIndexKey returns the sorted set of a player's transaction IDs
func PlayerIndexKey(playerID string) string {
	return playerIndexPrefix + playerID
}

// RoundIndexKey returns the sorted set of a round's transaction IDs
func RoundIndexKey(roundID string) string {
	return roundIndexPrefix + roundID
}

// Config holds configuration for the Redis ledger repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed ledger repository
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

// GetTransaction retrieves a transaction record from Redis
func (r *redisRepository) GetTransaction(ctx context.Context, input *GetTransactionInput) (*models.Transaction, error) {
	if input == nil || input.TransactionID == "" {
		return nil, errors.New("input and transaction ID cannot be empty")
	}

	txJSON, err := r.client.Get(ctx, TransactionKey(input.TransactionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	var tx models.Transaction
	if err := json.Unmarshal([]byte(txJSON), &tx); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transaction: %w", err)
	}

	return &tx, nil
}

// ListTransactionsForPlayer retrieves a player's most recent transactions
func (r *redisRepository) ListTransactionsForPlayer(ctx context.Context, input *ListTransactionsForPlayerInput) (*ListTransactionsOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}

	limit := defaultListLimit
	if input.Limit > 0 {
		limit = input.Limit
	}

	ids, err := r.client.ZRevRange(ctx, PlayerIndexKey(input.PlayerID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction IDs for player: %w", err)
	}

	return r.loadTransactions(ctx, ids)
}

// ListTransactionsForRound retrieves every transaction tied to a round
func (r *redisRepository) ListTransactionsForRound(ctx context.Context, input *ListTransactionsForRoundInput) (*ListTransactionsOutput, error) {
	if input == nil || input.RoundID == "" {
		return nil, errors.New("input and round ID cannot be empty")
	}

	ids, err := r.client.ZRange(ctx, RoundIndexKey(input.RoundID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction IDs for round: %w", err)
	}

	return r.loadTransactions(ctx, ids)
}

func (r *redisRepository) loadTransactions(ctx context.Context, ids []string) (*ListTransactionsOutput, error) {
	// If no transactions, return empty list
	if len(ids) == 0 {
		return &ListTransactionsOutput{
			Transactions: []*models.Transaction{},
		}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.Get(ctx, TransactionKey(id))
	}

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}

	txs := make([]*models.Transaction, 0, len(ids))
	for i, cmd := range cmds {
		txJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("failed to get transaction %s: %w", ids[i], err)
		}

		var tx models.Transaction
		if err := json.Unmarshal([]byte(txJSON), &tx); err != nil {
			return nil, fmt.Errorf("failed to unmarshal transaction %s: %w", ids[i], err)
		}

		txs = append(txs, &tx)
	}

	return &ListTransactionsOutput{
		Transactions: txs,
	}, nil
}
