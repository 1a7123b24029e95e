package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/starwheel/internal/metrics"
	"github.com/KirkDiggler/starwheel/internal/models"
	"github.com/KirkDiggler/starwheel/internal/repositories/account"
	"github.com/KirkDiggler/starwheel/internal/repositories/ledger"
	"github.com/KirkDiggler/starwheel/internal/repositories/round"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultMaxAttempts is how many times a unit of work is tried before ErrConflict
const DefaultMaxAttempts = 16

// Config holds configuration for the Redis store
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// MaxAttempts bounds optimistic retries, defaults to DefaultMaxAttempts
	MaxAttempts int

	Logger *zap.Logger
}

type redisStore struct {
	client      *redis.Client
	maxAttempts int
	log         *zap.Logger
}

// NewRedis creates a new Redis-backed store
func NewRedis(cfg *Config) (*redisStore, error) {
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

	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &redisStore{
		client:      cfg.RedisClient,
		maxAttempts: maxAttempts,
		log:         log.Named("store"),
	}, nil
}

// Atomically runs fn inside WATCH and commits its writes with MULTI/EXEC
func (s *redisStore) Atomically(ctx context.Context, fn func(tx Tx) error) error {
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		err := s.client.Watch(ctx, func(rtx *redis.Tx) error {
			t := newTx(rtx)
			if err := fn(t); err != nil {
				return err
			}
			return t.commit(ctx)
		})
		if errors.Is(err, redis.TxFailedErr) {
			metrics.RecordConflict()
			continue
		}

		// Every primary write landed; only derived indexes are stale
		var commitErr *CommitError
		if errors.As(err, &commitErr) && len(commitErr.Failed) == 0 {
			for range commitErr.Degraded {
				metrics.RecordIndexFailure()
			}
			s.log.Warn("index writes failed after commit",
				zap.Strings("keys", commitErr.Degraded),
				zap.Error(commitErr.Err),
			)
			return nil
		}
		return err
	}

	return ErrConflict
}

type write struct {
	key   string
	queue func(ctx context.Context, pipe redis.Pipeliner) []redis.Cmder
}

type redisTx struct {
	rtx     *redis.Tx
	watched map[string]bool

	// pending holds buffered string values so reads see the unit's own writes
	pending map[string][]byte
	cleared map[string]bool
	writes  []write

	// index maps a key to its position in writes so a rewrite replaces it
	index map[string]int
}

func newTx(rtx *redis.Tx) *redisTx {
	return &redisTx{
		rtx:     rtx,
		watched: make(map[string]bool),
		pending: make(map[string][]byte),
		cleared: make(map[string]bool),
		index:   make(map[string]int),
	}
}

func (t *redisTx) queue(w write) {
	if i, ok := t.index[w.key]; ok {
		t.writes[i] = w
		return
	}
	t.index[w.key] = len(t.writes)
	t.writes = append(t.writes, w)
}

// get reads a string key, watching it on first access
func (t *redisTx) get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := t.pending[key]; ok {
		return v, nil
	}
	if t.cleared[key] {
		return nil, redis.Nil
	}

	if !t.watched[key] {
		if err := t.rtx.Watch(ctx, key).Err(); err != nil {
			return nil, fmt.Errorf("failed to watch %s: %w", key, err)
		}
		t.watched[key] = true
	}

	return t.rtx.Get(ctx, key).Bytes()
}

func (t *redisTx) set(key string, value []byte, extra func(ctx context.Context, pipe redis.Pipeliner) []redis.Cmder) {
	t.pending[key] = value
	delete(t.cleared, key)
	t.queue(write{
		key: key,
		queue: func(ctx context.Context, pipe redis.Pipeliner) []redis.Cmder {
			cmds := []redis.Cmder{pipe.Set(ctx, key, value, 0)}
			if extra != nil {
				cmds = append(cmds, extra(ctx, pipe)...)
			}
			return cmds
		},
	})
}

func (t *redisTx) commit(ctx context.Context) error {
	if len(t.writes) == 0 {
		return nil
	}

	queued := make([][]redis.Cmder, len(t.writes))
	_, err := t.rtx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, w := range t.writes {
			queued[i] = w.queue(ctx, pipe)
		}
		return nil
	})
	if err == nil {
		return nil
	}
	if errors.Is(err, redis.TxFailedErr) {
		return err
	}

	// EXEC either never ran, or ran and some commands failed on their own.
	// The first command of a write is its primary key; the rest are indexes.
	commitErr := &CommitError{Err: err}
	for i, w := range t.writes {
		cmds := queued[i]
		if len(cmds) == 0 || cmds[0].Err() != nil {
			commitErr.Failed = append(commitErr.Failed, w.key)
			continue
		}
		commitErr.Committed = append(commitErr.Committed, w.key)
		for _, cmd := range cmds[1:] {
			if cmd.Err() != nil {
				commitErr.Degraded = append(commitErr.Degraded, w.key)
				break
			}
		}
	}
	if len(commitErr.Committed) == 0 {
		return fmt.Errorf("failed to commit: %w", err)
	}

	return commitErr
}

func (t *redisTx) GetAccount(ctx context.Context, playerID string) (*models.Account, error) {
	data, err := t.get(ctx, account.Key(playerID))
	if err != nil {
		if err == redis.Nil {
			return nil, account.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	var a models.Account
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account: %w", err)
	}

	return &a, nil
}

func (t *redisTx) PutAccount(a *models.Account) error {
	if a == nil || a.ID == "" {
		return errors.New("account and account ID cannot be empty")
	}

	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal account: %w", err)
	}

	winnings := float64(a.TotalWinnings)
	t.set(account.Key(a.ID), data, func(ctx context.Context, pipe redis.Pipeliner) []redis.Cmder {
		return []redis.Cmder{pipe.ZAdd(ctx, account.WinningsKey, redis.Z{Score: winnings, Member: a.ID})}
	})

	return nil
}

func (t *redisTx) GetRound(ctx context.Context, roundID string) (*models.Round, error) {
	data, err := t.get(ctx, round.Key(roundID))
	if err != nil {
		if err == redis.Nil {
			return nil, round.ErrRoundNotFound
		}
		return nil, fmt.Errorf("failed to get round: %w", err)
	}

	var r models.Round
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to unmarshal round: %w", err)
	}

	return &r, nil
}

func (t *redisTx) PutRound(r *models.Round) error {
	if r == nil || r.ID == "" {
		return errors.New("round and round ID cannot be empty")
	}

	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal round: %w", err)
	}

	created := float64(r.CreatedAt.UnixNano())
	status := r.Status
	t.set(round.Key(r.ID), data, func(ctx context.Context, pipe redis.Pipeliner) []redis.Cmder {
		// NX keeps the original creation score on updates
		cmds := []redis.Cmder{
			pipe.ZAddNX(ctx, round.IndexKey, redis.Z{Score: created, Member: r.ID}),
			pipe.ZAdd(ctx, round.StatusKey(status), redis.Z{Score: created, Member: r.ID}),
		}
		for _, other := range models.RoundStatuses {
			if other != status {
				cmds = append(cmds, pipe.ZRem(ctx, round.StatusKey(other), r.ID))
			}
		}
		return cmds
	})

	return nil
}

func (t *redisTx) CurrentRoundID(ctx context.Context) (string, error) {
	data, err := t.get(ctx, round.CurrentKey)
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", fmt.Errorf("failed to get current round ID: %w", err)
	}

	return string(data), nil
}

func (t *redisTx) SetCurrentRound(roundID string) {
	t.set(round.CurrentKey, []byte(roundID), nil)
}

func (t *redisTx) ClearCurrentRound() {
	delete(t.pending, round.CurrentKey)
	t.cleared[round.CurrentKey] = true
	t.queue(write{
		key: round.CurrentKey,
		queue: func(ctx context.Context, pipe redis.Pipeliner) []redis.Cmder {
			return []redis.Cmder{pipe.Del(ctx, round.CurrentKey)}
		},
	})
}

func (t *redisTx) AppendTransaction(txn *models.Transaction) error {
	if txn == nil || txn.ID == "" || txn.PlayerID == "" {
		return errors.New("transaction, transaction ID and player ID cannot be empty")
	}

	key := ledger.TransactionKey(txn.ID)
	if _, exists := t.pending[key]; exists {
		return fmt.Errorf("transaction %s already appended", txn.ID)
	}

	data, err := json.Marshal(txn)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}

	score := float64(txn.CreatedAt.UnixNano())
	t.pending[key] = data
	t.queue(write{
		key: key,
		queue: func(ctx context.Context, pipe redis.Pipeliner) []redis.Cmder {
			// SETNX so an existing record is never overwritten
			cmds := []redis.Cmder{
				pipe.SetNX(ctx, key, data, 0),
				pipe.ZAdd(ctx, ledger.PlayerIndexKey(txn.PlayerID), redis.Z{Score: score, Member: txn.ID}),
			}
			if txn.RoundID != "" {
				cmds = append(cmds, pipe.ZAdd(ctx, ledger.RoundIndexKey(txn.RoundID), redis.Z{Score: score, Member: txn.ID}))
			}
			return cmds
		},
	})

	return nil
}

func (t *redisTx) GetCharge(ctx context.Context, chargeID string) (*models.Charge, error) {
	data, err := t.get(ctx, ledger.ChargeKey(chargeID))
	if err != nil {
		if err == redis.Nil {
			return nil, ledger.ErrChargeNotFound
		}
		return nil, fmt.Errorf("failed to get charge: %w", err)
	}

	var c models.Charge
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal charge: %w", err)
	}

	return &c, nil
}

func (t *redisTx) PutCharge(c *models.Charge) error {
	if c == nil || c.ID == "" {
		return errors.New("charge and charge ID cannot be empty")
	}

	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal charge: %w", err)
	}

	t.set(ledger.ChargeKey(c.ID), data, nil)

	return nil
}
