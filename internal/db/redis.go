package db

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/highroll-gg/bigwin-notifier/internal/config"
	"github.com/highroll-gg/bigwin-notifier/internal/types"
)

const (
	cursorRoundKey = "bigwin:cursor:round"
	cursorIntraKey = "bigwin:cursor:intra"

	// WATCH transactions fail when the watched keys change mid-flight;
	// a failed attempt is re-read before giving up.
	redisCASAttempts = 3
)

// RedisStore keeps the checkpoint as two decimal-string keys in Redis.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(cfg config.RedisConfig) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// FlushAll clears the selected database. Test helper.
func (s *RedisStore) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

func (s *RedisStore) GetCheckpoint(ctx context.Context) (types.Cursor, error) {
	values, err := s.client.MGet(ctx, cursorRoundKey, cursorIntraKey).Result()
	if err != nil {
		return types.Cursor{}, fmt.Errorf("failed to read checkpoint keys: %w", err)
	}

	round, err := parseCursorValue(values[0])
	if err != nil {
		return types.Cursor{}, fmt.Errorf("corrupt checkpoint key %s: %w", cursorRoundKey, err)
	}
	intra, err := parseCursorValue(values[1])
	if err != nil {
		return types.Cursor{}, fmt.Errorf("corrupt checkpoint key %s: %w", cursorIntraKey, err)
	}
	return types.Cursor{Round: round, Intra: intra}, nil
}

func (s *RedisStore) AdvanceCheckpoint(ctx context.Context, from, to types.Cursor) (bool, error) {
	var conflict bool

	txn := func(tx *redis.Tx) error {
		values, err := tx.MGet(ctx, cursorRoundKey, cursorIntraKey).Result()
		if err != nil {
			return err
		}
		round, err := parseCursorValue(values[0])
		if err != nil {
			return err
		}
		intra, err := parseCursorValue(values[1])
		if err != nil {
			return err
		}
		if round != from.Round || intra != from.Intra {
			conflict = true
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, cursorRoundKey, strconv.FormatUint(to.Round, 10), 0)
			pipe.Set(ctx, cursorIntraKey, strconv.FormatUint(to.Intra, 10), 0)
			return nil
		})
		return err
	}

	for range redisCASAttempts {
		err := s.client.Watch(ctx, txn, cursorRoundKey, cursorIntraKey)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("failed to advance checkpoint: %w", err)
		}
		return !conflict, nil
	}
	// Keys kept changing underneath; treat as a lost CAS.
	return false, nil
}

// parseCursorValue decodes a single MGET result. Missing keys (nil) mean
// the checkpoint was never written and read as zero.
func parseCursorValue(v any) (uint64, error) {
	if v == nil {
		return 0, nil
	}
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("unexpected value type %T", v)
	}
	return strconv.ParseUint(s, 10, 64)
}
