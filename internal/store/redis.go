package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-shop-keeper/internal/config"
	"github.com/MKhiriev/go-shop-keeper/internal/logger"
)

const idempotencyKeyPrefix = "shop:idempotency:"

// ErrRedisOperation wraps any failed Redis command.
var ErrRedisOperation = errors.New("redis operation failed")

// redisCommander is the subset of *redis.Client the idempotency store uses.
type redisCommander interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// NewConnectRedis creates a client for cfg and pings it.
func NewConnectRedis(ctx context.Context, cfg config.Redis, log *logger.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewConnectRedis").Msg("error connecting redis (ping)")
		_ = client.Close()
		return nil, fmt.Errorf("%w: %w", ErrRedisOperation, err)
	}
	log.Info().Str("func", "NewConnectRedis").Str("address", cfg.Address).Msg("connected to redis successfully")

	return client, nil
}

// redisIdempotencyStore implements [IdempotencyStore] with one JSON value per
// key. SETNX makes the reservation atomic across server instances.
type redisIdempotencyStore struct {
	client redisCommander
	logger *logger.Logger
}

// NewRedisIdempotencyStore constructs an [IdempotencyStore] on client.
func NewRedisIdempotencyStore(client redisCommander, logger *logger.Logger) IdempotencyStore {
	logger.Debug().Msg("creating redis idempotency store")
	return &redisIdempotencyStore{client: client, logger: logger}
}

func (s *redisIdempotencyStore) Reserve(ctx context.Context, key, fingerprint string, ttl time.Duration) (IdempotencyRecord, bool, error) {
	log := logger.FromContext(ctx)

	processing := IdempotencyRecord{State: IdempotencyProcessing, Fingerprint: fingerprint}
	raw, err := json.Marshal(processing)
	if err != nil {
		return IdempotencyRecord{}, false, err
	}

	// a record may expire between SETNX and GET, so try twice
	for range 2 {
		ok, err := s.client.SetNX(ctx, idempotencyKeyPrefix+key, raw, ttl).Result()
		if err != nil {
			log.Err(err).Str("func", "*redisIdempotencyStore.Reserve").Msg("error reserving key")
			return IdempotencyRecord{}, false, fmt.Errorf("%w: %w", ErrRedisOperation, err)
		}
		if ok {
			return processing, true, nil
		}

		current, err := s.client.Get(ctx, idempotencyKeyPrefix+key).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			log.Err(err).Str("func", "*redisIdempotencyStore.Reserve").Msg("error reading key")
			return IdempotencyRecord{}, false, fmt.Errorf("%w: %w", ErrRedisOperation, err)
		}

		var record IdempotencyRecord
		if err = json.Unmarshal(current, &record); err != nil {
			log.Err(err).Str("func", "*redisIdempotencyStore.Reserve").Msg("error decoding record")
			return IdempotencyRecord{}, false, fmt.Errorf("%w: %w", ErrRedisOperation, err)
		}
		return record, false, nil
	}

	return IdempotencyRecord{}, false, fmt.Errorf("%w: key %q kept expiring", ErrRedisOperation, key)
}

func (s *redisIdempotencyStore) Complete(ctx context.Context, key string, record IdempotencyRecord, ttl time.Duration) error {
	record.State = IdempotencyCompleted
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}

	if err = s.client.Set(ctx, idempotencyKeyPrefix+key, raw, ttl).Err(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*redisIdempotencyStore.Complete").Msg("error storing response")
		return fmt.Errorf("%w: %w", ErrRedisOperation, err)
	}

	return nil
}

func (s *redisIdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, idempotencyKeyPrefix+key).Err(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*redisIdempotencyStore.Release").Msg("error releasing key")
		return fmt.Errorf("%w: %w", ErrRedisOperation, err)
	}
	return nil
}
