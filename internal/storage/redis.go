package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	config "github.com/thirdweb-dev/token-streams/configs"
)

var DEFAULT_REDIS_POOL_SIZE = 20

// RedisDeltaStore realizes the additive store on Redis: every application
// is one INCRBY, atomic per key. Same-key ordinal ordering is the
// caller's contract; block processing applies deltas single-threaded so
// the order of arrival is the ordinal order.
type RedisDeltaStore struct {
	client *redis.Client
	cfg    *config.RedisConfig
}

func NewRedisDeltaStore(cfg *config.RedisConfig) (*RedisDeltaStore, error) {
	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = DEFAULT_REDIS_POOL_SIZE
	}

	options := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: poolSize,
	}

	client := redis.NewClient(options)

	ctx := context.Background()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Debug().Msgf("Connected to Redis at %s", cfg.Addr)
	return &RedisDeltaStore{
		client: client,
		cfg:    cfg,
	}, nil
}

// BeginBlock is a no-op: ordering is the caller's contract here, so
// there is no ordinal window to reset.
func (r *RedisDeltaStore) BeginBlock() {}

func (r *RedisDeltaStore) Add(ordinal uint64, key string, delta int64) error {
	ctx := context.Background()
	if err := r.client.IncrBy(ctx, key, delta).Err(); err != nil {
		return fmt.Errorf("failed to apply delta to %s: %w", key, err)
	}
	return nil
}

func (r *RedisDeltaStore) Close() error {
	return r.client.Close()
}
