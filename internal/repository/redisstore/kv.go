package redisstore

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jafarshop/topup/internal/config"
	"github.com/jafarshop/topup/pkg/errors"
)

const keyPrefix = "topup:"

type keyValueStore struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewClient opens a Redis client and checks it answers
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return rdb, nil
}

// NewKeyValueStore creates a Redis backed store. A zero ttl keeps keys forever.
func NewKeyValueStore(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *keyValueStore {
	return &keyValueStore{
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}
}

func (s *keyValueStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.rdb.Get(ctx, keyPrefix+key).Result()
	if stderrors.Is(err, redis.Nil) {
		return "", &errors.ErrNotFound{Resource: "key", ID: key}
	}
	if err != nil {
		s.logger.Error("Failed to get draft key from redis", zap.String("key", key), zap.Error(err))
		return "", err
	}
	return v, nil
}

func (s *keyValueStore) Set(ctx context.Context, key, value string) error {
	if err := s.rdb.Set(ctx, keyPrefix+key, value, s.ttl).Err(); err != nil {
		s.logger.Error("Failed to set draft key in redis", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

func (s *keyValueStore) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, keyPrefix+key).Err()
}
