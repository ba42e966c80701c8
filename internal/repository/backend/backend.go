// Package backend opens the draft store selected by STORAGE_DRIVER.
package backend

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jafarshop/topup/internal/config"
	"github.com/jafarshop/topup/internal/repository"
	"github.com/jafarshop/topup/internal/repository/memory"
	"github.com/jafarshop/topup/internal/repository/postgres"
	"github.com/jafarshop/topup/internal/repository/redisstore"
)

// Pruner deletes drafts untouched since cutoff
type Pruner interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Backend is an opened draft store. Pruner is nil for backends that expire keys on their own.
type Backend struct {
	Repos  *repository.Repositories
	Pruner Pruner
	close  func() error
}

// Close releases the underlying connection
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// Open connects to the configured storage driver
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Backend, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Storage.Driver {
	case config.StorageMemory:
		logger.Warn("Using in-memory draft storage; drafts are lost on restart")
		return &Backend{Repos: &repository.Repositories{Drafts: memory.NewKeyValueStore()}}, nil

	case config.StorageRedis:
		rdb, err := redisstore.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return FromRedis(rdb, cfg.Storage.DraftTTL, logger), nil

	case config.StoragePostgres:
		db, err := postgres.NewConnection(cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := postgres.RunMigrations(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		return FromPostgres(db, logger), nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// FromRedis wraps an open Redis client
func FromRedis(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *Backend {
	logger.Info("Using redis draft storage", zap.Duration("ttl", ttl))
	return &Backend{
		Repos: &repository.Repositories{Drafts: redisstore.NewKeyValueStore(rdb, ttl, logger)},
		close: rdb.Close,
	}
}

// FromPostgres wraps an open database whose schema is migrated
func FromPostgres(db *sql.DB, logger *zap.Logger) *Backend {
	logger.Info("Using postgres draft storage")
	drafts := postgres.NewDraftRepository(db, logger)
	return &Backend{
		Repos:  &repository.Repositories{Drafts: drafts},
		Pruner: drafts,
		close:  db.Close,
	}
}
