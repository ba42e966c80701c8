package backend

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/topup/internal/config"
)

func TestOpen_Memory(t *testing.T) {
	b, err := Open(context.Background(), &config.Config{Storage: config.StorageConfig{Driver: config.StorageMemory}}, nil)
	require.NoError(t, err)
	defer b.Close()

	assert.Nil(t, b.Pruner)
	require.NoError(t, b.Repos.Drafts.Set(context.Background(), "order:ml", "{}"))
	v, err := b.Repos.Drafts.Get(context.Background(), "order:ml")
	require.NoError(t, err)
	assert.Equal(t, "{}", v)
}

func TestOpen_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &config.Config{
		Storage: config.StorageConfig{Driver: config.StorageRedis, DraftTTL: time.Hour},
		Redis:   config.RedisConfig{Addr: mr.Addr()},
	}

	b, err := Open(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer b.Close()

	assert.Nil(t, b.Pruner)
	require.NoError(t, b.Repos.Drafts.Set(context.Background(), "order:ml", "{}"))
	assert.True(t, mr.Exists("topup:order:ml"))
}

func TestOpen_RedisUnreachable(t *testing.T) {
	cfg := &config.Config{
		Storage: config.StorageConfig{Driver: config.StorageRedis},
		Redis:   config.RedisConfig{Addr: "127.0.0.1:1"},
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := Open(ctx, cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{Storage: config.StorageConfig{Driver: "localstorage"}}, nil)
	assert.ErrorContains(t, err, "localstorage")
}

func TestFromPostgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	b := FromPostgres(db, zap.NewNop())
	assert.NotNil(t, b.Pruner)
	assert.NotNil(t, b.Repos.Drafts)
	require.NoError(t, b.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
