package postgres

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/topup/pkg/errors"
)

type draftRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewDraftRepository creates a key-value draft repository on the order_drafts table
func NewDraftRepository(db *sql.DB, logger *zap.Logger) *draftRepository {
	return &draftRepository{
		db:     db,
		logger: logger,
	}
}

func (r *draftRepository) Get(ctx context.Context, key string) (string, error) {
	query := `
		SELECT value
		FROM order_drafts
		WHERE key = $1
	`

	var value string
	err := r.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", &errors.ErrNotFound{Resource: "key", ID: key}
	}
	if err != nil {
		r.logger.Error("Failed to get order draft", zap.String("key", key), zap.Error(err))
		return "", err
	}

	return value, nil
}

func (r *draftRepository) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO order_drafts (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query, key, value, time.Now())
	if err != nil {
		r.logger.Error("Failed to upsert order draft", zap.String("key", key), zap.Error(err))
		return err
	}

	return nil
}

func (r *draftRepository) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM order_drafts WHERE key = $1`

	if _, err := r.db.ExecContext(ctx, query, key); err != nil {
		r.logger.Error("Failed to delete order draft", zap.String("key", key), zap.Error(err))
		return err
	}

	return nil
}

// DeleteOlderThan removes drafts nobody has written to since cutoff
func (r *draftRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM order_drafts WHERE updated_at < $1`, cutoff)
	if err != nil {
		r.logger.Error("Failed to prune order drafts", zap.Error(err))
		return 0, err
	}
	return res.RowsAffected()
}
