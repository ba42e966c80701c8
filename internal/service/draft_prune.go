package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DraftPruner deletes drafts that have not been written since cutoff
type DraftPruner interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// RunDraftPruneLoop expires old drafts for backends without native key expiry.
// It prunes once an hour until ctx is done.
func RunDraftPruneLoop(ctx context.Context, pruner DraftPruner, ttl time.Duration, logger *zap.Logger) {
	prune := func() {
		n, err := pruner.DeleteOlderThan(ctx, time.Now().Add(-ttl))
		if err != nil {
			logger.Warn("Draft prune failed", zap.Error(err))
			return
		}
		if n > 0 {
			logger.Info("Pruned expired drafts", zap.Int64("deleted", n))
		}
	}

	prune()
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			prune()
		}
	}
}
