package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/topup/internal/catalog"
	"github.com/jafarshop/topup/internal/storefront"
)

// ProductLister is the part of the storefront client the sync job needs
type ProductLister interface {
	ListAllProducts(ctx context.Context) ([]storefront.Product, error)
}

// SyncResult counts what one catalog sync changed
type SyncResult struct {
	Fetched int `json:"fetched"`
	Updated int `json:"updated"`
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// CatalogSyncer refreshes the catalog registry from the storefront backend.
// Runs are serialized.
type CatalogSyncer struct {
	mu       sync.Mutex
	lister   ProductLister
	registry *catalog.Registry
	logger   *zap.Logger
}

func NewCatalogSyncer(lister ProductLister, registry *catalog.Registry, logger *zap.Logger) *CatalogSyncer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogSyncer{
		lister:   lister,
		registry: registry,
		logger:   logger,
	}
}

// RunOnce pulls every storefront product and applies titles and new products to the registry
func (s *CatalogSyncer) RunOnce(ctx context.Context) (SyncResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.lister.ListAllProducts(ctx)
	if err != nil {
		s.logger.Warn("Catalog sync: storefront request failed", zap.Error(err))
		return SyncResult{}, err
	}

	listings := make([]catalog.Listing, 0, len(products))
	for _, p := range products {
		listings = append(listings, catalog.Listing{Slug: p.Slug, Title: p.Title})
	}
	updated, added, skipped := s.registry.ApplyListings(listings)

	res := SyncResult{Fetched: len(products), Updated: updated, Added: added, Skipped: skipped}
	s.logger.Info("Catalog sync: applied storefront listing",
		zap.Int("fetched", res.Fetched),
		zap.Int("updated", res.Updated),
		zap.Int("added", res.Added),
		zap.Int("skipped", res.Skipped),
	)
	return res, nil
}

// RunLoop runs sync once, then every interval until ctx is done. Call from a goroutine.
func (s *CatalogSyncer) RunLoop(ctx context.Context, interval time.Duration) {
	s.RunOnce(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}
