// Package draft keeps one in-progress order per product in a key-value repository.
//
// Persistence is advisory. Load falls back to the default draft on any read or decode
// failure, and Save only logs write failures; the in-memory draft stays authoritative.
package draft

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/jafarshop/topup/internal/domain"
	"github.com/jafarshop/topup/internal/repository"
	"github.com/jafarshop/topup/pkg/errors"
)

// KeyPrefix is prepended to the product key to form the storage key
const KeyPrefix = "order:"

// Key returns the storage key of a product's draft
func Key(productKey string) string {
	return KeyPrefix + productKey
}

type Store struct {
	kv     repository.KeyValueStore
	logger *zap.Logger
}

func NewStore(kv repository.KeyValueStore, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{kv: kv, logger: logger}
}

// Load returns the stored draft merged over the defaults, or the defaults
func (s *Store) Load(ctx context.Context, productKey string) domain.OrderDraft {
	d, _ := s.load(ctx, productKey)
	return d
}

// load also reports whether the backend failed to answer. A missing key or an
// undecodable record is not a read failure.
func (s *Store) load(ctx context.Context, productKey string) (domain.OrderDraft, bool) {
	d := domain.DefaultDraft()

	raw, err := s.kv.Get(ctx, Key(productKey))
	if err != nil {
		var nf *errors.ErrNotFound
		if stderrors.As(err, &nf) {
			return d, false
		}
		s.logger.Warn("Draft read failed, using defaults", zap.String("product", productKey), zap.Error(err))
		return d, true
	}

	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		s.logger.Debug("Stored draft is not decodable, using defaults", zap.String("product", productKey), zap.Error(err))
		return domain.DefaultDraft(), false
	}

	return d.Normalized(), false
}

// Save writes the full draft. Failures are logged and dropped.
func (s *Store) Save(ctx context.Context, productKey string, d domain.OrderDraft) {
	body, err := json.Marshal(d)
	if err != nil {
		s.logger.Warn("Failed to encode draft", zap.String("product", productKey), zap.Error(err))
		return
	}
	if err := s.kv.Set(ctx, Key(productKey), string(body)); err != nil {
		s.logger.Warn("Failed to persist draft", zap.String("product", productKey), zap.Error(err))
	}
}

// Clear removes a product's stored draft
func (s *Store) Clear(ctx context.Context, productKey string) {
	if err := s.kv.Delete(ctx, Key(productKey)); err != nil {
		s.logger.Warn("Failed to clear draft", zap.String("product", productKey), zap.Error(err))
	}
}

// Open loads a product's draft into a handle that owns the in-memory copy
func (s *Store) Open(ctx context.Context, productKey string) *Handle {
	d, readFailed := s.load(ctx, productKey)
	return &Handle{
		store:      s,
		productKey: productKey,
		current:    d,
		readFailed: readFailed,
	}
}

// Handle is the mounted draft of one product. It is not safe for concurrent use.
//
// When the backend failed to answer on Open, the handle holds defaults that may not match
// what is stored, so Update keeps changes in memory and never writes them back.
type Handle struct {
	store      *Store
	productKey string
	current    domain.OrderDraft
	readFailed bool
}

func (h *Handle) ProductKey() string {
	return h.productKey
}

// ReadFailed reports whether the stored draft could not be read on Open
func (h *Handle) ReadFailed() bool {
	return h.readFailed
}

// Current returns the in-memory draft
func (h *Handle) Current() domain.OrderDraft {
	return h.current
}

// Update merges a partial update into the draft and saves it once
func (h *Handle) Update(ctx context.Context, patch domain.DraftPatch) domain.OrderDraft {
	h.current = h.current.Apply(patch)
	if h.readFailed {
		h.store.logger.Warn("Skipping draft write, stored draft was not readable", zap.String("product", h.productKey))
		return h.current
	}
	h.store.Save(ctx, h.productKey, h.current)
	return h.current
}
