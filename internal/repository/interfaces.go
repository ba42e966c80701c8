package repository

import (
	"context"
)

// KeyValueStore is the durable, best-effort draft storage. Get returns *errors.ErrNotFound
// for a missing key.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Repositories aggregates all repositories
type Repositories struct {
	Drafts KeyValueStore
}

// Scoped prefixes every key with prefix. A session gets its own namespace this way while
// the keys it sees stay unchanged.
func Scoped(kv KeyValueStore, prefix string) KeyValueStore {
	return &scopedStore{inner: kv, prefix: prefix}
}

type scopedStore struct {
	inner  KeyValueStore
	prefix string
}

func (s *scopedStore) Get(ctx context.Context, key string) (string, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *scopedStore) Set(ctx context.Context, key, value string) error {
	return s.inner.Set(ctx, s.prefix+key, value)
}

func (s *scopedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}
