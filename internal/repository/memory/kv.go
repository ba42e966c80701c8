package memory

import (
	"context"
	"sync"

	"github.com/jafarshop/topup/pkg/errors"
)

type keyValueStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewKeyValueStore creates an in-process store. Contents are lost on restart.
func NewKeyValueStore() *keyValueStore {
	return &keyValueStore{values: make(map[string]string)}
}

func (s *keyValueStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return "", &errors.ErrNotFound{Resource: "key", ID: key}
	}
	return v, nil
}

func (s *keyValueStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *keyValueStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Len reports the number of stored keys
func (s *keyValueStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
