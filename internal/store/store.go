package store

import (
	"context"
	"fmt"
	"sync"
)

// KV abstracts the persistent record store. Values are opaque serialized
// collections; all business rules live above this layer. Implementations
// must be safe for use from a single actor session (one logical thread);
// the in-memory backend is additionally safe for concurrent use.
type KV interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open selects a backend by name: memory|pebble|badger. dir is ignored for
// the memory backend.
func Open(backend string, dir string) (KV, error) {
	switch backend {
	case "", "memory":
		return NewInMemory(), nil
	case "pebble":
		return NewPebble(dir)
	case "badger":
		return NewBadger(dir)
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

// InMemory is a simple thread-safe map store, used in tests and as the
// default simulator backend.
type InMemory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewInMemory() *InMemory {
	return &InMemory{data: make(map[string][]byte)}
}

func (s *InMemory) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	cp := append([]byte(nil), v...)
	return cp, true, nil
}

func (s *InMemory) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *InMemory) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *InMemory) Close() error { return nil }
