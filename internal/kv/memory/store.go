// Package memory provides an in-process KVStore used by tests and the
// "memory" storage mode. Entries honor TTLs by deadline checks on read.
package memory

import (
	"context"
	"sync"
	"time"

	"jsonatlas/internal/domain/repositories"
)

type entry struct {
	value     string
	metadata  map[string]any
	expiresAt time.Time // zero means never
}

// Store is a thread-safe map-backed KVStore.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

func New() *Store {
	return &Store{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return "", false, nil
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		// Lazy expiry; the entry stays until the next Put or Delete.
		return "", false, nil
	}
	return e.value, true, nil
}

func (s *Store) Put(ctx context.Context, key, value string, opts repositories.PutOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e := entry{value: value, metadata: opts.Metadata}
	if opts.TTL > 0 {
		e.expiresAt = s.now().Add(opts.TTL)
	}

	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

// Len reports the number of live (non-expired) entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, e := range s.entries {
		if e.expiresAt.IsZero() || s.now().Before(e.expiresAt) {
			n++
		}
	}
	return n
}
