package memory

import (
	"context"
	"sync"
	"time"

	"chalet/internal/app/middleware"
)

// IdempotencyStore keeps click outcomes in memory. Records older than ttl are
// dropped lazily on Save; a zero ttl keeps everything.
type IdempotencyStore struct {
	mu    sync.RWMutex
	ttl   time.Duration
	items map[string]middleware.IdempotencyRecord
}

func NewIdempotencyStore(ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{ttl: ttl, items: make(map[string]middleware.IdempotencyRecord)}
}

func (s *IdempotencyStore) Get(ctx context.Context, key string) (middleware.IdempotencyRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.items[key]
	return rec, ok, nil
}

func (s *IdempotencyStore) Save(ctx context.Context, rec middleware.IdempotencyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ttl > 0 {
		cutoff := rec.OccurredAt.Add(-s.ttl)
		for key, old := range s.items {
			if old.OccurredAt.Before(cutoff) {
				delete(s.items, key)
			}
		}
	}
	s.items[rec.Key] = rec
	return nil
}

func (s *IdempotencyStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

var _ middleware.IdempotencyStore = (*IdempotencyStore)(nil)
