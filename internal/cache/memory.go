package cache

import (
	"context"
	"sync"
	"time"
)

type memItem struct {
	v       []byte
	expires time.Time
	noexp   bool
}

// MemoryStore keeps quotes and intraday prices in process. When maxEntries is
// reached, expired entries are dropped first, then the one closest to expiry.
type MemoryStore struct {
	mu         sync.RWMutex
	items      map[string]memItem
	maxEntries int
	now        func() time.Time
}

// NewMemoryStore returns a store holding at most maxEntries keys; <= 0 means
// unbounded.
func NewMemoryStore(maxEntries int) *MemoryStore {
	return &MemoryStore{items: map[string]memItem{}, maxEntries: maxEntries, now: time.Now}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	it, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if it.expired(s.now()) {
		s.mu.Lock()
		delete(s.items, key)
		s.mu.Unlock()
		return nil, false, nil
	}
	return clone(it.v), true, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	now := s.now()
	it := memItem{v: clone(value)}
	if ttl <= 0 {
		it.noexp = true
	} else {
		it.expires = now.Add(ttl)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[key]; !exists && s.maxEntries > 0 && len(s.items) >= s.maxEntries {
		s.evict(now)
	}
	s.items[key] = it
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// evict frees one slot. Caller holds the write lock.
func (s *MemoryStore) evict(now time.Time) {
	for k, it := range s.items {
		if it.expired(now) {
			delete(s.items, k)
		}
	}
	if len(s.items) < s.maxEntries {
		return
	}
	var victim string
	var soonest time.Time
	found := false
	for k, it := range s.items {
		if it.noexp {
			continue
		}
		if !found || it.expires.Before(soonest) {
			victim, soonest, found = k, it.expires, true
		}
	}
	if !found {
		for k := range s.items {
			victim = k
			break
		}
	}
	delete(s.items, victim)
}

func (it memItem) expired(now time.Time) bool {
	return !it.noexp && now.After(it.expires)
}

func clone(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
