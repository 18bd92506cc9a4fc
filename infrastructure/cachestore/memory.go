package cachestore

import (
	"context"
	"strings"
	"sync"
	"time"

	domainCache "github.com/creatorlens/backend/domains/cache"
)

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryStore is an in-process cache.Store used when Valkey is disabled and
// as the fake in usecase tests. Expired entries are dropped lazily on read.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func memKey(namespace, key string) string {
	return namespace + ":" + key
}

func (s *MemoryStore) Get(_ context.Context, namespace, key string) ([]byte, bool) {
	k := memKey(namespace, key)

	s.mu.RLock()
	entry, ok := s.entries[k]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if s.now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, k)
		s.mu.Unlock()
		return nil, false
	}
	return entry.payload, true
}

func (s *MemoryStore) Set(_ context.Context, namespace, key string, payload []byte, ttl time.Duration) {
	buf := make([]byte, len(payload))
	copy(buf, payload)

	s.mu.Lock()
	s.entries[memKey(namespace, key)] = memoryEntry{
		payload:   buf,
		expiresAt: s.now().Add(ttl),
	}
	s.mu.Unlock()
}

func (s *MemoryStore) Delete(_ context.Context, namespace, key string) {
	s.mu.Lock()
	delete(s.entries, memKey(namespace, key))
	s.mu.Unlock()
}

func (s *MemoryStore) DeleteByPrefix(_ context.Context, namespace, prefix string) {
	full := memKey(namespace, prefix)

	s.mu.Lock()
	for k := range s.entries {
		if strings.HasPrefix(k, full) {
			delete(s.entries, k)
		}
	}
	s.mu.Unlock()
}

func (s *MemoryStore) Count(_ context.Context, namespace string) int {
	prefix := namespace + ":"
	now := s.now()

	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for k, entry := range s.entries {
		if strings.HasPrefix(k, prefix) && now.Before(entry.expiresAt) {
			n++
		}
	}
	return n
}

func (s *MemoryStore) HealthCheck(_ context.Context) bool {
	return true
}

func (s *MemoryStore) Close() {
	s.mu.Lock()
	s.entries = make(map[string]memoryEntry)
	s.mu.Unlock()
}

var _ domainCache.Store = (*MemoryStore)(nil)
