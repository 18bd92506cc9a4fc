package cachestore

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	valkeylib "github.com/valkey-io/valkey-go"

	domainCache "github.com/creatorlens/backend/domains/cache"
	"github.com/creatorlens/backend/infrastructure/valkey"
)

// ValkeyStore implements cache.Store backed by a Valkey server.
// Every backend failure degrades to cache-miss behavior: reads report a
// miss, writes and deletes are logged and swallowed.
type ValkeyStore struct {
	client *valkey.Client
}

func NewValkeyStore(client *valkey.Client) *ValkeyStore {
	return &ValkeyStore{client: client}
}

func (s *ValkeyStore) fullKey(namespace, key string) string {
	return s.client.Key(namespace, key)
}

func (s *ValkeyStore) inner() valkeylib.Client {
	return s.client.Inner()
}

func (s *ValkeyStore) Get(ctx context.Context, namespace, key string) ([]byte, bool) {
	cmd := s.inner().B().Get().Key(s.fullKey(namespace, key)).Build()

	data, err := s.inner().Do(ctx, cmd).AsBytes()
	if err != nil {
		if !valkey.IsNil(err) {
			logrus.WithError(err).Warnf("[CACHE] get %s:%s failed, treating as miss", namespace, key)
		}
		return nil, false
	}
	return data, true
}

func (s *ValkeyStore) Set(ctx context.Context, namespace, key string, payload []byte, ttl time.Duration) {
	cmd := s.inner().B().Set().
		Key(s.fullKey(namespace, key)).
		Value(string(payload)).
		Ex(ttl).
		Build()

	if err := s.inner().Do(ctx, cmd).Error(); err != nil {
		logrus.WithError(err).Warnf("[CACHE] set %s:%s failed", namespace, key)
	}
}

func (s *ValkeyStore) Delete(ctx context.Context, namespace, key string) {
	cmd := s.inner().B().Del().Key(s.fullKey(namespace, key)).Build()
	if err := s.inner().Do(ctx, cmd).Error(); err != nil {
		logrus.WithError(err).Warnf("[CACHE] delete %s:%s failed", namespace, key)
	}
}

func (s *ValkeyStore) DeleteByPrefix(ctx context.Context, namespace, prefix string) {
	pattern := s.client.Key(namespace, prefix) + "*"
	keys, err := s.client.ScanKeys(ctx, pattern)
	if err != nil {
		logrus.WithError(err).Warnf("[CACHE] scan %s failed", pattern)
		return
	}
	if len(keys) == 0 {
		return
	}

	cmd := s.inner().B().Del().Key(keys...).Build()
	if err := s.inner().Do(ctx, cmd).Error(); err != nil {
		logrus.WithError(err).Warnf("[CACHE] delete by prefix %s failed", pattern)
		return
	}
	logrus.Infof("[CACHE] cleared %d entries under %s", len(keys), pattern)
}

func (s *ValkeyStore) Count(ctx context.Context, namespace string) int {
	keys, err := s.client.ScanKeys(ctx, s.client.Key(namespace)+":*")
	if err != nil {
		logrus.WithError(err).Warnf("[CACHE] count %s failed", namespace)
		return 0
	}
	return len(keys)
}

func (s *ValkeyStore) HealthCheck(ctx context.Context) bool {
	return s.client.Ping(ctx) == nil
}

func (s *ValkeyStore) Close() {
	s.client.Close()
}

var _ domainCache.Store = (*ValkeyStore)(nil)
