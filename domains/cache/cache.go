package cache

import (
	"context"
	"strings"
	"time"
)

// Namespaces group cache keys per read path. Keys are always
// "<namespace>:<key>" under the client-level prefix.
const (
	NamespaceSearch      = "serp"
	NamespaceCollections = "collections"
	NamespaceTrending    = "trending"
	NamespaceThumbnail   = "hf_thumbnail"
)

// TTL windows per namespace (defaults; the config layer can override).
const (
	SearchTTL      = 30 * time.Minute
	CollectionsTTL = 30 * time.Minute
	TrendingTTL    = 30 * time.Minute
	ThumbnailTTL   = 24 * time.Hour
)

// Store is a namespaced key/value cache with per-key TTL.
//
// Implementations must degrade instead of failing: a Get against an
// unreachable backend reports a miss, a Set or Delete failure is logged and
// swallowed. Cached data is never authoritative; every caller must work
// (slower) with no cache at all.
type Store interface {
	// Get returns the stored payload and true when present and unexpired.
	Get(ctx context.Context, namespace, key string) ([]byte, bool)

	// Set stores payload under namespace:key, replacing any existing entry.
	Set(ctx context.Context, namespace, key string, payload []byte, ttl time.Duration)

	// Delete removes a single entry. Deleting an absent key is a no-op.
	Delete(ctx context.Context, namespace, key string)

	// DeleteByPrefix removes every entry in the namespace whose key starts
	// with prefix. An empty prefix clears the whole namespace.
	DeleteByPrefix(ctx context.Context, namespace, prefix string)

	// Count returns the number of live entries in the namespace.
	Count(ctx context.Context, namespace string) int

	// HealthCheck reports backend liveness. A false result marks the store
	// as degraded; it never aborts a request.
	HealthCheck(ctx context.Context) bool

	Close()
}

// Invalidator is called by write paths immediately after a commit, before
// the write's own response returns, so the invalidating actor reads its own
// writes. Failures are logged, never propagated: a stale entry is bounded
// by its TTL.
type Invalidator interface {
	Invalidate(ctx context.Context, scope, identifier string)
}

// NormalizeKey lower-cases free text and collapses internal whitespace so
// equivalent human queries land on the same cache slot.
// "Trending  Videos" -> "trending_videos".
func NormalizeKey(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), "_")
}
