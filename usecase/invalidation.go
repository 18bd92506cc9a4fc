package usecase

import (
	"context"

	"github.com/sirupsen/logrus"

	domainCache "github.com/creatorlens/backend/domains/cache"
)

// invalidationCoordinator evicts the cache entries a committed write just
// made stale. Prefix deletion covers derived keys (for example the
// per-type variants of a user's collection listing).
type invalidationCoordinator struct {
	store domainCache.Store
}

func NewInvalidationCoordinator(store domainCache.Store) domainCache.Invalidator {
	return &invalidationCoordinator{store: store}
}

func (c *invalidationCoordinator) Invalidate(ctx context.Context, scope, identifier string) {
	// Exact key plus the "_"-separated variants; a bare prefix match would
	// also evict other identifiers that merely start with this one.
	c.store.Delete(ctx, scope, identifier)
	c.store.DeleteByPrefix(ctx, scope, identifier+"_")
	logrus.Infof("[CACHE] invalidated %s:%s", scope, identifier)
}
