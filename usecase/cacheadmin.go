package usecase

import (
	"context"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	domainCache "github.com/creatorlens/backend/domains/cache"
)

// CacheStats summarizes live entries per namespace.
type CacheStats struct {
	SearchEntries     int    `json:"search_entries"`
	CollectionEntries int    `json:"collection_entries"`
	ThumbnailEntries  int    `json:"thumbnail_entries"`
	TotalEntries      int    `json:"total_entries"`
	TotalLabel        string `json:"total_label"`
	Healthy           bool   `json:"healthy"`
}

type ICacheAdminUsecase interface {
	Stats(ctx context.Context) CacheStats
	ClearSearchCache(ctx context.Context)
}

type cacheAdminService struct {
	store domainCache.Store
}

func NewCacheAdminService(store domainCache.Store) ICacheAdminUsecase {
	return &cacheAdminService{store: store}
}

func (s *cacheAdminService) Stats(ctx context.Context) CacheStats {
	search := s.store.Count(ctx, domainCache.NamespaceSearch)
	collections := s.store.Count(ctx, domainCache.NamespaceCollections)
	thumbnails := s.store.Count(ctx, domainCache.NamespaceThumbnail)
	total := search + collections + thumbnails

	return CacheStats{
		SearchEntries:     search,
		CollectionEntries: collections,
		ThumbnailEntries:  thumbnails,
		TotalEntries:      total,
		TotalLabel:        humanize.Comma(int64(total)) + " entries",
		Healthy:           s.store.HealthCheck(ctx),
	}
}

func (s *cacheAdminService) ClearSearchCache(ctx context.Context) {
	s.store.DeleteByPrefix(ctx, domainCache.NamespaceSearch, "")
	logrus.Info("[CACHE] search cache cleared")
}
