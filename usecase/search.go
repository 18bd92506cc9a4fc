package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	domainCache "github.com/creatorlens/backend/domains/cache"
	"github.com/creatorlens/backend/domains/media"
	"github.com/creatorlens/backend/pkg/mediaparse"
)

// searchService answers trending and search queries with a cache-aside
// strategy: consult the store, on miss fetch through the retrying provider,
// normalize, and cache only non-empty result sets.
type searchService struct {
	store    domainCache.Store
	provider media.SearchProvider
	ttl      time.Duration
	group    singleflight.Group
}

func NewSearchService(store domainCache.Store, provider media.SearchProvider, ttl time.Duration) media.ISearchUsecase {
	if ttl == 0 {
		ttl = domainCache.SearchTTL
	}
	return &searchService{store: store, provider: provider, ttl: ttl}
}

// cachedRecords runs the cache-aside flow for one key. Concurrent misses
// for the same key share a single upstream call through singleflight, so a
// stampede produces one provider hit and one cache write.
func (s *searchService) cachedRecords(ctx context.Context, key string, fetch func() ([]byte, error), normalize func([]byte) []media.Record) ([]media.Record, error) {
	if payload, ok := s.store.Get(ctx, domainCache.NamespaceSearch, key); ok {
		var records []media.Record
		if err := json.Unmarshal(payload, &records); err == nil {
			logrus.Debugf("[SERP] cache hit for %s", key)
			return records, nil
		}
		// Unreadable entry: drop it and fall through to a fresh fetch.
		s.store.Delete(ctx, domainCache.NamespaceSearch, key)
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		raw, err := fetch()
		if err != nil {
			return nil, err
		}

		records := normalize(raw)
		if len(records) == 0 {
			// Empty results are a valid outcome but must never be
			// cached; the provider may index content any moment.
			return nil, media.ErrNoResults
		}

		if payload, err := json.Marshal(records); err == nil {
			s.store.Set(ctx, domainCache.NamespaceSearch, key, payload, s.ttl)
		}
		logrus.Infof("[SERP] fetched %d records for %s", len(records), key)
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]media.Record), nil
}

func (s *searchService) GetTrendingVideos(ctx context.Context, query string) ([]media.Record, error) {
	if query == "" {
		query = "trending"
	}
	// Key layout predates the namespace split; kept for warm caches.
	key := "trending_videos_" + domainCache.NormalizeKey(query)
	return s.cachedRecords(ctx, key,
		func() ([]byte, error) { return s.provider.TrendingVideos(ctx, query) },
		mediaparse.NormalizeVideos)
}

func (s *searchService) SearchVideos(ctx context.Context, query string) ([]media.Record, error) {
	key := "videos_" + domainCache.NormalizeKey(query)
	return s.cachedRecords(ctx, key,
		func() ([]byte, error) { return s.provider.SearchVideos(ctx, query) },
		mediaparse.NormalizeVideos)
}

func (s *searchService) GetTrendingImages(ctx context.Context, query string) ([]media.Record, error) {
	if query == "" {
		query = "youtube thumbnail ideas"
	}
	key := "trending_images_" + domainCache.NormalizeKey(query)
	return s.cachedRecords(ctx, key,
		func() ([]byte, error) { return s.provider.TrendingImages(ctx, query) },
		mediaparse.NormalizeImages)
}

func (s *searchService) SearchImages(ctx context.Context, query string) ([]media.Record, error) {
	key := "images_" + domainCache.NormalizeKey(query)
	return s.cachedRecords(ctx, key,
		func() ([]byte, error) { return s.provider.SearchImages(ctx, query) },
		mediaparse.NormalizeImages)
}

// ChatSuggestions is a passthrough; suggestion payloads are cheap and
// highly query-specific, so they are not cached.
func (s *searchService) ChatSuggestions(ctx context.Context, query string) ([]media.Suggestion, error) {
	raw, err := s.provider.Suggestions(ctx, query)
	if err != nil {
		return nil, err
	}
	suggestions := mediaparse.NormalizeSuggestions(raw)
	if len(suggestions) == 0 {
		return nil, media.ErrNoResults
	}
	return suggestions, nil
}
