package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainCache "github.com/creatorlens/backend/domains/cache"
	"github.com/creatorlens/backend/domains/media"
	"github.com/creatorlens/backend/infrastructure/cachestore"
)

// fakeSearchProvider counts upstream calls and serves canned payloads.
type fakeSearchProvider struct {
	calls   int32
	payload []byte
	err     error
	block   chan struct{} // when set, TrendingVideos waits until closed
}

func (f *fakeSearchProvider) serve() ([]byte, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

func (f *fakeSearchProvider) TrendingVideos(context.Context, string) ([]byte, error) {
	return f.serve()
}
func (f *fakeSearchProvider) SearchVideos(context.Context, string) ([]byte, error) {
	return f.serve()
}
func (f *fakeSearchProvider) TrendingImages(context.Context, string) ([]byte, error) {
	return f.serve()
}
func (f *fakeSearchProvider) SearchImages(context.Context, string) ([]byte, error) {
	return f.serve()
}
func (f *fakeSearchProvider) Suggestions(context.Context, string) ([]byte, error) {
	return f.serve()
}

const twoVideosPayload = `{"video_results": [
	{"link": "https://youtube.com/watch?v=a", "title": "A"},
	{"link": "https://youtube.com/watch?v=b", "title": "B"}
]}`

func TestSearchService_WarmCacheSkipsProvider(t *testing.T) {
	provider := &fakeSearchProvider{payload: []byte(twoVideosPayload)}
	svc := NewSearchService(cachestore.NewMemoryStore(), provider, time.Minute)
	ctx := context.Background()

	first, err := svc.GetTrendingVideos(ctx, "trending")
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := svc.GetTrendingVideos(ctx, "trending")
	require.NoError(t, err)

	assert.Equal(t, first, second, "cached sequence returned unchanged")
	assert.EqualValues(t, 1, atomic.LoadInt32(&provider.calls), "exactly one upstream call")
}

func TestSearchService_EquivalentQueriesShareSlot(t *testing.T) {
	provider := &fakeSearchProvider{payload: []byte(twoVideosPayload)}
	svc := NewSearchService(cachestore.NewMemoryStore(), provider, time.Minute)
	ctx := context.Background()

	_, err := svc.SearchVideos(ctx, "Lofi  Beats")
	require.NoError(t, err)
	_, err = svc.SearchVideos(ctx, "lofi beats")
	require.NoError(t, err)

	assert.EqualValues(t, 1, atomic.LoadInt32(&provider.calls))
}

func TestSearchService_EmptyResultNotCached(t *testing.T) {
	provider := &fakeSearchProvider{payload: []byte(`{"video_results": []}`)}
	store := cachestore.NewMemoryStore()
	svc := NewSearchService(store, provider, time.Minute)
	ctx := context.Background()

	_, err := svc.SearchVideos(ctx, "obscure query")
	assert.ErrorIs(t, err, media.ErrNoResults)
	assert.Zero(t, store.Count(ctx, domainCache.NamespaceSearch), "empty results must not poison the cache")

	// next call goes upstream again
	_, _ = svc.SearchVideos(ctx, "obscure query")
	assert.EqualValues(t, 2, atomic.LoadInt32(&provider.calls))
}

func TestSearchService_ProviderFailureNotCached(t *testing.T) {
	provider := &fakeSearchProvider{err: errors.New("upstream exploded")}
	store := cachestore.NewMemoryStore()
	svc := NewSearchService(store, provider, time.Minute)

	_, err := svc.GetTrendingVideos(context.Background(), "trending")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream exploded", "upstream message preserved")
	assert.Zero(t, store.Count(context.Background(), domainCache.NamespaceSearch))
}

func TestSearchService_ConcurrentMissesCoalesce(t *testing.T) {
	provider := &fakeSearchProvider{
		payload: []byte(twoVideosPayload),
		block:   make(chan struct{}),
	}
	svc := NewSearchService(cachestore.NewMemoryStore(), provider, time.Minute)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([][]media.Record, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			records, err := svc.GetTrendingVideos(ctx, "trending")
			if err == nil {
				results[i] = records
			}
		}(i)
	}

	// give the goroutines time to pile onto the in-flight call
	time.Sleep(50 * time.Millisecond)
	close(provider.block)
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&provider.calls), "concurrent identical misses share one upstream call")
	for _, r := range results {
		assert.Len(t, r, 2)
	}
}

func TestSearchService_CachedTTLExpires(t *testing.T) {
	provider := &fakeSearchProvider{payload: []byte(twoVideosPayload)}
	store := cachestore.NewMemoryStore()
	svc := NewSearchService(store, provider, time.Millisecond)
	ctx := context.Background()

	_, err := svc.GetTrendingVideos(ctx, "trending")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = svc.GetTrendingVideos(ctx, "trending")
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&provider.calls), "expired entry forces a refetch")
}
