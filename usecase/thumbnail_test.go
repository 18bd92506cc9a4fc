package usecase

import (
	"context"
	"encoding/base64"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainCache "github.com/creatorlens/backend/domains/cache"
	"github.com/creatorlens/backend/domains/media"
	"github.com/creatorlens/backend/infrastructure/cachestore"
	"github.com/creatorlens/backend/pkg/apperror"
)

type fakeGenerationProvider struct {
	calls int32
	img   []byte
	err   error
}

func (f *fakeGenerationProvider) Name() string { return "fake-diffusion" }

func (f *fakeGenerationProvider) Generate(context.Context, string) ([]byte, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.err != nil {
		return nil, f.err
	}
	return f.img, nil
}

type fakeThumbnailRepo struct {
	created []media.UserThumbnail
}

func (r *fakeThumbnailRepo) Create(_ context.Context, t *media.UserThumbnail) error {
	r.created = append(r.created, *t)
	return nil
}

func (r *fakeThumbnailRepo) ListByUser(_ context.Context, userID string) ([]media.UserThumbnail, error) {
	var out []media.UserThumbnail
	for _, t := range r.created {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeThumbnailRepo) FindByID(_ context.Context, userID, id string) (*media.UserThumbnail, error) {
	for i := range r.created {
		if r.created[i].UserID == userID && r.created[i].ID == id {
			return &r.created[i], nil
		}
	}
	return nil, apperror.NotFoundError("thumbnail not found")
}

func (r *fakeThumbnailRepo) Update(_ context.Context, t *media.UserThumbnail) error {
	for i := range r.created {
		if r.created[i].ID == t.ID {
			r.created[i] = *t
			return nil
		}
	}
	return apperror.NotFoundError("thumbnail not found")
}

func (r *fakeThumbnailRepo) Delete(_ context.Context, userID, id string) error {
	for i := range r.created {
		if r.created[i].UserID == userID && r.created[i].ID == id {
			r.created = append(r.created[:i], r.created[i+1:]...)
			return nil
		}
	}
	return apperror.NotFoundError("thumbnail not found")
}

func newTestThumbnailService(provider media.GenerationProvider, repo media.ThumbnailRepository) *thumbnailService {
	svc := NewThumbnailService(
		cachestore.NewMemoryStore(), provider, repo, nil,
		time.Hour, 1024, 576,
	).(*thumbnailService)
	svc.variationDelay = time.Millisecond
	return svc
}

func TestEnhancePrompt(t *testing.T) {
	cases := []struct {
		name        string
		prompt      string
		passThrough bool
	}{
		{"plain prompt gets template", "cat playing piano", false},
		{"already a thumbnail brief", "youtube thumbnail of a cat", true},
		{"quality hint present", "cat, high quality render", true},
		{"long prompt left alone", "a cinematic wide shot of a mountain biker catching air over a forest trail at golden hour with dust trailing behind", true},
		{"101 characters even when multibyte", strings.Repeat("ñ", 101), true},
		{"length measured in characters not bytes", strings.Repeat("ñ", 60), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := EnhancePrompt(tc.prompt)
			if tc.passThrough {
				assert.Equal(t, tc.prompt, out)
			} else {
				assert.NotEqual(t, tc.prompt, out)
				assert.Contains(t, out, tc.prompt)
			}
			// same input, same output, every time
			assert.Equal(t, out, EnhancePrompt(tc.prompt))
		})
	}
}

func TestIsPromptSafe(t *testing.T) {
	assert.True(t, IsPromptSafe("cute dog wearing sunglasses"))
	assert.False(t, IsPromptSafe("NSFW content please"))
	assert.False(t, IsPromptSafe("extreme gore scene"))
}

func TestThumbnailService_GenerateValidation(t *testing.T) {
	svc := newTestThumbnailService(&fakeGenerationProvider{img: []byte("png")}, nil)

	_, err := svc.Generate(context.Background(), media.GenerateRequest{Prompt: "   "})
	require.Error(t, err)
	var v apperror.ValidationError
	assert.ErrorAs(t, err, &v)

	_, err = svc.Generate(context.Background(), media.GenerateRequest{Prompt: "naked mole rat"})
	assert.ErrorAs(t, err, &v)
}

func TestThumbnailService_CacheHitSkipsProvider(t *testing.T) {
	provider := &fakeGenerationProvider{img: []byte("fake image bytes")}
	repo := &fakeThumbnailRepo{}
	svc := newTestThumbnailService(provider, repo)
	ctx := context.Background()
	req := media.GenerateRequest{UserID: "u1", Prompt: "cat playing piano"}

	first, err := svc.Generate(ctx, req)
	require.NoError(t, err)
	assert.False(t, first.FromCache)
	assert.Equal(t, base64.StdEncoding.EncodeToString(provider.img), first.Base64)
	assert.Equal(t, "fake-diffusion", first.Model)
	assert.Equal(t, "1024x576", first.Dimensions, "undecodable bytes fall back to requested geometry")

	second, err := svc.Generate(ctx, req)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.Base64, second.Base64)
	assert.EqualValues(t, 1, atomic.LoadInt32(&provider.calls), "cache hit must not call the provider")

	// both generations land in history, with the flag telling them apart
	require.Len(t, repo.created, 2)
	assert.False(t, repo.created[0].FromCache)
	assert.True(t, repo.created[1].FromCache)
}

func TestThumbnailService_EquivalentPromptsShareKey(t *testing.T) {
	provider := &fakeGenerationProvider{img: []byte("img")}
	svc := newTestThumbnailService(provider, nil)
	ctx := context.Background()

	_, err := svc.Generate(ctx, media.GenerateRequest{Prompt: "Cat  Playing Piano"})
	require.NoError(t, err)
	_, err = svc.Generate(ctx, media.GenerateRequest{Prompt: "cat playing piano"})
	require.NoError(t, err)

	assert.EqualValues(t, 1, atomic.LoadInt32(&provider.calls))
}

func TestThumbnailService_ClearPromptCacheForcesRegeneration(t *testing.T) {
	provider := &fakeGenerationProvider{img: []byte("img")}
	svc := newTestThumbnailService(provider, nil)
	ctx := context.Background()
	req := media.GenerateRequest{Prompt: "cat playing piano"}

	_, err := svc.Generate(ctx, req)
	require.NoError(t, err)

	svc.ClearPromptCache(ctx, req.Prompt)

	result, err := svc.Generate(ctx, req)
	require.NoError(t, err)
	assert.False(t, result.FromCache)
	assert.EqualValues(t, 2, atomic.LoadInt32(&provider.calls))
}

func TestThumbnailService_ProviderErrorNotCached(t *testing.T) {
	provider := &fakeGenerationProvider{err: apperror.UpstreamError("model warming up")}
	svc := newTestThumbnailService(provider, nil)
	ctx := context.Background()

	_, err := svc.Generate(ctx, media.GenerateRequest{Prompt: "cat playing piano"})
	require.Error(t, err)
	assert.Zero(t, svc.store.Count(ctx, domainCache.NamespaceThumbnail))
}

func TestThumbnailService_GenerateMultipleDistinctVariations(t *testing.T) {
	provider := &fakeGenerationProvider{img: []byte("img")}
	svc := newTestThumbnailService(provider, nil)

	results, err := svc.GenerateMultiple(context.Background(), media.GenerateRequest{Prompt: "cat playing piano"}, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	seen := map[string]bool{}
	for _, r := range results {
		seen[r.Prompt] = true
	}
	assert.Len(t, seen, 3, "each variation carries its own prompt and cache slot")
	assert.EqualValues(t, 3, atomic.LoadInt32(&provider.calls))
}

func TestThumbnailService_GenerateMultipleCapsCount(t *testing.T) {
	provider := &fakeGenerationProvider{img: []byte("img")}
	repo := &fakeThumbnailRepo{}
	svc := newTestThumbnailService(provider, repo)

	req := media.GenerateRequest{UserID: "u1", Prompt: "cat playing piano"}
	results, err := svc.GenerateMultiple(context.Background(), req, 50)
	require.NoError(t, err)

	assert.Len(t, results, 5, "requested count is bounded")
	assert.Len(t, repo.created, 5, "one history row per returned result, no more")
	assert.LessOrEqual(t, atomic.LoadInt32(&provider.calls), int32(5))
}

func TestThumbnailService_TogglePublic(t *testing.T) {
	repo := &fakeThumbnailRepo{created: []media.UserThumbnail{
		{ID: "t1", UserID: "u1", Prompt: "p"},
	}}
	svc := newTestThumbnailService(&fakeGenerationProvider{img: []byte("img")}, repo)
	ctx := context.Background()

	updated, err := svc.TogglePublic(ctx, "u1", "t1")
	require.NoError(t, err)
	assert.True(t, updated.IsPublic)

	updated, err = svc.TogglePublic(ctx, "u1", "t1")
	require.NoError(t, err)
	assert.False(t, updated.IsPublic)

	_, err = svc.TogglePublic(ctx, "u2", "t1")
	var nf apperror.NotFoundError
	assert.ErrorAs(t, err, &nf)
}
