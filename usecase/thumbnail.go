package usecase

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	domainCache "github.com/creatorlens/backend/domains/cache"
	domainCollection "github.com/creatorlens/backend/domains/collection"
	"github.com/creatorlens/backend/domains/media"
	"github.com/creatorlens/backend/pkg/apperror"
)

const enhancementTemplate = "Professional YouTube thumbnail for: %s. High quality, vibrant colors, eye-catching design, bold text overlay, 16:9 aspect ratio, photorealistic, trending style, engaging composition"

// maxVariations bounds one generate-multiple request; each variation is a
// provider call plus a history row.
const maxVariations = 5

var promptVariations = []string{
	"Style 1: Modern and clean design",
	"Style 2: Bold and dramatic with high contrast",
	"Style 3: Colorful and energetic composition",
}

var blockedKeywords = []string{
	"nude", "naked", "nsfw", "porn", "sex",
	"violence", "gore", "blood", "death",
	"hate", "racist", "terrorism",
}

// EnhancePrompt is a pure function of the raw prompt: the same input always
// yields the same enhanced prompt and therefore the same cache key.
// Prompts that already read like thumbnail briefs pass through unchanged.
func EnhancePrompt(prompt string) string {
	lower := strings.ToLower(prompt)
	if strings.Contains(lower, "youtube thumbnail") ||
		strings.Contains(lower, "high quality") ||
		utf8.RuneCountInString(prompt) > 100 {
		return prompt
	}
	return fmt.Sprintf(enhancementTemplate, prompt)
}

// IsPromptSafe applies the basic content keyword filter.
func IsPromptSafe(prompt string) bool {
	lower := strings.ToLower(prompt)
	for _, kw := range blockedKeywords {
		if strings.Contains(lower, kw) {
			return false
		}
	}
	return true
}

// cachedGeneration is the portable slice of a generation result that goes
// into the cache: no transport buffer, no FromCache flag.
type cachedGeneration struct {
	Base64         string    `json:"base64"`
	Prompt         string    `json:"prompt"`
	OriginalPrompt string    `json:"originalPrompt"`
	Size           string    `json:"size"`
	Model          string    `json:"model"`
	Dimensions     string    `json:"dimensions"`
	GeneratedAt    time.Time `json:"generatedAt"`
}

type thumbnailService struct {
	store       domainCache.Store
	provider    media.GenerationProvider
	repo        media.ThumbnailRepository
	collections domainCollection.ICollectionUsecase
	ttl         time.Duration
	fallbackDim string
	group       singleflight.Group

	// pacing between variation calls, shrunk in tests
	variationDelay time.Duration
}

func NewThumbnailService(
	store domainCache.Store,
	provider media.GenerationProvider,
	repo media.ThumbnailRepository,
	collections domainCollection.ICollectionUsecase,
	ttl time.Duration,
	width, height int,
) media.IThumbnailUsecase {
	if ttl == 0 {
		ttl = domainCache.ThumbnailTTL
	}
	return &thumbnailService{
		store:          store,
		provider:       provider,
		repo:           repo,
		collections:    collections,
		ttl:            ttl,
		fallbackDim:    fmt.Sprintf("%dx%d", width, height),
		variationDelay: time.Second,
	}
}

func (s *thumbnailService) cacheKey(enhanced string) string {
	return domainCache.NormalizeKey(enhanced)
}

// dimensions decodes the generated image to report what actually came
// back; falls back to the requested geometry when decoding fails.
func (s *thumbnailService) dimensions(img []byte) string {
	decoded, err := imaging.Decode(bytes.NewReader(img))
	if err != nil {
		return s.fallbackDim
	}
	b := decoded.Bounds()
	return fmt.Sprintf("%dx%d", b.Dx(), b.Dy())
}

func (s *thumbnailService) Generate(ctx context.Context, req media.GenerateRequest) (*media.GenerationResult, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, apperror.ValidationError("prompt is required")
	}
	if !IsPromptSafe(prompt) {
		return nil, apperror.ValidationError("prompt contains inappropriate content")
	}

	enhanced := EnhancePrompt(prompt)
	key := s.cacheKey(enhanced)

	if payload, ok := s.store.Get(ctx, domainCache.NamespaceThumbnail, key); ok {
		var cached cachedGeneration
		if err := json.Unmarshal(payload, &cached); err == nil {
			logrus.Infof("[HF] cache hit for prompt %q", prompt)
			result := resultFromCached(cached, true)
			s.recordHistory(ctx, req, result)
			return result, nil
		}
		s.store.Delete(ctx, domainCache.NamespaceThumbnail, key)
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		img, err := s.provider.Generate(ctx, enhanced)
		if err != nil {
			return nil, err
		}

		b64 := base64.StdEncoding.EncodeToString(img)
		cached := cachedGeneration{
			Base64:         b64,
			Prompt:         enhanced,
			OriginalPrompt: prompt,
			Size:           fmt.Sprintf("%d KB", len(b64)/1024),
			Model:          s.provider.Name(),
			Dimensions:     s.dimensions(img),
			GeneratedAt:    time.Now().UTC(),
		}

		if payload, err := json.Marshal(cached); err == nil {
			s.store.Set(ctx, domainCache.NamespaceThumbnail, key, payload, s.ttl)
		}
		return cached, nil
	})
	if err != nil {
		return nil, err
	}

	result := resultFromCached(v.(cachedGeneration), false)
	s.recordHistory(ctx, req, result)
	return result, nil
}

func resultFromCached(c cachedGeneration, fromCache bool) *media.GenerationResult {
	return &media.GenerationResult{
		Base64:         c.Base64,
		Prompt:         c.Prompt,
		OriginalPrompt: c.OriginalPrompt,
		Size:           c.Size,
		Model:          c.Model,
		Dimensions:     c.Dimensions,
		GeneratedAt:    c.GeneratedAt,
		FromCache:      fromCache,
	}
}

// recordHistory persists the generation to the user's history and, when
// asked, into their collection. Both are best-effort relative to the
// generation itself, which already succeeded.
func (s *thumbnailService) recordHistory(ctx context.Context, req media.GenerateRequest, result *media.GenerationResult) {
	if s.repo == nil || req.UserID == "" {
		return
	}

	t := &media.UserThumbnail{
		ID:             uuid.NewString(),
		UserID:         req.UserID,
		UserEmail:      req.UserEmail,
		Prompt:         result.Prompt,
		OriginalPrompt: result.OriginalPrompt,
		Base64Image:    result.Base64,
		ImageSize:      humanize.Bytes(uint64(len(result.Base64))),
		Model:          result.Model,
		Dimensions:     result.Dimensions,
		FromCache:      result.FromCache,
		IsPublic:       req.MakePublic,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		logrus.WithError(err).Error("[HF] failed to save thumbnail history")
	}

	if req.SaveToCollection && s.collections != nil {
		_, err := s.collections.Save(ctx, req.UserID, domainCollection.CreateRequest{
			Title:       "AI Generated: " + result.OriginalPrompt,
			Description: "Generated using " + result.Model + ": " + result.Prompt,
			ImageUrl:    "data:image/png;base64," + result.Base64,
			Source:      "ai-generated",
			Type:        "ai-thumbnail",
		})
		if err != nil {
			logrus.WithError(err).Error("[HF] failed to save thumbnail to collection")
		}
	}
}

func (s *thumbnailService) GenerateMultiple(ctx context.Context, req media.GenerateRequest, count int) ([]media.GenerationResult, error) {
	if count < 1 {
		count = 3
	}
	if count > maxVariations {
		count = maxVariations
	}

	results := make([]media.GenerationResult, 0, count)
	for i := 0; i < count; i++ {
		varReq := req
		varReq.Prompt = fmt.Sprintf("%s. %s", req.Prompt, promptVariations[i%len(promptVariations)])

		result, err := s.Generate(ctx, varReq)
		if err != nil {
			logrus.WithError(err).Warnf("[HF] variation %d failed", i+1)
			continue
		}
		results = append(results, *result)

		// pace requests to stay under the provider's rate limit
		if i < count-1 {
			select {
			case <-time.After(s.variationDelay):
			case <-ctx.Done():
				return results, ctx.Err()
			}
		}
	}
	return results, nil
}

func (s *thumbnailService) ListForUser(ctx context.Context, userID string) ([]media.UserThumbnail, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *thumbnailService) GetByID(ctx context.Context, userID, id string) (*media.UserThumbnail, error) {
	t, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, apperror.NotFoundError("thumbnail not found")
	}
	return t, nil
}

func (s *thumbnailService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return apperror.NotFoundError("thumbnail not found")
	}
	return nil
}

func (s *thumbnailService) TogglePublic(ctx context.Context, userID, id string) (*media.UserThumbnail, error) {
	t, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, apperror.NotFoundError("thumbnail not found")
	}
	t.IsPublic = !t.IsPublic
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *thumbnailService) ClearPromptCache(ctx context.Context, prompt string) {
	key := s.cacheKey(EnhancePrompt(strings.TrimSpace(prompt)))
	s.store.Delete(ctx, domainCache.NamespaceThumbnail, key)
	logrus.Infof("[HF] cleared cache for prompt %q", prompt)
}
