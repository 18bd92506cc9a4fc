package media

import (
	"context"
	"time"

	"github.com/creatorlens/backend/pkg/apperror"
)

// ErrNoResults is the "empty result" outcome: valid, never cached, and
// mapped to 404 by the REST layer.
var ErrNoResults = apperror.NotFoundError("no results found")

type Kind string

const (
	KindVideo Kind = "video"
	KindImage Kind = "image"
)

// Record is the canonical, provider-agnostic search result. Field names on
// the wire match what the frontend has always consumed.
type Record struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	ChannelName   string `json:"channelName,omitempty"`
	Source        string `json:"source,omitempty"`
	ImageUrl      string `json:"imageUrl"`
	ThumbnailUrl  string `json:"thumbnailUrl,omitempty"`
	Views         string `json:"views,omitempty"`
	PublishedDate string `json:"publishedDate,omitempty"`
	Duration      string `json:"duration,omitempty"`
	Link          string `json:"link"`
	SourceUrl     string `json:"sourceUrl,omitempty"`
	Description   string `json:"description,omitempty"`
	Type          Kind   `json:"type"`
}

// Suggestion is a content-idea search hit for the chat assistant.
type Suggestion struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
	Source  string `json:"source"`
}

// GenerationResult is the portable outcome of one image generation.
// FromCache is observational and never stored inside the cached payload.
type GenerationResult struct {
	Base64         string    `json:"base64"`
	Prompt         string    `json:"prompt"`
	OriginalPrompt string    `json:"originalPrompt"`
	Size           string    `json:"size"`
	Model          string    `json:"model"`
	Dimensions     string    `json:"dimensions"`
	GeneratedAt    time.Time `json:"generatedAt"`
	FromCache      bool      `json:"fromCache"`
}

// SearchProvider returns raw upstream payloads; normalization happens in
// the aggregation service.
type SearchProvider interface {
	TrendingVideos(ctx context.Context, query string) ([]byte, error)
	SearchVideos(ctx context.Context, query string) ([]byte, error)
	TrendingImages(ctx context.Context, query string) ([]byte, error)
	SearchImages(ctx context.Context, query string) ([]byte, error)
	Suggestions(ctx context.Context, query string) ([]byte, error)
}

// GenerationProvider turns an (already enhanced) prompt into image bytes.
type GenerationProvider interface {
	Name() string
	Generate(ctx context.Context, prompt string) ([]byte, error)
}

type ISearchUsecase interface {
	GetTrendingVideos(ctx context.Context, query string) ([]Record, error)
	SearchVideos(ctx context.Context, query string) ([]Record, error)
	GetTrendingImages(ctx context.Context, query string) ([]Record, error)
	SearchImages(ctx context.Context, query string) ([]Record, error)
	ChatSuggestions(ctx context.Context, query string) ([]Suggestion, error)
}

type GenerateRequest struct {
	UserID           string
	UserEmail        string
	Prompt           string
	SaveToCollection bool
	MakePublic       bool
}

type IThumbnailUsecase interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerationResult, error)
	GenerateMultiple(ctx context.Context, req GenerateRequest, count int) ([]GenerationResult, error)
	ListForUser(ctx context.Context, userID string) ([]UserThumbnail, error)
	GetByID(ctx context.Context, userID, id string) (*UserThumbnail, error)
	Delete(ctx context.Context, userID, id string) error
	TogglePublic(ctx context.Context, userID, id string) (*UserThumbnail, error)
	ClearPromptCache(ctx context.Context, prompt string)
}

// UserThumbnail is the per-user history of generated images.
type UserThumbnail struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	UserID         string    `gorm:"index" json:"userId"`
	UserEmail      string    `json:"userEmail"`
	Prompt         string    `json:"prompt"`
	OriginalPrompt string    `json:"originalPrompt"`
	Base64Image    string    `json:"base64Image"`
	ImageSize      string    `json:"imageSize"`
	Model          string    `json:"model"`
	Dimensions     string    `json:"dimensions"`
	FromCache      bool      `json:"fromCache"`
	IsPublic       bool      `json:"isPublic"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ThumbnailRepository is the narrow Document Store slice the thumbnail
// usecase needs.
type ThumbnailRepository interface {
	Create(ctx context.Context, t *UserThumbnail) error
	ListByUser(ctx context.Context, userID string) ([]UserThumbnail, error)
	FindByID(ctx context.Context, userID, id string) (*UserThumbnail, error)
	Update(ctx context.Context, t *UserThumbnail) error
	Delete(ctx context.Context, userID, id string) error
}
