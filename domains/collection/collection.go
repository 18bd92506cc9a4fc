package collection

import (
	"context"
	"time"
)

// Collection is one saved item in a user's personal collection.
type Collection struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"index" json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ImageUrl    string    `json:"imageUrl"`
	Base64Image string    `json:"base64Image,omitempty"`
	Source      string    `json:"source"`
	Type        string    `json:"type"`
	Tags        string    `json:"tags,omitempty"` // comma separated
	Metadata    string    `json:"metadata,omitempty"`
	IsLiked     bool      `json:"isLiked"`
	IsSaved     bool      `json:"isSaved"`
	IsPublic    bool      `json:"isPublic"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageUrl    string `json:"imageUrl"`
	Source      string `json:"source"`
	Type        string `json:"type"`
	Tags        string `json:"tags"`
	Metadata    string `json:"metadata"`
}

type UpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Tags        *string `json:"tags"`
	IsPublic    *bool   `json:"isPublic"`
}

// Repository is the Document Store contract for collections.
type Repository interface {
	Create(ctx context.Context, c *Collection) error
	ListByUser(ctx context.Context, userID, itemType string) ([]Collection, error)
	FindByID(ctx context.Context, userID, id string) (*Collection, error)
	Update(ctx context.Context, c *Collection) error
	Delete(ctx context.Context, userID, id string) error
}

type ICollectionUsecase interface {
	List(ctx context.Context, userID, itemType string) ([]Collection, error)
	Save(ctx context.Context, userID string, req CreateRequest) (*Collection, error)
	GetByID(ctx context.Context, userID, id string) (*Collection, error)
	ToggleLike(ctx context.Context, userID, id string) (*Collection, error)
	Update(ctx context.Context, userID, id string, req UpdateRequest) (*Collection, error)
	Delete(ctx context.Context, userID, id string) error
}
