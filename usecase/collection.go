package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	domainCache "github.com/creatorlens/backend/domains/cache"
	domainCollection "github.com/creatorlens/backend/domains/collection"
	"github.com/creatorlens/backend/pkg/apperror"
)

// collectionService fronts the Document Store with a read-through cache.
// Every write invalidates the user's cached listings before returning, so
// the writer always reads its own writes.
type collectionService struct {
	repo        domainCollection.Repository
	store       domainCache.Store
	invalidator domainCache.Invalidator
	ttl         time.Duration
}

func NewCollectionService(
	repo domainCollection.Repository,
	store domainCache.Store,
	invalidator domainCache.Invalidator,
	ttl time.Duration,
) domainCollection.ICollectionUsecase {
	if ttl == 0 {
		ttl = domainCache.CollectionsTTL
	}
	return &collectionService{repo: repo, store: store, invalidator: invalidator, ttl: ttl}
}

func listKey(userID, itemType string) string {
	if itemType == "" {
		return userID
	}
	return userID + "_" + domainCache.NormalizeKey(itemType)
}

func (s *collectionService) List(ctx context.Context, userID, itemType string) ([]domainCollection.Collection, error) {
	key := listKey(userID, itemType)

	if payload, ok := s.store.Get(ctx, domainCache.NamespaceCollections, key); ok {
		var items []domainCollection.Collection
		if err := json.Unmarshal(payload, &items); err == nil {
			logrus.Debugf("[COLLECTION] cache hit for user %s", userID)
			return items, nil
		}
		s.store.Delete(ctx, domainCache.NamespaceCollections, key)
	}

	items, err := s.repo.ListByUser(ctx, userID, itemType)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(items); err == nil {
		s.store.Set(ctx, domainCache.NamespaceCollections, key, payload, s.ttl)
	}
	return items, nil
}

func (s *collectionService) Save(ctx context.Context, userID string, req domainCollection.CreateRequest) (*domainCollection.Collection, error) {
	if req.Title == "" || req.ImageUrl == "" {
		return nil, apperror.ValidationError("title and image URL are required")
	}

	source := req.Source
	if source == "" {
		source = "serp"
	}
	itemType := req.Type
	if itemType == "" {
		itemType = "image"
	}

	item := &domainCollection.Collection{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		ImageUrl:    req.ImageUrl,
		Source:      source,
		Type:        itemType,
		Tags:        req.Tags,
		Metadata:    req.Metadata,
		IsLiked:     false,
		IsSaved:     true,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	// Evict before returning: the next read must hit the Document Store.
	s.invalidator.Invalidate(ctx, domainCache.NamespaceCollections, userID)
	return item, nil
}

func (s *collectionService) GetByID(ctx context.Context, userID, id string) (*domainCollection.Collection, error) {
	item, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, apperror.NotFoundError("collection item not found")
	}
	return item, nil
}

func (s *collectionService) ToggleLike(ctx context.Context, userID, id string) (*domainCollection.Collection, error) {
	item, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, apperror.NotFoundError("collection item not found")
	}

	item.IsLiked = !item.IsLiked
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.invalidator.Invalidate(ctx, domainCache.NamespaceCollections, userID)
	return item, nil
}

func (s *collectionService) Update(ctx context.Context, userID, id string, req domainCollection.UpdateRequest) (*domainCollection.Collection, error) {
	item, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, apperror.NotFoundError("collection item not found")
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Tags != nil {
		item.Tags = *req.Tags
	}
	if req.IsPublic != nil {
		item.IsPublic = *req.IsPublic
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.invalidator.Invalidate(ctx, domainCache.NamespaceCollections, userID)
	return item, nil
}

func (s *collectionService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return apperror.NotFoundError("collection item not found")
	}

	s.invalidator.Invalidate(ctx, domainCache.NamespaceCollections, userID)
	return nil
}
