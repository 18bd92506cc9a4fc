package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainCollection "github.com/creatorlens/backend/domains/collection"
	"github.com/creatorlens/backend/infrastructure/cachestore"
	"github.com/creatorlens/backend/pkg/apperror"
)

type fakeCollectionRepo struct {
	items     []domainCollection.Collection
	listCalls int
}

func (r *fakeCollectionRepo) Create(_ context.Context, c *domainCollection.Collection) error {
	r.items = append(r.items, *c)
	return nil
}

func (r *fakeCollectionRepo) ListByUser(_ context.Context, userID, itemType string) ([]domainCollection.Collection, error) {
	r.listCalls++
	out := []domainCollection.Collection{}
	for _, c := range r.items {
		if c.UserID == userID && (itemType == "" || c.Type == itemType) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCollectionRepo) FindByID(_ context.Context, userID, id string) (*domainCollection.Collection, error) {
	for i := range r.items {
		if r.items[i].UserID == userID && r.items[i].ID == id {
			return &r.items[i], nil
		}
	}
	return nil, apperror.NotFoundError("collection item not found")
}

func (r *fakeCollectionRepo) Update(_ context.Context, c *domainCollection.Collection) error {
	for i := range r.items {
		if r.items[i].ID == c.ID {
			r.items[i] = *c
			return nil
		}
	}
	return apperror.NotFoundError("collection item not found")
}

func (r *fakeCollectionRepo) Delete(_ context.Context, userID, id string) error {
	for i := range r.items {
		if r.items[i].UserID == userID && r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return apperror.NotFoundError("collection item not found")
}

func newTestCollectionService(repo *fakeCollectionRepo) domainCollection.ICollectionUsecase {
	store := cachestore.NewMemoryStore()
	return NewCollectionService(repo, store, NewInvalidationCoordinator(store), time.Minute)
}

func TestCollectionService_SaveValidation(t *testing.T) {
	svc := newTestCollectionService(&fakeCollectionRepo{})

	_, err := svc.Save(context.Background(), "u1", domainCollection.CreateRequest{Title: "no image"})
	var v apperror.ValidationError
	assert.ErrorAs(t, err, &v)

	_, err = svc.Save(context.Background(), "u1", domainCollection.CreateRequest{ImageUrl: "https://img"})
	assert.ErrorAs(t, err, &v)
}

func TestCollectionService_SaveDefaults(t *testing.T) {
	repo := &fakeCollectionRepo{}
	svc := newTestCollectionService(repo)

	item, err := svc.Save(context.Background(), "u1", domainCollection.CreateRequest{
		Title:    "Sunset",
		ImageUrl: "https://img/sunset.jpg",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "serp", item.Source)
	assert.Equal(t, "image", item.Type)
	assert.True(t, item.IsSaved)
	assert.False(t, item.IsLiked)
	require.Len(t, repo.items, 1)
}

func TestCollectionService_ListReadsThroughCache(t *testing.T) {
	repo := &fakeCollectionRepo{items: []domainCollection.Collection{
		{ID: "c1", UserID: "u1", Title: "A", Type: "image"},
	}}
	svc := newTestCollectionService(repo)
	ctx := context.Background()

	first, err := svc.List(ctx, "u1", "")
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.List(ctx, "u1", "")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.listCalls, "warm cache must not touch the store")
}

func TestCollectionService_WriteInvalidatesListings(t *testing.T) {
	repo := &fakeCollectionRepo{}
	svc := newTestCollectionService(repo)
	ctx := context.Background()

	// warm both the untyped and the typed listing
	_, err := svc.List(ctx, "u1", "")
	require.NoError(t, err)
	_, err = svc.List(ctx, "u1", "image")
	require.NoError(t, err)
	require.Equal(t, 2, repo.listCalls)

	saved, err := svc.Save(ctx, "u1", domainCollection.CreateRequest{
		Title:    "Fresh",
		ImageUrl: "https://img/fresh.jpg",
	})
	require.NoError(t, err)

	// the very next read must see the write
	items, err := svc.List(ctx, "u1", "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, saved.ID, items[0].ID)

	typed, err := svc.List(ctx, "u1", "image")
	require.NoError(t, err)
	assert.Len(t, typed, 1, "typed listing evicted alongside the untyped one")
	assert.Equal(t, 4, repo.listCalls)
}

func TestCollectionService_InvalidationScopedToExactUser(t *testing.T) {
	repo := &fakeCollectionRepo{items: []domainCollection.Collection{
		{ID: "c1", UserID: "u12", Title: "other user's item", Type: "image"},
	}}
	svc := newTestCollectionService(repo)
	ctx := context.Background()

	// warm listings for both u1 and u12, whose ID shares u1 as a prefix
	_, err := svc.List(ctx, "u1", "")
	require.NoError(t, err)
	_, err = svc.List(ctx, "u12", "")
	require.NoError(t, err)
	require.Equal(t, 2, repo.listCalls)

	_, err = svc.Save(ctx, "u1", domainCollection.CreateRequest{
		Title:    "Mine",
		ImageUrl: "https://img/mine.jpg",
	})
	require.NoError(t, err)

	// u12's cached listing must survive a write by u1
	_, err = svc.List(ctx, "u12", "")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls, "another user's listing stays cached")

	// while u1's own listings, untyped and typed, are evicted
	items, err := svc.List(ctx, "u1", "")
	require.NoError(t, err)
	assert.Len(t, items, 1)
	typed, err := svc.List(ctx, "u1", "image")
	require.NoError(t, err)
	assert.Len(t, typed, 1)
}

func TestCollectionService_ToggleLike(t *testing.T) {
	repo := &fakeCollectionRepo{items: []domainCollection.Collection{
		{ID: "c1", UserID: "u1", Title: "A"},
	}}
	svc := newTestCollectionService(repo)
	ctx := context.Background()

	item, err := svc.ToggleLike(ctx, "u1", "c1")
	require.NoError(t, err)
	assert.True(t, item.IsLiked)

	item, err = svc.ToggleLike(ctx, "u1", "c1")
	require.NoError(t, err)
	assert.False(t, item.IsLiked)

	_, err = svc.ToggleLike(ctx, "u1", "missing")
	var nf apperror.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestCollectionService_UpdatePartialFields(t *testing.T) {
	repo := &fakeCollectionRepo{items: []domainCollection.Collection{
		{ID: "c1", UserID: "u1", Title: "Old", Description: "keep me"},
	}}
	svc := newTestCollectionService(repo)

	title := "New"
	isPublic := true
	item, err := svc.Update(context.Background(), "u1", "c1", domainCollection.UpdateRequest{
		Title:    &title,
		IsPublic: &isPublic,
	})
	require.NoError(t, err)

	assert.Equal(t, "New", item.Title)
	assert.Equal(t, "keep me", item.Description, "unset fields stay untouched")
	assert.True(t, item.IsPublic)
}

func TestCollectionService_DeleteNotFound(t *testing.T) {
	svc := newTestCollectionService(&fakeCollectionRepo{})

	err := svc.Delete(context.Background(), "u1", "missing")
	var nf apperror.NotFoundError
	assert.ErrorAs(t, err, &nf)
}
