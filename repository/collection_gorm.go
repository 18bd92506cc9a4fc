package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domainCollection "github.com/creatorlens/backend/domains/collection"
)

type CollectionGormRepository struct {
	db *gorm.DB
}

func NewCollectionGormRepository(db *gorm.DB) *CollectionGormRepository {
	return &CollectionGormRepository{db: db}
}

func (r *CollectionGormRepository) Create(ctx context.Context, c *domainCollection.Collection) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CollectionGormRepository) ListByUser(ctx context.Context, userID, itemType string) ([]domainCollection.Collection, error) {
	items := []domainCollection.Collection{}
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if itemType != "" {
		q = q.Where("type = ?", itemType)
	}
	if err := q.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CollectionGormRepository) FindByID(ctx context.Context, userID, id string) (*domainCollection.Collection, error) {
	var c domainCollection.Collection
	err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CollectionGormRepository) Update(ctx context.Context, c *domainCollection.Collection) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CollectionGormRepository) Delete(ctx context.Context, userID, id string) error {
	result := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).Delete(&domainCollection.Collection{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IsNotFound reports whether err is the Document Store's missing-row error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

var _ domainCollection.Repository = (*CollectionGormRepository)(nil)
