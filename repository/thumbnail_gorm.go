package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/creatorlens/backend/domains/media"
)

type ThumbnailGormRepository struct {
	db *gorm.DB
}

func NewThumbnailGormRepository(db *gorm.DB) *ThumbnailGormRepository {
	return &ThumbnailGormRepository{db: db}
}

func (r *ThumbnailGormRepository) Create(ctx context.Context, t *media.UserThumbnail) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *ThumbnailGormRepository) ListByUser(ctx context.Context, userID string) ([]media.UserThumbnail, error) {
	items := []media.UserThumbnail{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ThumbnailGormRepository) FindByID(ctx context.Context, userID, id string) (*media.UserThumbnail, error) {
	var t media.UserThumbnail
	err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ThumbnailGormRepository) Update(ctx context.Context, t *media.UserThumbnail) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *ThumbnailGormRepository) Delete(ctx context.Context, userID, id string) error {
	result := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).Delete(&media.UserThumbnail{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

var _ media.ThumbnailRepository = (*ThumbnailGormRepository)(nil)
