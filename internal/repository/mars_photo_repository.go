package repository

import (
	"context"

	"solarscope/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MarsPhotoRepository interface {
	BulkUpsert(ctx context.Context, items []models.MarsPhoto) (int, error)
	GetPaginated(ctx context.Context, page, limit int) ([]models.MarsPhoto, error)
	GetByRover(ctx context.Context, rover string, limit int) ([]models.MarsPhoto, error)
	Count(ctx context.Context) (int64, error)
}

type marsPhotoRepository struct {
	db *gorm.DB
}

func NewMarsPhotoRepository(db *gorm.DB) MarsPhotoRepository {
	return &marsPhotoRepository{db: db}
}

// BulkUpsert: конфликт по photo_id пропускается — снимок неизменяем.
func (r *marsPhotoRepository) BulkUpsert(ctx context.Context, items []models.MarsPhoto) (int, error) {
	items = dedupLastWins(items, func(p models.MarsPhoto) int64 { return p.PhotoID })
	if len(items) == 0 {
		return 0, nil
	}

	var written int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "photo_id"}},
			DoNothing: true,
		}).CreateInBatches(&items, 500)
		written = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, err
	}
	return int(written), nil
}

func (r *marsPhotoRepository) GetPaginated(ctx context.Context, page, limit int) ([]models.MarsPhoto, error) {
	var items []models.MarsPhoto
	err := r.db.WithContext(ctx).
		Order("earth_date DESC, photo_id DESC").
		Offset(pageOffset(page, &limit)).
		Limit(limit).
		Find(&items).
		Error
	return items, err
}

func (r *marsPhotoRepository) GetByRover(ctx context.Context, rover string, limit int) ([]models.MarsPhoto, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}
	var items []models.MarsPhoto
	err := r.db.WithContext(ctx).
		Where("rover_name = ?", rover).
		Order("earth_date DESC, photo_id DESC").
		Limit(limit).
		Find(&items).
		Error
	return items, err
}

func (r *marsPhotoRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.MarsPhoto{}).Count(&count).Error
	return count, err
}
