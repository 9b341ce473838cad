package repository

import (
	"context"

	"solarscope/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NaturalEventRepository interface {
	BulkUpsert(ctx context.Context, items []models.NaturalEvent) (int, error)
	GetPaginated(ctx context.Context, page, limit int) ([]models.NaturalEvent, error)
	GetByCategory(ctx context.Context, category string, limit int) ([]models.NaturalEvent, error)
	Count(ctx context.Context) (int64, error)
}

type naturalEventRepository struct {
	db *gorm.DB
}

func NewNaturalEventRepository(db *gorm.DB) NaturalEventRepository {
	return &naturalEventRepository{db: db}
}

// BulkUpsert: конфликт по event_id пропускается — событие EONET после
// первой записи не перезаписывается.
func (r *naturalEventRepository) BulkUpsert(ctx context.Context, items []models.NaturalEvent) (int, error) {
	items = dedupLastWins(items, func(e models.NaturalEvent) string { return e.EventID })
	if len(items) == 0 {
		return 0, nil
	}

	var written int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}},
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

func (r *naturalEventRepository) GetPaginated(ctx context.Context, page, limit int) ([]models.NaturalEvent, error) {
	var items []models.NaturalEvent
	err := r.db.WithContext(ctx).
		Order("date DESC NULLS LAST, created_at DESC").
		Offset(pageOffset(page, &limit)).
		Limit(limit).
		Find(&items).
		Error
	return items, err
}

func (r *naturalEventRepository) GetByCategory(ctx context.Context, category string, limit int) ([]models.NaturalEvent, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}
	var items []models.NaturalEvent
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("date DESC NULLS LAST").
		Limit(limit).
		Find(&items).
		Error
	return items, err
}

func (r *naturalEventRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.NaturalEvent{}).Count(&count).Error
	return count, err
}
