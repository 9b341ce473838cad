package repository

import (
	"context"
	"time"

	"solarscope/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type solarEventKey struct {
	start  time.Time
	source string
}

type SolarEventRepository interface {
	BulkUpsert(ctx context.Context, items []models.SolarEvent) (int, error)
	GetPaginated(ctx context.Context, page, limit int) ([]models.SolarEvent, error)
	Count(ctx context.Context) (int64, error)
}

type solarEventRepository struct {
	db *gorm.DB
}

func NewSolarEventRepository(db *gorm.DB) SolarEventRepository {
	return &solarEventRepository{db: db}
}

// BulkUpsert: DONKI не дает стабильного id, уникальность держится на
// (start_time, source); конфликты пропускаются.
func (r *solarEventRepository) BulkUpsert(ctx context.Context, items []models.SolarEvent) (int, error) {
	items = dedupLastWins(items, func(e models.SolarEvent) solarEventKey {
		return solarEventKey{start: e.StartTime, source: e.Source}
	})
	if len(items) == 0 {
		return 0, nil
	}

	var written int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "start_time"}, {Name: "source"}},
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

func (r *solarEventRepository) GetPaginated(ctx context.Context, page, limit int) ([]models.SolarEvent, error) {
	var items []models.SolarEvent
	err := r.db.WithContext(ctx).
		Order("start_time DESC").
		Offset(pageOffset(page, &limit)).
		Limit(limit).
		Find(&items).
		Error
	return items, err
}

func (r *solarEventRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SolarEvent{}).Count(&count).Error
	return count, err
}
