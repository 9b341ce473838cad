package repository

import (
	"context"

	"solarscope/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ExoplanetRepository interface {
	BulkUpsert(ctx context.Context, items []models.Exoplanet) (int, error)
	GetPaginated(ctx context.Context, page, limit int) ([]models.Exoplanet, error)
	Search(ctx context.Context, query string, limit int) ([]models.Exoplanet, error)
	Count(ctx context.Context) (int64, error)
}

type exoplanetRepository struct {
	db *gorm.DB
}

func NewExoplanetRepository(db *gorm.DB) ExoplanetRepository {
	return &exoplanetRepository{db: db}
}

// BulkUpsert: конфликт по name пропускается, каталог только растет.
func (r *exoplanetRepository) BulkUpsert(ctx context.Context, items []models.Exoplanet) (int, error) {
	items = dedupLastWins(items, func(p models.Exoplanet) string { return p.Name })
	if len(items) == 0 {
		return 0, nil
	}

	var written int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
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

func (r *exoplanetRepository) GetPaginated(ctx context.Context, page, limit int) ([]models.Exoplanet, error) {
	var items []models.Exoplanet
	err := r.db.WithContext(ctx).
		Order("name").
		Offset(pageOffset(page, &limit)).
		Limit(limit).
		Find(&items).
		Error
	return items, err
}

func (r *exoplanetRepository) Search(ctx context.Context, query string, limit int) ([]models.Exoplanet, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	var items []models.Exoplanet
	err := r.db.WithContext(ctx).
		Where("name ILIKE ?", "%"+query+"%").
		Order("name").
		Limit(limit).
		Find(&items).
		Error
	return items, err
}

func (r *exoplanetRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Exoplanet{}).Count(&count).Error
	return count, err
}
