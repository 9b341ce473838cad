package repository

import (
	"context"

	"solarscope/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type asteroidKey struct {
	name string
	date string
}

type AsteroidRepository interface {
	BulkUpsert(ctx context.Context, items []models.Asteroid) (int, error)
	GetPaginated(ctx context.Context, page, limit int) ([]models.Asteroid, error)
	ListRecent(ctx context.Context, limit int) ([]models.Asteroid, error)
	CountHazardous(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type asteroidRepository struct {
	db *gorm.DB
}

func NewAsteroidRepository(db *gorm.DB) AsteroidRepository {
	return &asteroidRepository{db: db}
}

// BulkUpsert: конфликт по (name, approach_date) молча пропускается —
// однажды записанное сближение не меняется.
func (r *asteroidRepository) BulkUpsert(ctx context.Context, items []models.Asteroid) (int, error) {
	items = dedupLastWins(items, func(a models.Asteroid) asteroidKey {
		return asteroidKey{name: a.Name, date: a.ApproachDate}
	})
	if len(items) == 0 {
		return 0, nil
	}

	var written int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}, {Name: "approach_date"}},
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

func (r *asteroidRepository) GetPaginated(ctx context.Context, page, limit int) ([]models.Asteroid, error) {
	var items []models.Asteroid
	err := r.db.WithContext(ctx).
		Order("approach_date DESC, name").
		Offset(pageOffset(page, &limit)).
		Limit(limit).
		Find(&items).
		Error
	return items, err
}

func (r *asteroidRepository) ListRecent(ctx context.Context, limit int) ([]models.Asteroid, error) {
	if limit < 1 || limit > 1000 {
		limit = 200
	}
	var items []models.Asteroid
	err := r.db.WithContext(ctx).
		Order("approach_date DESC, name").
		Limit(limit).
		Find(&items).
		Error
	return items, err
}

func (r *asteroidRepository) CountHazardous(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Asteroid{}).
		Where("is_potentially_hazardous = ?", true).
		Count(&count).
		Error
	return count, err
}

func (r *asteroidRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Asteroid{}).Count(&count).Error
	return count, err
}
