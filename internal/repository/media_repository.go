package repository

import (
	"context"
	"errors"

	"solarscope/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MediaRepository interface {
	BulkUpsert(ctx context.Context, items []models.Media) (int, error)
	GetPaginated(ctx context.Context, page, limit int) ([]models.Media, error)
	GetByDate(ctx context.Context, date string) (*models.Media, error)
	Latest(ctx context.Context) (*models.Media, error)
	Count(ctx context.Context) (int64, error)
}

type mediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db}
}

// BulkUpsert пишет батч APOD одной транзакцией. Конфликт по date не
// создает дубликат, а обновляет title/description/url — апстрим правит
// подписи уже опубликованных снимков.
func (r *mediaRepository) BulkUpsert(ctx context.Context, items []models.Media) (int, error) {
	items = dedupLastWins(items, func(m models.Media) string { return m.Date })
	if len(items) == 0 {
		return 0, nil
	}

	var written int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "description", "url"}),
		}).CreateInBatches(&items, 500)
		written = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, err
	}
	return int(written), nil
}

func (r *mediaRepository) GetPaginated(ctx context.Context, page, limit int) ([]models.Media, error) {
	var items []models.Media
	err := r.db.WithContext(ctx).
		Order("date DESC").
		Offset(pageOffset(page, &limit)).
		Limit(limit).
		Find(&items).
		Error
	return items, err
}

func (r *mediaRepository) GetByDate(ctx context.Context, date string) (*models.Media, error) {
	var item models.Media
	err := r.db.WithContext(ctx).First(&item, "date = ?", date).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *mediaRepository) Latest(ctx context.Context) (*models.Media, error) {
	var item models.Media
	err := r.db.WithContext(ctx).Order("date DESC").First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *mediaRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Media{}).Count(&count).Error
	return count, err
}

// pageOffset нормализует пагинацию как в остальных репозиториях.
func pageOffset(page int, limit *int) int {
	if page < 1 {
		page = 1
	}
	if *limit < 1 || *limit > 100 {
		*limit = 20
	}
	return (page - 1) * *limit
}
