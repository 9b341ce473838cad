package repository

import (
	"context"
	"fmt"
	"testing"

	"solarscope/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB поднимает in-memory SQLite со схемой всех шести таблиц.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Media{},
		&models.Asteroid{},
		&models.SolarEvent{},
		&models.NaturalEvent{},
		&models.Exoplanet{},
		&models.MarsPhoto{},
	))
	return db
}

func TestMediaBulkUpsertRefreshesOnConflict(t *testing.T) {
	db := newTestDB(t)
	repo := NewMediaRepository(db)
	ctx := context.Background()

	first := []models.Media{
		{Date: "2026-08-20", Title: "Eagle Nebula", Description: "v1", URL: "https://img/a.jpg"},
	}
	written, err := repo.BulkUpsert(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	// Повторная загрузка той же даты обновляет поля, не плодя строк
	second := []models.Media{
		{Date: "2026-08-20", Title: "Eagle Nebula", Description: "v2", URL: "https://img/b.jpg"},
	}
	_, err = repo.BulkUpsert(ctx, second)
	require.NoError(t, err)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	got, err := repo.GetByDate(ctx, "2026-08-20")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "v2", got.Description)
	assert.Equal(t, "https://img/b.jpg", got.URL)
}

func TestAsteroidBulkUpsertIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewAsteroidRepository(db)
	ctx := context.Background()

	batch := []models.Asteroid{
		{Name: "(2026 AB)", ApproachDate: "2026-08-21", DiameterMin: 12.5},
		{Name: "(2026 CD)", ApproachDate: "2026-08-21", DiameterMin: 40.1, IsPotentiallyHazardous: true},
	}

	written, err := repo.BulkUpsert(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 2, written)

	// Второй прогон того же батча ничего не добавляет
	written, err = repo.BulkUpsert(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 0, written)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestAsteroidIntraBatchDedupLastWins(t *testing.T) {
	db := newTestDB(t)
	repo := NewAsteroidRepository(db)
	ctx := context.Background()

	// Один ответ ленты легально содержит повтор ключа; побеждает поздняя запись
	batch := []models.Asteroid{
		{Name: "(2026 XY)", ApproachDate: "2026-08-22", DiameterMin: 10},
		{Name: "(2026 XY)", ApproachDate: "2026-08-22", DiameterMin: 99},
	}

	written, err := repo.BulkUpsert(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	var got models.Asteroid
	require.NoError(t, db.First(&got, "name = ?", "(2026 XY)").Error)
	assert.Equal(t, float64(99), got.DiameterMin)
}

func TestBulkUpsertEmptyBatchSkipsStore(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	written, err := NewExoplanetRepository(db).BulkUpsert(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, written)

	written, err = NewMarsPhotoRepository(db).BulkUpsert(ctx, []models.MarsPhoto{})
	require.NoError(t, err)
	assert.Equal(t, 0, written)
}

func TestExoplanetBulkUpsertAtomicRollback(t *testing.T) {
	db := newTestDB(t)
	repo := NewExoplanetRepository(db)
	ctx := context.Background()

	// Дубликат первичного ключа не покрыт conflict-клаузой по name,
	// поэтому запись падает — и не должна оставить ни одной строки
	batch := make([]models.Exoplanet, 0, 50)
	for i := 0; i < 50; i++ {
		p := models.Exoplanet{Name: fmt.Sprintf("Kepler-%d b", i), Radius: 1.1}
		if i == 25 || i == 40 {
			p.ID = 7
		}
		batch = append(batch, p)
	}

	_, err := repo.BulkUpsert(ctx, batch)
	require.Error(t, err)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestNaturalEventBulkUpsertIgnoresConflict(t *testing.T) {
	db := newTestDB(t)
	repo := NewNaturalEventRepository(db)
	ctx := context.Background()

	first := []models.NaturalEvent{
		{EventID: "EONET_123", Title: "Wildfire A", Category: "Wildfires"},
	}
	_, err := repo.BulkUpsert(ctx, first)
	require.NoError(t, err)

	// Повторная загрузка не перезаписывает однажды сохраненное событие
	second := []models.NaturalEvent{
		{EventID: "EONET_123", Title: "Wildfire A (renamed)", Category: "Severe Storms"},
	}
	written, err := repo.BulkUpsert(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, 0, written)

	var got models.NaturalEvent
	require.NoError(t, db.First(&got, "event_id = ?", "EONET_123").Error)
	assert.Equal(t, "Wildfire A", got.Title)
	assert.Equal(t, "Wildfires", got.Category)
}
