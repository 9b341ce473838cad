package service

import (
	"context"
	"fmt"
	"time"

	"solarscope/internal/clients"
	"solarscope/internal/ingest"
	"solarscope/internal/models"
	"solarscope/internal/repository"
)

type AsteroidService interface {
	Name() string
	FetchAndStore(ctx context.Context) ingest.Outcome
	GetPaginated(ctx context.Context, page, limit int) ([]models.Asteroid, error)
	ListRecent(ctx context.Context, limit int) ([]models.Asteroid, error)
	CountHazardous(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type asteroidService struct {
	repo       repository.AsteroidRepository
	cacheRepo  repository.CacheRepository
	client     clients.NASAClient
	windowDays int
}

func NewAsteroidService(
	repo repository.AsteroidRepository,
	cacheRepo repository.CacheRepository,
	client clients.NASAClient,
	windowDays int,
) AsteroidService {
	if windowDays < 1 || windowDays > 7 {
		// NeoWs не отдает окно шире недели
		windowDays = 7
	}
	return &asteroidService{
		repo:       repo,
		cacheRepo:  cacheRepo,
		client:     client,
		windowDays: windowDays,
	}
}

func (s *asteroidService) Name() string { return "asteroids" }

func (s *asteroidService) FetchAndStore(ctx context.Context) ingest.Outcome {
	out := ingest.Outcome{Source: s.Name()}

	end := time.Now().UTC().Format("2006-01-02")
	start := time.Now().UTC().AddDate(0, 0, -s.windowDays).Format("2006-01-02")

	feed, err := s.client.FetchNEOFeed(ctx, start, end)
	if err != nil {
		out.Err = &ingest.FetchError{Source: s.Name(), Err: err}
		return out
	}

	records, skipped := normalizeAsteroids(feed)
	out.Skipped = skipped

	written, err := s.repo.BulkUpsert(ctx, records)
	if err != nil {
		out.Err = &ingest.StoreError{Source: s.Name(), Err: err}
		return out
	}
	out.Written = written
	return out
}

// normalizeAsteroids раскладывает словарь date → список сближений.
// Запись без имени или минимального диаметра пропускается, остальные
// из того же ответа идут дальше.
func normalizeAsteroids(feed *clients.NEOFeedResponse) ([]models.Asteroid, int) {
	var records []models.Asteroid
	skipped := 0
	for date, objects := range feed.NearEarthObjects {
		for _, obj := range objects {
			if obj.Name == "" || obj.EstimatedDiameter.Meters.Min == nil {
				skipped++
				continue
			}
			records = append(records, models.Asteroid{
				Name:                   obj.Name,
				ApproachDate:           date,
				DiameterMin:            *obj.EstimatedDiameter.Meters.Min,
				IsPotentiallyHazardous: obj.IsPotentiallyHazardous,
			})
		}
	}
	return records, skipped
}

func (s *asteroidService) GetPaginated(ctx context.Context, page, limit int) ([]models.Asteroid, error) {
	cacheKey := fmt.Sprintf("asteroids:list:%d:%d", page, limit)

	var items []models.Asteroid
	if cacheGet(ctx, s.cacheRepo, cacheKey, &items) {
		return items, nil
	}

	items, err := s.repo.GetPaginated(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get asteroid list: %w", err)
	}

	cacheSet(ctx, s.cacheRepo, cacheKey, items, 5*time.Minute)
	return items, nil
}

func (s *asteroidService) ListRecent(ctx context.Context, limit int) ([]models.Asteroid, error) {
	return s.repo.ListRecent(ctx, limit)
}

func (s *asteroidService) CountHazardous(ctx context.Context) (int64, error) {
	return s.repo.CountHazardous(ctx)
}

func (s *asteroidService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
