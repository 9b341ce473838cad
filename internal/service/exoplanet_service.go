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

type ExoplanetService interface {
	Name() string
	FetchAndStore(ctx context.Context) ingest.Outcome
	GetPaginated(ctx context.Context, page, limit int) ([]models.Exoplanet, error)
	Search(ctx context.Context, query string, limit int) ([]models.Exoplanet, error)
	Count(ctx context.Context) (int64, error)
}

type exoplanetService struct {
	repo      repository.ExoplanetRepository
	cacheRepo repository.CacheRepository
	client    clients.ExoplanetClient
}

func NewExoplanetService(
	repo repository.ExoplanetRepository,
	cacheRepo repository.CacheRepository,
	client clients.ExoplanetClient,
) ExoplanetService {
	return &exoplanetService{
		repo:      repo,
		cacheRepo: cacheRepo,
		client:    client,
	}
}

func (s *exoplanetService) Name() string { return "exoplanets" }

func (s *exoplanetService) FetchAndStore(ctx context.Context) ingest.Outcome {
	out := ingest.Outcome{Source: s.Name()}

	planets, err := s.client.FetchPlanets(ctx)
	if err != nil {
		out.Err = &ingest.FetchError{Source: s.Name(), Err: err}
		return out
	}

	records, skipped := normalizeExoplanets(planets)
	out.Skipped = skipped

	written, err := s.repo.BulkUpsert(ctx, records)
	if err != nil {
		out.Err = &ingest.StoreError{Source: s.Name(), Err: err}
		return out
	}
	out.Written = written
	return out
}

// normalizeExoplanets пропускает строки без имени или радиуса — каталог ps
// содержит много неполных записей.
func normalizeExoplanets(planets []clients.ExoplanetRecord) ([]models.Exoplanet, int) {
	var records []models.Exoplanet
	skipped := 0
	for _, p := range planets {
		if p.Name == "" || p.Radius == nil {
			skipped++
			continue
		}
		records = append(records, models.Exoplanet{
			Name:   p.Name,
			Radius: *p.Radius,
		})
	}
	return records, skipped
}

func (s *exoplanetService) GetPaginated(ctx context.Context, page, limit int) ([]models.Exoplanet, error) {
	cacheKey := fmt.Sprintf("exoplanets:list:%d:%d", page, limit)

	var items []models.Exoplanet
	if cacheGet(ctx, s.cacheRepo, cacheKey, &items) {
		return items, nil
	}

	items, err := s.repo.GetPaginated(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get exoplanet list: %w", err)
	}

	cacheSet(ctx, s.cacheRepo, cacheKey, items, 10*time.Minute)
	return items, nil
}

func (s *exoplanetService) Search(ctx context.Context, query string, limit int) ([]models.Exoplanet, error) {
	return s.repo.Search(ctx, query, limit)
}

func (s *exoplanetService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
