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

type MarsPhotoService interface {
	Name() string
	FetchAndStore(ctx context.Context) ingest.Outcome
	GetPaginated(ctx context.Context, page, limit int) ([]models.MarsPhoto, error)
	GetByRover(ctx context.Context, rover string, limit int) ([]models.MarsPhoto, error)
	Count(ctx context.Context) (int64, error)
}

type marsPhotoService struct {
	repo      repository.MarsPhotoRepository
	cacheRepo repository.CacheRepository
	client    clients.NASAClient
	rover     string
}

func NewMarsPhotoService(
	repo repository.MarsPhotoRepository,
	cacheRepo repository.CacheRepository,
	client clients.NASAClient,
	rover string,
) MarsPhotoService {
	if rover == "" {
		rover = "curiosity"
	}
	return &marsPhotoService{
		repo:      repo,
		cacheRepo: cacheRepo,
		client:    client,
		rover:     rover,
	}
}

func (s *marsPhotoService) Name() string { return "mars_photos" }

// FetchAndStore берет снапшот latest_photos настроенного марсохода —
// это единственная лента без date-окна.
func (s *marsPhotoService) FetchAndStore(ctx context.Context) ingest.Outcome {
	out := ingest.Outcome{Source: s.Name()}

	resp, err := s.client.FetchLatestMarsPhotos(ctx, s.rover)
	if err != nil {
		out.Err = &ingest.FetchError{Source: s.Name(), Err: err}
		return out
	}

	records, skipped := normalizeMarsPhotos(resp.LatestPhotos)
	out.Skipped = skipped

	written, err := s.repo.BulkUpsert(ctx, records)
	if err != nil {
		out.Err = &ingest.StoreError{Source: s.Name(), Err: err}
		return out
	}
	out.Written = written
	return out
}

func normalizeMarsPhotos(photos []clients.MarsPhotoItem) ([]models.MarsPhoto, int) {
	var records []models.MarsPhoto
	skipped := 0
	for _, p := range photos {
		if p.ID == 0 || p.ImgSrc == "" {
			skipped++
			continue
		}
		records = append(records, models.MarsPhoto{
			PhotoID:    p.ID,
			CameraName: p.Camera.FullName,
			RoverName:  p.Rover.Name,
			ImgSrc:     p.ImgSrc,
			EarthDate:  p.EarthDate,
		})
	}
	return records, skipped
}

func (s *marsPhotoService) GetPaginated(ctx context.Context, page, limit int) ([]models.MarsPhoto, error) {
	cacheKey := fmt.Sprintf("mars:list:%d:%d", page, limit)

	var items []models.MarsPhoto
	if cacheGet(ctx, s.cacheRepo, cacheKey, &items) {
		return items, nil
	}

	items, err := s.repo.GetPaginated(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get mars photos: %w", err)
	}

	cacheSet(ctx, s.cacheRepo, cacheKey, items, 5*time.Minute)
	return items, nil
}

func (s *marsPhotoService) GetByRover(ctx context.Context, rover string, limit int) ([]models.MarsPhoto, error) {
	return s.repo.GetByRover(ctx, rover, limit)
}

func (s *marsPhotoService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
