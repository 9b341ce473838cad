package service

import (
	"context"
	"fmt"
	"time"

	"solarscope/internal/clients"
	"solarscope/internal/ingest"
	"solarscope/internal/models"
	"solarscope/internal/repository"

	"gorm.io/datatypes"
)

const defaultCategory = "Inconnu"

type NaturalEventService interface {
	Name() string
	FetchAndStore(ctx context.Context) ingest.Outcome
	GetPaginated(ctx context.Context, page, limit int) ([]models.NaturalEvent, error)
	GetByCategory(ctx context.Context, category string, limit int) ([]models.NaturalEvent, error)
	Count(ctx context.Context) (int64, error)
}

type naturalEventService struct {
	repo      repository.NaturalEventRepository
	cacheRepo repository.CacheRepository
	client    clients.EONETClient
}

func NewNaturalEventService(
	repo repository.NaturalEventRepository,
	cacheRepo repository.CacheRepository,
	client clients.EONETClient,
) NaturalEventService {
	return &naturalEventService{
		repo:      repo,
		cacheRepo: cacheRepo,
		client:    client,
	}
}

func (s *naturalEventService) Name() string { return "natural_events" }

func (s *naturalEventService) FetchAndStore(ctx context.Context) ingest.Outcome {
	out := ingest.Outcome{Source: s.Name()}

	resp, err := s.client.FetchEvents(ctx)
	if err != nil {
		out.Err = &ingest.FetchError{Source: s.Name(), Err: err}
		return out
	}

	records, skipped := normalizeNaturalEvents(resp.Events)
	out.Skipped = skipped

	written, err := s.repo.BulkUpsert(ctx, records)
	if err != nil {
		out.Err = &ingest.StoreError{Source: s.Name(), Err: err}
		return out
	}
	out.Written = written
	return out
}

// normalizeNaturalEvents: обязательны id, title и хотя бы одна категория;
// событие без геометрии сохраняется с null-координатами и null-датой.
func normalizeNaturalEvents(events []clients.EONETEvent) ([]models.NaturalEvent, int) {
	var records []models.NaturalEvent
	skipped := 0
	for _, ev := range events {
		if ev.ID == "" || ev.Title == "" || len(ev.Categories) == 0 {
			skipped++
			continue
		}

		rec := models.NaturalEvent{
			EventID:  ev.ID,
			Title:    ev.Title,
			Category: ev.Categories[0].Title,
		}
		if rec.Category == "" {
			rec.Category = defaultCategory
		}

		if len(ev.Geometry) > 0 {
			geo := ev.Geometry[0]
			if len(geo.Coordinates) > 0 {
				rec.Coordinates = datatypes.JSON(geo.Coordinates)
			}
			if t, err := time.Parse(time.RFC3339, geo.Date); err == nil {
				utc := t.UTC()
				rec.Date = &utc
			}
		}

		records = append(records, rec)
	}
	return records, skipped
}

func (s *naturalEventService) GetPaginated(ctx context.Context, page, limit int) ([]models.NaturalEvent, error) {
	cacheKey := fmt.Sprintf("eonet:list:%d:%d", page, limit)

	var items []models.NaturalEvent
	if cacheGet(ctx, s.cacheRepo, cacheKey, &items) {
		return items, nil
	}

	items, err := s.repo.GetPaginated(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get natural events: %w", err)
	}

	cacheSet(ctx, s.cacheRepo, cacheKey, items, 5*time.Minute)
	return items, nil
}

func (s *naturalEventService) GetByCategory(ctx context.Context, category string, limit int) ([]models.NaturalEvent, error) {
	return s.repo.GetByCategory(ctx, category, limit)
}

func (s *naturalEventService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
