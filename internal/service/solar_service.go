package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"solarscope/internal/clients"
	"solarscope/internal/ingest"
	"solarscope/internal/models"
	"solarscope/internal/repository"
)

// Значения по умолчанию для необязательных полей DONKI.
const (
	defaultNote   = "Aucun détail fourni"
	defaultSource = "Non spécifié"
)

// Форматы времени, встречающиеся в startTime DONKI.
var donkiTimeFormats = []string{
	"2006-01-02T15:04Z",
	time.RFC3339,
}

type SolarEventService interface {
	Name() string
	FetchAndStore(ctx context.Context) ingest.Outcome
	GetPaginated(ctx context.Context, page, limit int) ([]models.SolarEvent, error)
	Count(ctx context.Context) (int64, error)
}

type solarEventService struct {
	repo       repository.SolarEventRepository
	cacheRepo  repository.CacheRepository
	client     clients.NASAClient
	windowDays int
}

func NewSolarEventService(
	repo repository.SolarEventRepository,
	cacheRepo repository.CacheRepository,
	client clients.NASAClient,
	windowDays int,
) SolarEventService {
	if windowDays < 1 {
		windowDays = 7
	}
	return &solarEventService{
		repo:       repo,
		cacheRepo:  cacheRepo,
		client:     client,
		windowDays: windowDays,
	}
}

func (s *solarEventService) Name() string { return "solar_events" }

func (s *solarEventService) FetchAndStore(ctx context.Context) ingest.Outcome {
	out := ingest.Outcome{Source: s.Name()}

	end := time.Now().UTC().Format("2006-01-02")
	start := time.Now().UTC().AddDate(0, 0, -s.windowDays).Format("2006-01-02")

	events, err := s.client.FetchDONKICME(ctx, start, end)
	if err != nil {
		out.Err = &ingest.FetchError{Source: s.Name(), Err: err}
		return out
	}

	records, skipped := normalizeSolarEvents(events)
	out.Skipped = skipped

	written, err := s.repo.BulkUpsert(ctx, records)
	if err != nil {
		out.Err = &ingest.StoreError{Source: s.Name(), Err: err}
		return out
	}
	out.Written = written
	return out
}

// normalizeSolarEvents пропускает события без разборного startTime,
// остальные поля добиваются значениями по умолчанию.
func normalizeSolarEvents(events []clients.CMEEvent) ([]models.SolarEvent, int) {
	var records []models.SolarEvent
	skipped := 0
	for _, ev := range events {
		start, ok := parseDONKITime(ev.StartTime)
		if !ok {
			skipped++
			continue
		}
		rec := models.SolarEvent{
			StartTime: start,
			Details:   ev.Note,
			Source:    ev.SourceLocation,
		}
		if rec.Details == "" {
			rec.Details = defaultNote
		}
		if rec.Source == "" {
			rec.Source = defaultSource
		}
		records = append(records, rec)
	}
	return records, skipped
}

func parseDONKITime(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, format := range donkiTimeFormats {
		if t, err := time.Parse(format, value); err == nil {
			return t.UTC(), true
		}
	}
	log.Printf("DONKI: unparseable startTime %q", value)
	return time.Time{}, false
}

func (s *solarEventService) GetPaginated(ctx context.Context, page, limit int) ([]models.SolarEvent, error) {
	cacheKey := fmt.Sprintf("solar:list:%d:%d", page, limit)

	var items []models.SolarEvent
	if cacheGet(ctx, s.cacheRepo, cacheKey, &items) {
		return items, nil
	}

	items, err := s.repo.GetPaginated(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get solar events: %w", err)
	}

	cacheSet(ctx, s.cacheRepo, cacheKey, items, 5*time.Minute)
	return items, nil
}

func (s *solarEventService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
