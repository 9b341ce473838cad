package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"solarscope/internal/clients"
	"solarscope/internal/fetch"
	"solarscope/internal/ingest"
	"solarscope/internal/models"
	"solarscope/internal/repository"
)

// Значения по умолчанию для незаполненных полей APOD —
// исторические строки, на них завязан фронтенд.
const (
	defaultTitle       = "Titre inconnu"
	defaultDescription = "Pas de description"
)

type APODService interface {
	Name() string
	FetchAndStore(ctx context.Context) ingest.Outcome
	GetPaginated(ctx context.Context, page, limit int) ([]models.Media, error)
	GetLatest(ctx context.Context) (*models.Media, error)
	GetByDate(ctx context.Context, date string) (*models.Media, error)
	Count(ctx context.Context) (int64, error)
}

type APODConfig struct {
	WindowDays  int
	Concurrency int
	CallTimeout time.Duration
}

type apodService struct {
	repo      repository.MediaRepository
	cacheRepo repository.CacheRepository
	client    clients.NASAClient
	cfg       APODConfig
}

func NewAPODService(
	repo repository.MediaRepository,
	cacheRepo repository.CacheRepository,
	client clients.NASAClient,
	cfg APODConfig,
) APODService {
	if cfg.WindowDays < 1 {
		cfg.WindowDays = 7
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = cfg.WindowDays
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = 30 * time.Second
	}
	return &apodService{
		repo:      repo,
		cacheRepo: cacheRepo,
		client:    client,
		cfg:       cfg,
	}
}

func (s *apodService) Name() string { return "apod" }

// FetchAndStore забирает APOD за trailing-окно, по одному вызову на день,
// не больше cfg.Concurrency одновременно. Упавший день — это skipped-единица,
// а не сбой источника; источник падает только если не удался ни один день
// или не прошла запись батча.
func (s *apodService) FetchAndStore(ctx context.Context) ingest.Outcome {
	out := ingest.Outcome{Source: s.Name()}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -s.cfg.WindowDays)

	results := fetch.Window(ctx, start, end, s.cfg.Concurrency,
		func(ctx context.Context, day time.Time) (*clients.APODResponse, error) {
			cctx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
			defer cancel()
			return s.client.FetchAPOD(cctx, day.Format("2006-01-02"))
		})

	var records []models.Media
	var firstErr error
	for _, r := range results {
		if r.Err != nil {
			if firstErr == nil {
				firstErr = r.Err
			}
			log.Printf("APOD %s: %v", r.Date.Format("2006-01-02"), r.Err)
			out.Skipped++
			continue
		}
		records = append(records, normalizeAPOD(r.Value, r.Date))
	}

	if len(records) == 0 && firstErr != nil {
		out.Err = &ingest.FetchError{Source: s.Name(), Err: firstErr}
		return out
	}

	written, err := s.repo.BulkUpsert(ctx, records)
	if err != nil {
		out.Err = &ingest.StoreError{Source: s.Name(), Err: err}
		return out
	}
	out.Written = written
	return out
}

func normalizeAPOD(raw *clients.APODResponse, day time.Time) models.Media {
	m := models.Media{
		Date:        raw.Date,
		Title:       raw.Title,
		Description: raw.Explanation,
		URL:         raw.URL,
	}
	if m.Date == "" {
		m.Date = day.Format("2006-01-02")
	}
	if m.Title == "" {
		m.Title = defaultTitle
	}
	if m.Description == "" {
		m.Description = defaultDescription
	}
	return m
}

func (s *apodService) GetPaginated(ctx context.Context, page, limit int) ([]models.Media, error) {
	cacheKey := fmt.Sprintf("apod:list:%d:%d", page, limit)

	var items []models.Media
	if cacheGet(ctx, s.cacheRepo, cacheKey, &items) {
		return items, nil
	}

	items, err := s.repo.GetPaginated(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get APOD list: %w", err)
	}

	cacheSet(ctx, s.cacheRepo, cacheKey, items, 5*time.Minute)
	return items, nil
}

func (s *apodService) GetLatest(ctx context.Context) (*models.Media, error) {
	cacheKey := "apod:latest"

	var item models.Media
	if cacheGet(ctx, s.cacheRepo, cacheKey, &item) {
		return &item, nil
	}

	latest, err := s.repo.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest APOD: %w", err)
	}
	if latest != nil {
		cacheSet(ctx, s.cacheRepo, cacheKey, latest, 10*time.Minute)
	}
	return latest, nil
}

func (s *apodService) GetByDate(ctx context.Context, date string) (*models.Media, error) {
	return s.repo.GetByDate(ctx, date)
}

func (s *apodService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
