package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"solarscope/internal/clients"
	"solarscope/internal/ingest"
	"solarscope/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNASAClient struct {
	mu        sync.Mutex
	apodCalls []string
	apodErr   func(date string) error
}

func (f *fakeNASAClient) FetchAPOD(_ context.Context, date string) (*clients.APODResponse, error) {
	f.mu.Lock()
	f.apodCalls = append(f.apodCalls, date)
	f.mu.Unlock()

	if f.apodErr != nil {
		if err := f.apodErr(date); err != nil {
			return nil, err
		}
	}
	return &clients.APODResponse{
		Date:        date,
		Title:       "Picture " + date,
		Explanation: "Explanation " + date,
		URL:         "https://apod/" + date + ".jpg",
	}, nil
}

func (f *fakeNASAClient) FetchNEOFeed(_ context.Context, _, _ string) (*clients.NEOFeedResponse, error) {
	return &clients.NEOFeedResponse{}, nil
}

func (f *fakeNASAClient) FetchDONKICME(_ context.Context, _, _ string) ([]clients.CMEEvent, error) {
	return nil, nil
}

func (f *fakeNASAClient) FetchLatestMarsPhotos(_ context.Context, _ string) (*clients.MarsPhotosResponse, error) {
	return &clients.MarsPhotosResponse{}, nil
}

type fakeMediaRepo struct {
	upserts [][]models.Media
	err     error
}

func (f *fakeMediaRepo) BulkUpsert(_ context.Context, items []models.Media) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.upserts = append(f.upserts, items)
	return len(items), nil
}

func (f *fakeMediaRepo) GetPaginated(_ context.Context, _, _ int) ([]models.Media, error) {
	return nil, nil
}
func (f *fakeMediaRepo) GetByDate(_ context.Context, _ string) (*models.Media, error) {
	return nil, nil
}
func (f *fakeMediaRepo) Latest(_ context.Context) (*models.Media, error) { return nil, nil }
func (f *fakeMediaRepo) Count(_ context.Context) (int64, error)          { return 0, nil }

func TestAPODFetchAndStoreCoversWholeWindow(t *testing.T) {
	client := &fakeNASAClient{}
	repo := &fakeMediaRepo{}
	svc := NewAPODService(repo, nil, client, APODConfig{WindowDays: 7, Concurrency: 3})

	out := svc.FetchAndStore(context.Background())

	require.NoError(t, out.Err)
	// Окно в 7 дней назад включает обе границы: 8 вызовов, 8 записей
	assert.Len(t, client.apodCalls, 8)
	assert.Equal(t, 8, out.Written)
	assert.Zero(t, out.Skipped)
	require.Len(t, repo.upserts, 1)
	assert.Len(t, repo.upserts[0], 8)
}

func TestAPODFetchAndStorePartialFailureIsSkipped(t *testing.T) {
	failed := 0
	client := &fakeNASAClient{apodErr: func(date string) error {
		if failed < 2 {
			failed++
			return errors.New("HTTP 500")
		}
		return nil
	}}
	repo := &fakeMediaRepo{}
	svc := NewAPODService(repo, nil, client, APODConfig{WindowDays: 7, Concurrency: 1})

	out := svc.FetchAndStore(context.Background())

	require.NoError(t, out.Err)
	assert.Equal(t, 6, out.Written)
	assert.Equal(t, 2, out.Skipped)
}

func TestAPODFetchAndStoreAllDaysFailed(t *testing.T) {
	client := &fakeNASAClient{apodErr: func(string) error { return errors.New("HTTP 503") }}
	repo := &fakeMediaRepo{}
	svc := NewAPODService(repo, nil, client, APODConfig{WindowDays: 7, Concurrency: 2})

	out := svc.FetchAndStore(context.Background())

	require.Error(t, out.Err)
	var fetchErr *ingest.FetchError
	assert.ErrorAs(t, out.Err, &fetchErr)
	assert.Empty(t, repo.upserts, "nothing should be stored when every day failed")
	assert.Equal(t, 8, out.Skipped)
}

func TestAPODFetchAndStoreStoreFailure(t *testing.T) {
	client := &fakeNASAClient{}
	repo := &fakeMediaRepo{err: errors.New("pq: deadlock detected")}
	svc := NewAPODService(repo, nil, client, APODConfig{WindowDays: 7})

	out := svc.FetchAndStore(context.Background())

	require.Error(t, out.Err)
	var storeErr *ingest.StoreError
	assert.ErrorAs(t, out.Err, &storeErr)
}
