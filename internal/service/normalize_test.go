package service

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"solarscope/internal/clients"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAPODFillsDefaults(t *testing.T) {
	day := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)

	got := normalizeAPOD(&clients.APODResponse{URL: "https://apod/img.jpg"}, day)

	assert.Equal(t, "2026-08-25", got.Date)
	assert.Equal(t, defaultTitle, got.Title)
	assert.Equal(t, defaultDescription, got.Description)
	assert.Equal(t, "https://apod/img.jpg", got.URL)
}

func TestNormalizeAPODKeepsFilledFields(t *testing.T) {
	day := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)

	got := normalizeAPOD(&clients.APODResponse{
		Date:        "2026-08-24",
		Title:       "Horsehead Nebula",
		Explanation: "Dark nebula in Orion",
		URL:         "https://apod/horse.jpg",
	}, day)

	// Дата из ответа важнее даты запроса
	assert.Equal(t, "2026-08-24", got.Date)
	assert.Equal(t, "Horsehead Nebula", got.Title)
	assert.Equal(t, "Dark nebula in Orion", got.Description)
}

func TestNormalizeAsteroidsSkipsIncomplete(t *testing.T) {
	min := 42.5
	withDiameter := clients.NEOObject{Name: "(2026 AB)", IsPotentiallyHazardous: true}
	withDiameter.EstimatedDiameter.Meters.Min = &min

	noName := clients.NEOObject{}
	noName.EstimatedDiameter.Meters.Min = &min

	noDiameter := clients.NEOObject{Name: "(2026 CD)"}

	feed := &clients.NEOFeedResponse{
		NearEarthObjects: map[string][]clients.NEOObject{
			"2026-08-25": {withDiameter, noName, noDiameter},
		},
	}

	records, skipped := normalizeAsteroids(feed)

	require.Len(t, records, 1)
	assert.Equal(t, 2, skipped)
	assert.Equal(t, "(2026 AB)", records[0].Name)
	assert.Equal(t, "2026-08-25", records[0].ApproachDate)
	assert.Equal(t, 42.5, records[0].DiameterMin)
	assert.True(t, records[0].IsPotentiallyHazardous)
}

func TestNormalizeSolarEvents(t *testing.T) {
	events := []clients.CMEEvent{
		{StartTime: "2026-08-20T14:36Z", Note: "Halo CME", SourceLocation: "N12W34"},
		{StartTime: "2026-08-21T03:12:00Z"},
		{StartTime: "not-a-time"},
		{},
	}

	records, skipped := normalizeSolarEvents(events)

	require.Len(t, records, 2)
	assert.Equal(t, 2, skipped)

	assert.Equal(t, time.Date(2026, 8, 20, 14, 36, 0, 0, time.UTC), records[0].StartTime)
	assert.Equal(t, "Halo CME", records[0].Details)
	assert.Equal(t, "N12W34", records[0].Source)

	// Пустые note и sourceLocation добиваются значениями по умолчанию
	assert.Equal(t, time.Date(2026, 8, 21, 3, 12, 0, 0, time.UTC), records[1].StartTime)
	assert.Equal(t, defaultNote, records[1].Details)
	assert.Equal(t, defaultSource, records[1].Source)
}

func TestNormalizeNaturalEventsPartialPayload(t *testing.T) {
	coords := json.RawMessage(`[-120.5,38.2]`)
	events := make([]clients.EONETEvent, 0, 10)
	for i := 0; i < 8; i++ {
		ev := clients.EONETEvent{
			ID:         fmt.Sprintf("EONET_%d", i),
			Title:      "Event",
			Categories: []clients.EONETCategory{{ID: "wildfires", Title: "Wildfires"}},
		}
		if i%2 == 0 {
			ev.Geometry = []clients.EONETGeometry{{Date: "2026-08-20T12:00:00Z", Type: "Point", Coordinates: coords}}
		}
		events = append(events, ev)
	}
	// Две записи без категорий — обязательное поле, их пропускаем
	events = append(events,
		clients.EONETEvent{ID: "EONET_x", Title: "No categories"},
		clients.EONETEvent{ID: "EONET_y", Title: "Empty categories", Categories: []clients.EONETCategory{}},
	)

	records, skipped := normalizeNaturalEvents(events)

	require.Len(t, records, 8)
	assert.Equal(t, 2, skipped)

	// Четные индексы пришли с геометрией, нечетные — без
	wantDate := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	for i, rec := range records {
		assert.Equal(t, "Wildfires", rec.Category)
		if i%2 == 0 {
			require.NotNil(t, rec.Date)
			assert.Equal(t, wantDate, *rec.Date)
			assert.JSONEq(t, `[-120.5,38.2]`, string(rec.Coordinates))
		} else {
			assert.Nil(t, rec.Date)
			assert.Nil(t, rec.Coordinates)
		}
	}
}

func TestNormalizeNaturalEventsDefaultCategoryTitle(t *testing.T) {
	events := []clients.EONETEvent{
		{ID: "EONET_1", Title: "Storm", Categories: []clients.EONETCategory{{ID: "severeStorms"}}},
	}

	records, skipped := normalizeNaturalEvents(events)

	require.Len(t, records, 1)
	assert.Zero(t, skipped)
	assert.Equal(t, defaultCategory, records[0].Category)
}

func TestNormalizeExoplanetsSkipsIncomplete(t *testing.T) {
	radius := 1.8
	planets := []clients.ExoplanetRecord{
		{Name: "Kepler-22 b", Radius: &radius},
		{Name: "TOI-700 d"},
		{Radius: &radius},
	}

	records, skipped := normalizeExoplanets(planets)

	require.Len(t, records, 1)
	assert.Equal(t, 2, skipped)
	assert.Equal(t, "Kepler-22 b", records[0].Name)
	assert.Equal(t, 1.8, records[0].Radius)
}

func TestNormalizeMarsPhotosSkipsIncomplete(t *testing.T) {
	ok := clients.MarsPhotoItem{ID: 1234567, ImgSrc: "https://mars/1.jpg", EarthDate: "2026-08-24"}
	ok.Camera.FullName = "Mast Camera"
	ok.Rover.Name = "Curiosity"

	noID := clients.MarsPhotoItem{ImgSrc: "https://mars/2.jpg"}
	noSrc := clients.MarsPhotoItem{ID: 7654321}

	records, skipped := normalizeMarsPhotos([]clients.MarsPhotoItem{ok, noID, noSrc})

	require.Len(t, records, 1)
	assert.Equal(t, 2, skipped)
	assert.Equal(t, int64(1234567), records[0].PhotoID)
	assert.Equal(t, "Mast Camera", records[0].CameraName)
	assert.Equal(t, "Curiosity", records[0].RoverName)
}

func TestParseDONKITime(t *testing.T) {
	tests := []struct {
		value string
		ok    bool
	}{
		{"2026-08-20T14:36Z", true},
		{"2026-08-20T14:36:00Z", true},
		{"2026-08-20T14:36:00+03:00", true},
		{"2026-08-20", false},
		{"", false},
	}

	for _, tt := range tests {
		got, ok := parseDONKITime(tt.value)
		assert.Equal(t, tt.ok, ok, "value %q", tt.value)
		if ok {
			assert.Equal(t, time.UTC, got.Location())
		}
	}
}
