package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "solarscope", cfg.DB.DBName)
	assert.Equal(t, 7, cfg.Ingest.WindowDays)
	assert.Equal(t, 7, cfg.Ingest.APODConcurrency)
	assert.Equal(t, 30*time.Second, cfg.Ingest.CallTimeout)
	assert.Equal(t, "curiosity", cfg.Ingest.Rover)
	assert.False(t, cfg.Ingest.Concurrent)
	assert.Equal(t, "https://api.nasa.gov/DONKI/CME", cfg.NASA.DONKIURL)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("INGEST_WINDOW_DAYS", "3")
	t.Setenv("INGEST_CONCURRENT", "true")
	t.Setenv("INGEST_CALL_TIMEOUT", "45s")
	t.Setenv("INGEST_ROVER", "perseverance")
	t.Setenv("DB_HOST", "db.internal")

	cfg := Load()

	assert.Equal(t, 3, cfg.Ingest.WindowDays)
	assert.True(t, cfg.Ingest.Concurrent)
	assert.Equal(t, 45*time.Second, cfg.Ingest.CallTimeout)
	assert.Equal(t, "perseverance", cfg.Ingest.Rover)
	assert.Equal(t, "db.internal", cfg.DB.Host)
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	t.Setenv("INGEST_WINDOW_DAYS", "not-a-number")
	t.Setenv("INGEST_CALL_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, 7, cfg.Ingest.WindowDays)
	assert.Equal(t, 30*time.Second, cfg.Ingest.CallTimeout)
}
