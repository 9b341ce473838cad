package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	App struct {
		Port        string
		Debug       bool
		FrontendURL string
		ExportDir   string
	}
	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
		DB       int
	}
	NASA struct {
		APIKey   string
		APODURL  string
		NEOURL   string
		DONKIURL string
		MarsURL  string
	}
	EONET struct {
		URL string
	}
	Exoplanet struct {
		URL string
	}
	Ingest struct {
		WindowDays      int
		APODConcurrency int
		CallTimeout     time.Duration
		Rover           string
		Concurrent      bool
	}
	Workers struct {
		IngestEnabled  bool
		IngestInterval time.Duration
	}
	RateLimit struct {
		RequestsPerSecond int
		Burst             int
	}
}

func Load() *Config {
	cfg := &Config{}

	// App
	cfg.App.Port = getEnv("PORT", "8080")
	cfg.App.Debug = getEnvAsBool("DEBUG", false)
	cfg.App.FrontendURL = getEnv("FRONTEND_URL", "http://localhost:3000")
	cfg.App.ExportDir = getEnv("EXPORT_DIR", "./data/exports")

	// DB
	cfg.DB.Host = getEnv("DB_HOST", "localhost")
	cfg.DB.Port = getEnv("DB_PORT", "5432")
	cfg.DB.User = getEnv("DB_USER", "postgres")
	cfg.DB.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.DB.DBName = getEnv("DB_NAME", "solarscope")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	// Redis
	cfg.Redis.Host = getEnv("REDIS_HOST", "localhost")
	cfg.Redis.Port = getEnv("REDIS_PORT", "6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", 0)

	// NASA
	cfg.NASA.APIKey = getEnv("NASA_API_KEY", "")
	cfg.NASA.APODURL = getEnv("NASA_APOD_URL", "https://api.nasa.gov/planetary/apod")
	cfg.NASA.NEOURL = getEnv("NASA_NEO_URL", "https://api.nasa.gov/neo/rest/v1/feed")
	cfg.NASA.DONKIURL = getEnv("NASA_DONKI_CME_URL", "https://api.nasa.gov/DONKI/CME")
	cfg.NASA.MarsURL = getEnv("NASA_MARS_PHOTOS_URL", "https://api.nasa.gov/mars-photos/api/v1/rovers")

	// EONET / Exoplanet Archive
	cfg.EONET.URL = getEnv("EONET_URL", "https://eonet.gsfc.nasa.gov/api/v3/events")
	cfg.Exoplanet.URL = getEnv("EXOPLANET_URL", "https://exoplanetarchive.ipac.caltech.edu/TAP/sync")

	// Ingest
	cfg.Ingest.WindowDays = getEnvAsInt("INGEST_WINDOW_DAYS", 7)
	cfg.Ingest.APODConcurrency = getEnvAsInt("INGEST_APOD_CONCURRENCY", 7)
	cfg.Ingest.CallTimeout = getEnvAsDuration("INGEST_CALL_TIMEOUT", 30*time.Second)
	cfg.Ingest.Rover = getEnv("INGEST_ROVER", "curiosity")
	cfg.Ingest.Concurrent = getEnvAsBool("INGEST_CONCURRENT", false)

	// Workers
	cfg.Workers.IngestEnabled = getEnvAsBool("INGEST_WORKER_ENABLED", false)
	cfg.Workers.IngestInterval = getEnvAsDuration("INGEST_WORKER_INTERVAL", 6*time.Hour)

	// Rate Limit
	cfg.RateLimit.RequestsPerSecond = getEnvAsInt("RATE_LIMIT_RPS", 10)
	cfg.RateLimit.Burst = getEnvAsInt("RATE_LIMIT_BURST", 20)

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if dur, err := time.ParseDuration(value); err == nil {
			return dur
		}
	}
	return defaultValue
}
