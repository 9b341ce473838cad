package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"solarscope/internal/clients"
	"solarscope/internal/config"
	"solarscope/internal/ingest"
	"solarscope/internal/repository"
	"solarscope/internal/service"
	"solarscope/pkg/database"

	"github.com/joho/godotenv"
)

// Точка входа для cron: один прогон всех шести источников.
// Выход 0 даже при упавших источниках — деградация одной ленты не должна
// будить алертинг; не 0 только когда недоступна сама база.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	log.Println("=== SolarScope ingest starting ===")

	cfg := config.Load()

	dbConfig := database.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		DBName:   cfg.DB.DBName,
		SSLMode:  cfg.DB.SSLMode,
	}

	db, err := database.Connect(dbConfig)
	if err != nil {
		log.Println("Failed to connect to database:", err)
		os.Exit(1)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	if err := database.Migrate(db); err != nil {
		log.Println("Failed to migrate database:", err)
		os.Exit(1)
	}

	nasaClient := clients.NewNASAClient(clients.NASAConfig{
		APIKey:   cfg.NASA.APIKey,
		APODURL:  cfg.NASA.APODURL,
		NEOURL:   cfg.NASA.NEOURL,
		DONKIURL: cfg.NASA.DONKIURL,
		MarsURL:  cfg.NASA.MarsURL,
	})
	eonetClient := clients.NewEONETClient(cfg.EONET.URL)
	exoplanetClient := clients.NewExoplanetClient(cfg.Exoplanet.URL)

	// Кэш здесь не нужен: cron-прогон читает только внешние API
	apodService := service.NewAPODService(
		repository.NewMediaRepository(db), nil, nasaClient,
		service.APODConfig{
			WindowDays:  cfg.Ingest.WindowDays,
			Concurrency: cfg.Ingest.APODConcurrency,
			CallTimeout: cfg.Ingest.CallTimeout,
		})
	asteroidService := service.NewAsteroidService(
		repository.NewAsteroidRepository(db), nil, nasaClient, cfg.Ingest.WindowDays)
	solarService := service.NewSolarEventService(
		repository.NewSolarEventRepository(db), nil, nasaClient, cfg.Ingest.WindowDays)
	naturalService := service.NewNaturalEventService(
		repository.NewNaturalEventRepository(db), nil, eonetClient)
	marsService := service.NewMarsPhotoService(
		repository.NewMarsPhotoRepository(db), nil, nasaClient, cfg.Ingest.Rover)
	exoplanetService := service.NewExoplanetService(
		repository.NewExoplanetRepository(db), nil, exoplanetClient)

	// Порядок прогонов исторический: apod → asteroids → donki → eonet → mars → exoplanets
	sources := []ingest.Source{
		apodService,
		asteroidService,
		solarService,
		naturalService,
		marsService,
		exoplanetService,
	}

	runner := ingest.NewRunner(sources, cfg.Ingest.Concurrent, func(ctx context.Context) error {
		_, err := database.Validate(db, dbConfig)
		return err
	})

	report := runner.RunAll(context.Background())
	fmt.Print(report.String())

	if report.Fatal != nil {
		os.Exit(1)
	}
}
