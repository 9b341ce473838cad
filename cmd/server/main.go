package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"solarscope/internal/clients"
	"solarscope/internal/config"
	"solarscope/internal/handlers"
	"solarscope/internal/ingest"
	"solarscope/internal/middleware"
	"solarscope/internal/repository"
	"solarscope/internal/service"
	"solarscope/internal/worker"
	"solarscope/pkg/database"
	"solarscope/pkg/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

// Read-only API поверх шести таблиц. Сам по себе запросы к NASA не делает:
// данные кладет либо cron (cmd/ingest), либо фоновый ingest-воркер.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	log.Println("=== SolarScope API starting ===")

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
		log.Fatal("Failed to connect to database:", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	redisClient, err := redis.Connect(redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	// Репозитории
	mediaRepo := repository.NewMediaRepository(db)
	asteroidRepo := repository.NewAsteroidRepository(db)
	solarRepo := repository.NewSolarEventRepository(db)
	naturalRepo := repository.NewNaturalEventRepository(db)
	exoplanetRepo := repository.NewExoplanetRepository(db)
	marsRepo := repository.NewMarsPhotoRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient)

	// Клиенты внешних лент
	nasaClient := clients.NewNASAClient(clients.NASAConfig{
		APIKey:   cfg.NASA.APIKey,
		APODURL:  cfg.NASA.APODURL,
		NEOURL:   cfg.NASA.NEOURL,
		DONKIURL: cfg.NASA.DONKIURL,
		MarsURL:  cfg.NASA.MarsURL,
	})
	eonetClient := clients.NewEONETClient(cfg.EONET.URL)
	exoplanetClient := clients.NewExoplanetClient(cfg.Exoplanet.URL)

	// Сервисы
	apodService := service.NewAPODService(mediaRepo, cacheRepo, nasaClient, service.APODConfig{
		WindowDays:  cfg.Ingest.WindowDays,
		Concurrency: cfg.Ingest.APODConcurrency,
		CallTimeout: cfg.Ingest.CallTimeout,
	})
	asteroidService := service.NewAsteroidService(asteroidRepo, cacheRepo, nasaClient, cfg.Ingest.WindowDays)
	solarService := service.NewSolarEventService(solarRepo, cacheRepo, nasaClient, cfg.Ingest.WindowDays)
	naturalService := service.NewNaturalEventService(naturalRepo, cacheRepo, eonetClient)
	marsService := service.NewMarsPhotoService(marsRepo, cacheRepo, nasaClient, cfg.Ingest.Rover)
	exoplanetService := service.NewExoplanetService(exoplanetRepo, cacheRepo, exoplanetClient)

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

	// Фоновый инжест (по умолчанию выключен — расписанием владеет cron)
	scheduler := worker.NewScheduler()
	if cfg.Workers.IngestEnabled {
		scheduler.AddWorker(worker.NewIngestWorker(runner, cfg.Workers.IngestInterval))
		log.Printf("Ingest worker enabled (interval: %v)", cfg.Workers.IngestInterval)
	}
	go scheduler.Start()
	defer scheduler.Stop()

	if cfg.App.Debug {
		gin.SetMode(gin.DebugMode)
		log.Println("Running in DEBUG mode")
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", cfg.App.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if !cfg.App.Debug {
		limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
		r.Use(middleware.RateLimitMiddleware(limiter))
		log.Printf("Rate limiting enabled: %d req/sec, burst: %d",
			cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// Хендлеры
	apodHandler := handlers.NewAPODHandler(apodService)
	asteroidHandler := handlers.NewAsteroidHandler(asteroidService, cfg.App.ExportDir)
	eventsHandler := handlers.NewEventsHandler(solarService, naturalService)
	exoplanetHandler := handlers.NewExoplanetHandler(exoplanetService)
	marsHandler := handlers.NewMarsHandler(marsService)
	systemHandler := handlers.NewSystemHandler(
		map[string]handlers.CountFunc{
			"media":          apodService.Count,
			"asteroids":      asteroidService.Count,
			"events":         solarService.Count,
			"natural_events": naturalService.Count,
			"exoplanets":     exoplanetService.Count,
			"mars_photos":    marsService.Count,
		},
		redisClient,
		runner,
		sourcesByName(sources),
	)

	api := r.Group("/api/v1")

	api.GET("/apod", apodHandler.List)
	api.GET("/apod/latest", apodHandler.Latest)
	api.GET("/apod/date/:date", apodHandler.ByDate)

	api.GET("/asteroids", asteroidHandler.List)
	api.GET("/asteroids/export", asteroidHandler.Export)

	api.GET("/solar-events", eventsHandler.ListSolar)
	api.GET("/natural-events", eventsHandler.ListNatural)

	api.GET("/exoplanets", exoplanetHandler.List)
	api.GET("/mars-photos", marsHandler.List)

	api.GET("/health", systemHandler.Health)
	api.GET("/system/stats", systemHandler.Stats)

	// Принудительный инжест только в debug-режиме
	if cfg.App.Debug {
		api.POST("/refresh", systemHandler.RunIngest)
		api.POST("/refresh/:source", systemHandler.RefreshSource)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost:%s", cfg.App.Port)
		log.Printf("API available at http://localhost:%s/api/v1", cfg.App.Port)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start:", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited properly")
}

func sourcesByName(sources []ingest.Source) map[string]ingest.Source {
	m := make(map[string]ingest.Source, len(sources))
	for _, s := range sources {
		m[s.Name()] = s
	}
	return m
}
