package database

import (
	"fmt"
	"log"
	"time"

	"solarscope/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func Connect(config Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(config.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// Настройка пула соединений
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Database connected successfully")
	return db, nil
}

// Validate проверяет живость соединения (SELECT 1 через Ping).
// Если соединение умерло — одна попытка переподключения, после неё ошибка
// фатальна для текущего запуска.
func Validate(db *gorm.DB, config Config) (*gorm.DB, error) {
	if db != nil {
		sqlDB, err := db.DB()
		if err == nil {
			if err := sqlDB.Ping(); err == nil {
				return db, nil
			}
		}
		log.Println("Database connection lost, reconnecting...")
	}

	fresh, err := Connect(config)
	if err != nil {
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	return fresh, nil
}

func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		// Расширение для uuid_generate_v4 (pk natural_events)
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
			return fmt.Errorf("failed to create uuid extension: %w", err)
		}
	}

	// Автомиграция моделей; уникальные индексы естественных ключей
	// объявлены тегами в моделях
	err := db.AutoMigrate(
		&models.Media{},
		&models.Asteroid{},
		&models.SolarEvent{},
		&models.NaturalEvent{},
		&models.Exoplanet{},
		&models.MarsPhoto{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate models: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migration completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	// Индексы под читающие запросы презентационного слоя
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_media_date ON media(date DESC)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_asteroids_approach_date ON asteroids(approach_date DESC)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_events_start_time ON events(start_time DESC)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_natural_events_date ON natural_events(date DESC)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_mars_photos_earth_date ON mars_photos(earth_date DESC)").Error; err != nil {
		return err
	}
	return nil
}
