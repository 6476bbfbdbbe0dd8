package database

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"inkpost/config"
	"inkpost/models"
)

// Connect opens the relational store selected by cfg.StoreDriver.
func Connect(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		return Open(postgres.Open(cfg.DatabaseURL()), log)
	case config.StoreSQLite:
		return OpenSQLite(cfg.SQLitePath, log)
	default:
		return nil, fmt.Errorf("store driver %q is not relational", cfg.StoreDriver)
	}
}

// OpenSQLite opens a sqlite file, or an in-memory database for ":memory:".
// Writes are serialized through a single connection.
func OpenSQLite(path string, log zerolog.Logger) (*gorm.DB, error) {
	db, err := Open(sqlite.Open(path), log)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

func Open(dialector gorm.Dialector, log zerolog.Logger) (*gorm.DB, error) {
	gormLog := log.With().Str("component", "gorm").Logger()

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: logger.New(&gormLog, logger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  gormLogLevel(log.GetLevel()),
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info().Str("dialect", dialector.Name()).Msg("database connected")
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Blog{},
		&models.BlogHashtag{},
		&models.BlogLike{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func gormLogLevel(level zerolog.Level) logger.LogLevel {
	switch {
	case level <= zerolog.DebugLevel:
		return logger.Info
	case level <= zerolog.WarnLevel:
		return logger.Warn
	case level <= zerolog.ErrorLevel:
		return logger.Error
	default:
		return logger.Silent
	}
}
