package db

import (
	"fmt"
	"regexp"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"fleet-timeline-service/internal/config"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

// ValidIdentifier reports whether name can be interpolated into SQL as a table name.
func ValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

func New(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.Environment == "development" {
		logLevel = gormlogger.Info
	}

	database, err := gorm.Open(postgres.Open(cfg.DB.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	if cfg.DB.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	}
	if cfg.DB.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	}
	if lifetime, err := time.ParseDuration(cfg.DB.ConnMaxLifetime); err == nil {
		sqlDB.SetConnMaxLifetime(lifetime)
	}

	if cfg.DB.RunMigrations {
		tables := []string{
			cfg.Collections.Vehicles,
			cfg.Collections.Contracts,
			cfg.Collections.Maintenance,
			cfg.Collections.Accidents,
			cfg.Collections.Fines,
			cfg.Collections.Events,
		}
		if err := runMigrations(database, tables); err != nil {
			return nil, err
		}
		log.Info().Int("tables", len(tables)).Msg("plate key indexes ensured")
	}

	return database, nil
}
