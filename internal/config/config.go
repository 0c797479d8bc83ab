package config

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverFile     = "file"
)

type HTTPConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
	RunMigrations   bool
}

type MongoConfig struct {
	URI      string
	Database string
}

type StoreConfig struct {
	Driver   string
	FactsDir string
}

type CollectionConfig struct {
	Vehicles    string
	Contracts   string
	Maintenance string
	Accidents   string
	Fines       string
	Events      string
}

type TimelineConfig struct {
	Timezone        string
	Location        *time.Location
	ExportDelimiter rune
}

type Config struct {
	Environment string
	LogLevel    string
	HTTP        HTTPConfig
	Store       StoreConfig
	DB          DBConfig
	Mongo       MongoConfig
	Collections CollectionConfig
	Timeline    TimelineConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")

	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 7090)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("STORE_DRIVER", DriverPostgres)
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("DB_RUN_MIGRATIONS", true)
	v.SetDefault("MONGO_DATABASE", "fleet")
	v.SetDefault("FACTS_DIR", "./data")
	v.SetDefault("COLLECTION_VEHICLES", "frota")
	v.SetDefault("COLLECTION_CONTRACTS", "contratos_locacao")
	v.SetDefault("COLLECTION_MAINTENANCE", "manutencoes")
	v.SetDefault("COLLECTION_ACCIDENTS", "sinistros")
	v.SetDefault("COLLECTION_FINES", "multas")
	v.SetDefault("COLLECTION_EVENTS", "eventos")
	v.SetDefault("TIMELINE_TIMEZONE", "America/Sao_Paulo")
	v.SetDefault("EXPORT_DELIMITER", ";")

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		HTTP: HTTPConfig{
			Host:           v.GetString("HTTP_HOST"),
			Port:           v.GetInt("HTTP_PORT"),
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Store: StoreConfig{
			Driver:   strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
			FactsDir: v.GetString("FACTS_DIR"),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
			RunMigrations:   v.GetBool("DB_RUN_MIGRATIONS"),
		},
		Mongo: MongoConfig{
			URI:      v.GetString("MONGO_URI"),
			Database: v.GetString("MONGO_DATABASE"),
		},
		Collections: CollectionConfig{
			Vehicles:    v.GetString("COLLECTION_VEHICLES"),
			Contracts:   v.GetString("COLLECTION_CONTRACTS"),
			Maintenance: v.GetString("COLLECTION_MAINTENANCE"),
			Accidents:   v.GetString("COLLECTION_ACCIDENTS"),
			Fines:       v.GetString("COLLECTION_FINES"),
			Events:      v.GetString("COLLECTION_EVENTS"),
		},
		Timeline: TimelineConfig{
			Timezone: v.GetString("TIMELINE_TIMEZONE"),
		},
	}

	if err := validate(cfg, v.GetString("EXPORT_DELIMITER")); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config, delimiter string) error {
	switch cfg.Store.Driver {
	case DriverPostgres:
		if cfg.DB.DSN == "" {
			return fmt.Errorf("DB_DSN is required for STORE_DRIVER=%s", DriverPostgres)
		}
		if _, err := time.ParseDuration(cfg.DB.ConnMaxLifetime); err != nil {
			return fmt.Errorf("invalid DB_CONN_MAX_LIFETIME %q: %w", cfg.DB.ConnMaxLifetime, err)
		}
	case DriverMongo:
		if cfg.Mongo.URI == "" {
			return fmt.Errorf("MONGO_URI is required for STORE_DRIVER=%s", DriverMongo)
		}
		if cfg.Mongo.Database == "" {
			return fmt.Errorf("MONGO_DATABASE is required for STORE_DRIVER=%s", DriverMongo)
		}
	case DriverFile:
		if cfg.Store.FactsDir == "" {
			return fmt.Errorf("FACTS_DIR is required for STORE_DRIVER=%s", DriverFile)
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", cfg.Store.Driver)
	}

	loc, err := time.LoadLocation(cfg.Timeline.Timezone)
	if err != nil {
		return fmt.Errorf("invalid TIMELINE_TIMEZONE %q: %w", cfg.Timeline.Timezone, err)
	}
	cfg.Timeline.Location = loc

	if utf8.RuneCountInString(delimiter) != 1 {
		return fmt.Errorf("EXPORT_DELIMITER must be a single character, got %q", delimiter)
	}
	cfg.Timeline.ExportDelimiter, _ = utf8.DecodeRuneInString(delimiter)

	return nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
