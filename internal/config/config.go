package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// SourceKind selects where a reference table is read from.
type SourceKind string

const (
	SourceFile    SourceKind = "file"
	SourceHTTP    SourceKind = "http"
	SourceSheets  SourceKind = "sheets"
	SourceMongoDB SourceKind = "mongodb"
)

// Config represents the full application configuration surface.
type Config struct {
	Server       ServerConfig
	Auth         AuthConfig
	Session      SessionConfig
	Requirements SourceConfig
	Feeds        FeedSourceConfig
	Sheets       SheetsConfig
	Download     DownloadConfig
	MongoDB      MongoDBConfig
	Catalog      CatalogConfig
	Log          LogConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// AuthConfig holds the password gate.
type AuthConfig struct {
	AccessPassword string
}

// SessionConfig controls how long an idle session stays open.
type SessionConfig struct {
	IdleTTL   time.Duration
	SweepCron string
}

// SourceConfig locates one reference workbook. Location is a path, a URL
// or a spreadsheet id depending on Kind.
type SourceConfig struct {
	Kind     SourceKind
	Location string
}

// FeedSourceConfig locates the feed composition table.
type FeedSourceConfig struct {
	SourceConfig
	Sheet      string
	HeaderRow  int
	NameColumn string
}

// SheetsConfig contains configuration required to interact with Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
}

// DownloadConfig holds options for workbooks fetched over HTTP.
type DownloadConfig struct {
	Timeout time.Duration
	Token   string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI        string
	DBName     string
	Collection string
}

// CatalogConfig holds reference data refresh settings.
type CatalogConfig struct {
	RefreshCron string
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	headerRow, err := getenvInt("FEEDS_HEADER_ROW", 1)
	if err != nil {
		return nil, err
	}
	timeout, err := getenvDuration("DOWNLOAD_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	idleTTL, err := getenvDuration("SESSION_IDLE_TTL", 12*time.Hour)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Auth: AuthConfig{
			AccessPassword: os.Getenv("ACCESS_PASSWORD"),
		},
		Session: SessionConfig{
			IdleTTL:   idleTTL,
			SweepCron: getenvWithDefault("SESSION_SWEEP_CRON", "@every 10m"),
		},
		Requirements: SourceConfig{
			Kind:     SourceKind(getenvWithDefault("REQUIREMENTS_SOURCE", string(SourceFile))),
			Location: getenvWithDefault("REQUIREMENTS_LOCATION", "konie wg wag wymagania zywieniowe.xlsx"),
		},
		Feeds: FeedSourceConfig{
			SourceConfig: SourceConfig{
				Kind:     SourceKind(getenvWithDefault("FEEDS_SOURCE", string(SourceFile))),
				Location: getenvWithDefault("FEEDS_LOCATION", "pasze tresciwe i obetosciowe do aplikacji.xlsx"),
			},
			Sheet:      os.Getenv("FEEDS_SHEET"),
			HeaderRow:  headerRow,
			NameColumn: getenvWithDefault("FEED_NAME_COLUMN", "Nazwa paszy"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
		},
		Download: DownloadConfig{
			Timeout: timeout,
			Token:   os.Getenv("DOWNLOAD_TOKEN"),
		},
		MongoDB: MongoDBConfig{
			URI:        os.Getenv("MONGODB_URI"),
			DBName:     getenvWithDefault("MONGODB_DB_NAME", "horsefeed"),
			Collection: getenvWithDefault("MONGODB_FEEDS_COLLECTION", "feeds"),
		},
		Catalog: CatalogConfig{
			RefreshCron: os.Getenv("CATALOG_REFRESH_CRON"),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.Auth.AccessPassword == "" {
		return errors.New("ACCESS_PASSWORD must be provided")
	}

	if c.Session.IdleTTL < 0 {
		return errors.New("SESSION_IDLE_TTL must not be negative")
	}

	switch c.Requirements.Kind {
	case SourceFile, SourceHTTP, SourceSheets:
	case SourceMongoDB:
		return errors.New("REQUIREMENTS_SOURCE does not support mongodb")
	default:
		return fmt.Errorf("unsupported REQUIREMENTS_SOURCE %q", c.Requirements.Kind)
	}
	if c.Requirements.Location == "" {
		return errors.New("REQUIREMENTS_LOCATION must be provided")
	}

	switch c.Feeds.Kind {
	case SourceFile, SourceHTTP, SourceSheets:
		if c.Feeds.Location == "" {
			return errors.New("FEEDS_LOCATION must be provided")
		}
	case SourceMongoDB:
		if c.MongoDB.URI == "" {
			return errors.New("MONGODB_URI must be provided when FEEDS_SOURCE is mongodb")
		}
	default:
		return fmt.Errorf("unsupported FEEDS_SOURCE %q", c.Feeds.Kind)
	}

	if c.Feeds.HeaderRow < 0 {
		return errors.New("FEEDS_HEADER_ROW must not be negative")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getenvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}
