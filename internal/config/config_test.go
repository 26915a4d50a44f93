package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"APP_PORT", "ACCESS_PASSWORD",
	"REQUIREMENTS_SOURCE", "REQUIREMENTS_LOCATION",
	"FEEDS_SOURCE", "FEEDS_LOCATION", "FEEDS_SHEET", "FEEDS_HEADER_ROW", "FEED_NAME_COLUMN",
	"GOOGLE_SHEETS_CREDENTIALS_PATH", "DOWNLOAD_TIMEOUT", "DOWNLOAD_TOKEN",
	"MONGODB_URI", "MONGODB_DB_NAME", "MONGODB_FEEDS_COLLECTION",
	"CATALOG_REFRESH_CRON", "LOG_LEVEL", "SESSION_IDLE_TTL", "SESSION_SWEEP_CRON",
}

// clearEnv unsets every config key for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("ACCESS_PASSWORD", "siano")

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, SourceFile, cfg.Requirements.Kind)
	assert.Equal(t, "konie wg wag wymagania zywieniowe.xlsx", cfg.Requirements.Location)
	assert.Equal(t, SourceFile, cfg.Feeds.Kind)
	assert.Equal(t, 1, cfg.Feeds.HeaderRow)
	assert.Equal(t, "Nazwa paszy", cfg.Feeds.NameColumn)
	assert.Equal(t, 30*time.Second, cfg.Download.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Catalog.RefreshCron)
	assert.Equal(t, 12*time.Hour, cfg.Session.IdleTTL)
	assert.Equal(t, "@every 10m", cfg.Session.SweepCron)
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	content := "ACCESS_PASSWORD=owies\n" +
		"REQUIREMENTS_SOURCE=http\n" +
		"REQUIREMENTS_LOCATION=https://example.org/wymagania.xlsx\n" +
		"FEEDS_SOURCE=mongodb\n" +
		"MONGODB_URI=mongodb://localhost:27017\n" +
		"FEEDS_HEADER_ROW=0\n" +
		"DOWNLOAD_TIMEOUT=5s\n" +
		"CATALOG_REFRESH_CRON=0 */6 * * *\n" +
		"SESSION_IDLE_TTL=45m\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "owies", cfg.Auth.AccessPassword)
	assert.Equal(t, SourceHTTP, cfg.Requirements.Kind)
	assert.Equal(t, SourceMongoDB, cfg.Feeds.Kind)
	assert.Equal(t, 0, cfg.Feeds.HeaderRow)
	assert.Equal(t, 5*time.Second, cfg.Download.Timeout)
	assert.Equal(t, "0 */6 * * *", cfg.Catalog.RefreshCron)
	assert.Equal(t, "feeds", cfg.MongoDB.Collection)
	assert.Equal(t, 45*time.Minute, cfg.Session.IdleTTL)
}

func TestLoadRejectsMalformedNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("ACCESS_PASSWORD", "siano")

	t.Setenv("FEEDS_HEADER_ROW", "first")
	_, err := Load(missingEnvFile(t))
	assert.Error(t, err)

	t.Setenv("FEEDS_HEADER_ROW", "1")
	t.Setenv("DOWNLOAD_TIMEOUT", "soon")
	_, err = Load(missingEnvFile(t))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:       ServerConfig{Port: "8080"},
			Auth:         AuthConfig{AccessPassword: "siano"},
			Requirements: SourceConfig{Kind: SourceFile, Location: "wymagania.xlsx"},
			Feeds:        FeedSourceConfig{SourceConfig: SourceConfig{Kind: SourceFile, Location: "pasze.xlsx"}, HeaderRow: 1},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing password", func(c *Config) { c.Auth.AccessPassword = "" }},
		{"requirements from mongodb", func(c *Config) { c.Requirements.Kind = SourceMongoDB }},
		{"unknown requirements source", func(c *Config) { c.Requirements.Kind = "ftp" }},
		{"missing requirements location", func(c *Config) { c.Requirements.Location = "" }},
		{"mongodb feeds without uri", func(c *Config) { c.Feeds.Kind = SourceMongoDB }},
		{"missing feeds location", func(c *Config) { c.Feeds.Location = "" }},
		{"negative header row", func(c *Config) { c.Feeds.HeaderRow = -1 }},
		{"negative idle ttl", func(c *Config) { c.Session.IdleTTL = -time.Minute }},
	}

	require.NoError(t, valid().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	var nilCfg *Config
	assert.Error(t, nilCfg.Validate())
}
