package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/horsefeed/internal/config"
)

func saveWorkbook(t *testing.T, name string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"banner"}))
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestOpenFileSources(t *testing.T) {
	cfg := &config.Config{
		Requirements: config.SourceConfig{Kind: config.SourceFile, Location: saveWorkbook(t, "wymagania.xlsx")},
		Feeds: config.FeedSourceConfig{
			SourceConfig: config.SourceConfig{Kind: config.SourceFile, Location: saveWorkbook(t, "pasze.xlsx")},
			Sheet:        "Sheet1",
			HeaderRow:    1,
			NameColumn:   "Nazwa paszy",
		},
	}

	sources, err := Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer sources.Close(context.Background())

	assert.Contains(t, sources.Requirements.ID(), "wymagania.xlsx")
	assert.Contains(t, sources.Feeds.ID(), "pasze.xlsx#Sheet1")
	assert.Equal(t, 1, sources.FeedOptions.HeaderRow)
}

func TestOpenHTTPSourceIsLazy(t *testing.T) {
	cfg := &config.Config{
		Requirements: config.SourceConfig{Kind: config.SourceHTTP, Location: "https://example.org/wymagania.xlsx"},
		Feeds: config.FeedSourceConfig{
			SourceConfig: config.SourceConfig{Kind: config.SourceHTTP, Location: "https://example.org/pasze.xlsx"},
		},
	}

	sources, err := Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "url:https://example.org/wymagania.xlsx", sources.Requirements.ID())
	assert.NoError(t, sources.Close(context.Background()))
}

func TestOpenFailures(t *testing.T) {
	good := saveWorkbook(t, "wymagania.xlsx")

	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{
			name: "missing requirements file",
			cfg: &config.Config{
				Requirements: config.SourceConfig{Kind: config.SourceFile, Location: filepath.Join(t.TempDir(), "brak.xlsx")},
			},
		},
		{
			name: "unsupported feeds kind",
			cfg: &config.Config{
				Requirements: config.SourceConfig{Kind: config.SourceFile, Location: good},
				Feeds:        config.FeedSourceConfig{SourceConfig: config.SourceConfig{Kind: "ftp"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(context.Background(), tt.cfg, nil)
			assert.Error(t, err)
		})
	}
}
