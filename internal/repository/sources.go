package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/horsefeed/internal/config"
	"github.com/mamadbah2/horsefeed/internal/repository/mongodb"
	"github.com/mamadbah2/horsefeed/internal/repository/sheets"
	"github.com/mamadbah2/horsefeed/internal/repository/workbook"
	"github.com/mamadbah2/horsefeed/internal/service/catalog"
	"github.com/mamadbah2/horsefeed/pkg/clients/download"
)

// Sources bundles the opened reference data sources.
type Sources struct {
	Requirements catalog.Workbook
	Feeds        catalog.Table
	FeedOptions  catalog.FeedOptions

	closers []func(context.Context) error
}

// Close releases connections and open files.
func (s *Sources) Close(ctx context.Context) error {
	var firstErr error
	for _, c := range s.closers {
		if err := c(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Open builds the requirement workbook and feed table described by cfg.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Sources, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Sources{}

	reqs, err := s.openWorkbook(ctx, cfg, cfg.Requirements, logger.Named("requirements"))
	if err != nil {
		return nil, fmt.Errorf("open requirements source: %w", err)
	}
	s.Requirements = reqs

	s.FeedOptions = catalog.FeedOptions{HeaderRow: cfg.Feeds.HeaderRow, NameColumn: cfg.Feeds.NameColumn}

	if cfg.Feeds.Kind == config.SourceMongoDB {
		repo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName, cfg.MongoDB.Collection)
		if err != nil {
			_ = s.Close(ctx)
			return nil, fmt.Errorf("open feeds source: %w", err)
		}
		s.closers = append(s.closers, repo.Close)
		s.Feeds = repo
		// Documents carry their own keys; the header is synthesized as row 0.
		s.FeedOptions.HeaderRow = 0
		return s, nil
	}

	feeds, err := s.openWorkbook(ctx, cfg, cfg.Feeds.SourceConfig, logger.Named("feeds"))
	if err != nil {
		_ = s.Close(ctx)
		return nil, fmt.Errorf("open feeds source: %w", err)
	}
	s.Feeds = catalog.SheetOf(feeds, cfg.Feeds.Sheet)

	return s, nil
}

func (s *Sources) openWorkbook(ctx context.Context, cfg *config.Config, src config.SourceConfig, logger *zap.Logger) (catalog.Workbook, error) {
	switch src.Kind {
	case config.SourceFile:
		f, err := workbook.Open(src.Location)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func(context.Context) error { return f.Close() })
		return f, nil
	case config.SourceHTTP:
		client := download.NewClient(cfg.Download.Timeout, cfg.Download.Token)
		remote := workbook.NewRemote(src.Location, client)
		s.closers = append(s.closers, func(context.Context) error { return remote.Close() })
		return remote, nil
	case config.SourceSheets:
		return sheets.NewGoogleSheetRepository(ctx, cfg.Sheets.CredentialsPath, src.Location, logger)
	default:
		return nil, fmt.Errorf("unsupported source kind %q", src.Kind)
	}
}
