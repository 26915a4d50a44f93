package catalog

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/mamadbah2/horsefeed/internal/domain/models"
)

// Cache keeps parsed catalogs keyed by the identity of their sources so
// repeated evaluations never re-parse the workbooks.
type Cache struct {
	requirements Workbook
	feeds        Table
	feedOpts     FeedOptions
	logger       *zap.Logger

	mu       sync.RWMutex
	entries  map[string]entry
	inflight singleflight.Group
}

type entry struct {
	catalog  models.Catalog
	loadedAt time.Time
}

// NewCache wires a cache over the requirement workbook and the feed table.
func NewCache(requirements Workbook, feeds Table, feedOpts FeedOptions, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		requirements: requirements,
		feeds:        feeds,
		feedOpts:     feedOpts,
		logger:       logger,
		entries:      make(map[string]entry),
	}
}

// Key identifies the pair of sources.
func (c *Cache) Key() string {
	return c.requirements.ID() + "|" + c.feeds.ID()
}

// Get returns the cached catalog, loading it on first use.
func (c *Cache) Get(ctx context.Context) (models.Catalog, error) {
	key := c.Key()

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return e.catalog, nil
	}

	v, err, _ := c.inflight.Do(key, func() (interface{}, error) {
		c.mu.RLock()
		e, ok := c.entries[key]
		c.mu.RUnlock()
		if ok {
			return e.catalog, nil
		}
		return c.load(ctx, key)
	})
	if err != nil {
		return models.Catalog{}, err
	}
	return v.(models.Catalog), nil
}

// Reload re-parses both sources, even while a first Get is still loading.
// Concurrent reloads share one parse. On failure the previous catalog stays
// in place.
func (c *Cache) Reload(ctx context.Context) error {
	key := c.Key()
	_, err, _ := c.inflight.Do("reload|"+key, func() (interface{}, error) {
		return c.load(ctx, key)
	})
	return err
}

// LoadedAt reports when the current catalog was parsed.
func (c *Cache) LoadedAt() (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[c.Key()]
	return e.loadedAt, ok
}

func (c *Cache) load(ctx context.Context, key string) (models.Catalog, error) {
	start := time.Now()

	var catalog models.Catalog
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tables, err := LoadRequirementTables(gctx, c.requirements, c.logger)
		if err != nil {
			return err
		}
		catalog.Requirements = tables
		return nil
	})
	g.Go(func() error {
		feeds, err := LoadFeeds(gctx, c.feeds, c.feedOpts, c.logger)
		if err != nil {
			return err
		}
		catalog.Feeds = feeds
		return nil
	})
	if err := g.Wait(); err != nil {
		c.logger.Error("catalog load failed", zap.String("key", key), zap.Error(err))
		return models.Catalog{}, err
	}

	c.mu.Lock()
	c.entries[key] = entry{catalog: catalog, loadedAt: time.Now()}
	c.mu.Unlock()

	c.logger.Info("catalog loaded",
		zap.String("key", key),
		zap.Stringer("feed_options", c.feedOpts),
		zap.Int("weight_classes", catalog.Requirements.Len()),
		zap.Int("feeds", catalog.Feeds.Len()),
		zap.Duration("duration", time.Since(start)))

	return catalog, nil
}
