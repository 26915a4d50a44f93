package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/horsefeed/internal/domain/models"
)

// DefaultFeedNameColumn is the feed name header of the composition workbook.
const DefaultFeedNameColumn = "Nazwa paszy"

// Leading metadata columns of the feed table: name and descriptor.
const feedMetadataColumns = 2

// FeedOptions describes the layout of a feed composition table.
type FeedOptions struct {
	// HeaderRow is the zero-based index of the header row.
	HeaderRow  int
	NameColumn string
}

// DefaultFeedOptions matches the composition workbook: a banner row, then the header.
func DefaultFeedOptions() FeedOptions {
	return FeedOptions{HeaderRow: 1, NameColumn: DefaultFeedNameColumn}
}

// LoadFeeds reads and parses the feed composition table.
func LoadFeeds(ctx context.Context, source Table, opts FeedOptions, logger *zap.Logger) (models.FeedCatalog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	rows, err := source.ReadRows(ctx)
	if err != nil {
		return models.FeedCatalog{}, models.NewDataLoadError(source.ID(), err)
	}

	feeds, err := ParseFeedRows(rows, opts)
	if err != nil {
		return models.FeedCatalog{}, models.NewDataLoadError(source.ID(), err)
	}

	logger.Debug("feed table parsed", zap.String("source", source.ID()), zap.Int("feeds", feeds.Len()))
	return feeds, nil
}

// ParseFeedRows builds a feed catalog from raw rows.
func ParseFeedRows(rows [][]interface{}, opts FeedOptions) (models.FeedCatalog, error) {
	if opts.HeaderRow < 0 || len(rows) <= opts.HeaderRow {
		return models.FeedCatalog{}, errMissingHeader
	}

	width := 0
	for _, row := range rows[opts.HeaderRow:] {
		if len(row) > width {
			width = len(row)
		}
	}
	if width == 0 {
		return models.FeedCatalog{}, errMissingHeader
	}
	header := headerLabels(rows[opts.HeaderRow], width)

	nameIdx := 0
	if opts.NameColumn != "" {
		for i, label := range header {
			if label == opts.NameColumn {
				nameIdx = i
				break
			}
		}
	}

	descIdx := -1
	for i := 0; i < feedMetadataColumns && i < width; i++ {
		if i != nameIdx {
			descIdx = i
			break
		}
	}

	var nutrientIdx []int
	var columns []string
	for i := feedMetadataColumns; i < width; i++ {
		if i == nameIdx {
			continue
		}
		nutrientIdx = append(nutrientIdx, i)
		columns = append(columns, header[i])
	}

	var entries []models.FeedEntry
	for _, raw := range rows[opts.HeaderRow+1:] {
		if isBlankRow(raw) {
			continue
		}
		name := cellAt(raw, nameIdx)
		if name == "" {
			continue
		}

		entry := models.FeedEntry{
			Name:      name,
			Nutrients: make([]models.NutrientValue, len(nutrientIdx)),
		}
		if descIdx >= 0 {
			entry.Descriptor = cellAt(raw, descIdx)
		}
		for j, idx := range nutrientIdx {
			value := models.Missing()
			if idx < len(raw) {
				value = models.ParseCell(raw[idx])
			}
			entry.Nutrients[j] = models.NutrientValue{Nutrient: header[idx], Value: value}
		}
		entries = append(entries, entry)
	}

	return models.NewFeedCatalog(header[nameIdx], columns, entries), nil
}

func (o FeedOptions) String() string {
	return fmt.Sprintf("header_row=%d name_column=%q", o.HeaderRow, o.NameColumn)
}
