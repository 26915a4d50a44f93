package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/horsefeed/internal/domain/models"
)

func feedSheet() [][]interface{} {
	return [][]interface{}{
		{"Pasze treściwe i objętościowe"},
		{"Nazwa paszy", "Rodzaj", "Białko", "Ca", "Se"},
		{"Owies", "treściwa", "98,3", 0.9, "None"},
		{"", "", "", "", ""},
		{"Siano łąkowe", "objętościowa", 76.1, "4,6", "0,03"},
		{"Owies", "duplikat", 1, 1, 1},
		{nil, "bez nazwy", 5},
		{"Marchew", "soczysta", "brak"},
	}
}

func TestParseFeedRows(t *testing.T) {
	feeds, err := ParseFeedRows(feedSheet(), DefaultFeedOptions())
	require.NoError(t, err)

	assert.Equal(t, "Nazwa paszy", feeds.NameColumn)
	assert.Equal(t, []string{"Białko", "Ca", "Se"}, feeds.Columns)
	assert.Equal(t, []string{models.UnselectedFeed, "Marchew", "Owies", "Siano łąkowe"}, feeds.Options())

	owies, ok := feeds.Lookup("Owies")
	require.True(t, ok)
	assert.Equal(t, "treściwa", owies.Descriptor)
	assert.Equal(t, []models.NutrientValue{
		{Nutrient: "Białko", Value: models.Number(98.3)},
		{Nutrient: "Ca", Value: models.Number(0.9)},
		{Nutrient: "Se", Value: models.Missing()},
	}, owies.Nutrients)

	marchew, ok := feeds.Lookup("Marchew")
	require.True(t, ok)
	require.Len(t, marchew.Nutrients, 3)
	for _, n := range marchew.Nutrients {
		assert.False(t, n.Value.Valid, n.Nutrient)
	}
}

func TestParseFeedRowsNameColumnElsewhere(t *testing.T) {
	rows := [][]interface{}{
		{"Lp.", "Nazwa paszy", "Białko"},
		{1, "Owies", 98},
	}

	feeds, err := ParseFeedRows(rows, FeedOptions{HeaderRow: 0, NameColumn: "Nazwa paszy"})
	require.NoError(t, err)

	owies, ok := feeds.Lookup("Owies")
	require.True(t, ok)
	assert.Equal(t, "1", owies.Descriptor)
	assert.Equal(t, []models.NutrientValue{{Nutrient: "Białko", Value: models.Number(98)}}, owies.Nutrients)
}

func TestParseFeedRowsUnknownNameColumnFallsBackToFirst(t *testing.T) {
	rows := [][]interface{}{
		{"Pasza", "Typ", "Ca"},
		{"Owies", "t", 1},
	}

	feeds, err := ParseFeedRows(rows, FeedOptions{HeaderRow: 0, NameColumn: "Nazwa paszy"})
	require.NoError(t, err)
	_, ok := feeds.Lookup("Owies")
	assert.True(t, ok)
}

func TestParseFeedRowsMissingHeader(t *testing.T) {
	_, err := ParseFeedRows([][]interface{}{{"banner"}}, DefaultFeedOptions())
	assert.ErrorIs(t, err, errMissingHeader)
}

func TestLoadFeedsFromWorkbookSheet(t *testing.T) {
	wb := &memWorkbook{
		id:     "mem:feeds",
		order:  []string{"Pasze", "Notatki"},
		sheets: map[string][][]interface{}{"Pasze": feedSheet()},
	}

	feeds, err := LoadFeeds(context.Background(), SheetOf(wb, ""), DefaultFeedOptions(), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, feeds.Len())

	_, err = LoadFeeds(context.Background(), SheetOf(wb, "Brak"), DefaultFeedOptions(), nil)
	require.Error(t, err)
	assert.True(t, models.IsDataLoadError(err))
}

func TestSheetOfEmptyWorkbook(t *testing.T) {
	wb := &memWorkbook{id: "mem:empty"}

	_, err := SheetOf(wb, "").ReadRows(context.Background())
	assert.ErrorIs(t, err, ErrEmptyWorkbook)
	assert.Equal(t, "mem:empty#Pasze", SheetOf(wb, "Pasze").ID())
}
