package workbook

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/horsefeed/internal/domain/models"
	"github.com/mamadbah2/horsefeed/internal/service/catalog"
)

func buildWorkbook(t *testing.T) *excelize.File {
	t.Helper()

	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })

	require.NoError(t, f.SetSheetName("Sheet1", "400 kg"))
	_, err := f.NewSheet("500 kg")
	require.NoError(t, err)

	sheets := map[string][]interface{}{"400 kg": {500.0, 16}, "500 kg": {630.0, 20}}
	for name, values := range sheets {
		require.NoError(t, f.SetSheetRow(name, "A1", &[]interface{}{"Zapotrzebowanie"}))
		require.NoError(t, f.SetSheetRow(name, "A2", &[]interface{}{"Kategoria", "Białko", "Ca"}))
		require.NoError(t, f.SetSheetRow(name, "A3", &[]interface{}{"", "g", "g"}))
		require.NoError(t, f.SetSheetRow(name, "A4", &[]interface{}{"Średnie", values[0], values[1]}))
	}

	return f
}

func TestOpenAndReadSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wymagania.xlsx")
	require.NoError(t, buildWorkbook(t).SaveAs(path))

	wb, err := Open(path)
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, "file:"+path, wb.ID())

	names, err := wb.SheetNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"400 kg", "500 kg"}, names)

	rows, err := wb.ReadSheet(context.Background(), "500 kg")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []interface{}{"Średnie", "630", "20"}, rows[3])
}

func TestReadSheetIgnoresNumberFormats(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Pasza", 16000.0, 0.125, 0.35}))

	thousands, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	require.NoError(t, err)
	twoPlaces, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	require.NoError(t, err)
	percent, err := f.NewStyle(&excelize.Style{NumFmt: 9})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Sheet1", "B1", "B1", thousands))
	require.NoError(t, f.SetCellStyle("Sheet1", "C1", "C1", twoPlaces))
	require.NoError(t, f.SetCellStyle("Sheet1", "D1", "D1", percent))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	wb, err := OpenReader("mem:styled", bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.ReadSheet(context.Background(), "Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Len(t, rows[0], 4)

	assert.Equal(t, models.Number(16000), models.ParseCell(rows[0][1]))
	assert.Equal(t, models.Number(0.125), models.ParseCell(rows[0][2]))
	assert.Equal(t, models.Number(0.35), models.ParseCell(rows[0][3]))
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "brak.xlsx"))
	assert.Error(t, err)
}

func TestWorkbookFeedsRequirementLoader(t *testing.T) {
	buf, err := buildWorkbook(t).WriteToBuffer()
	require.NoError(t, err)

	wb, err := OpenReader("mem:test", bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	tables, err := catalog.LoadRequirementTables(context.Background(), wb, nil)
	require.NoError(t, err)
	require.Equal(t, 2, tables.Len())

	tbl, _ := tables.Table(500)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, 630.0, tbl.Rows[0].Values[0].Value)
}

type fakeFetcher struct {
	body  []byte
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(context.Context, string) ([]byte, error) {
	f.calls++
	return f.body, f.err
}

func TestRemoteDownloadsOnListing(t *testing.T) {
	buf, err := buildWorkbook(t).WriteToBuffer()
	require.NoError(t, err)

	fetcher := &fakeFetcher{body: buf.Bytes()}
	remote := NewRemote("https://example.org/wymagania.xlsx", fetcher)
	assert.Equal(t, "url:https://example.org/wymagania.xlsx", remote.ID())

	rows, err := remote.ReadSheet(context.Background(), "400 kg")
	require.NoError(t, err)
	assert.Len(t, rows, 4)
	assert.Equal(t, 1, fetcher.calls)

	_, err = remote.SheetNames(context.Background())
	require.NoError(t, err)
	_, err = remote.ReadSheet(context.Background(), "500 kg")
	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.calls)
}

func TestRemoteFetchError(t *testing.T) {
	remote := NewRemote("https://example.org/x.xlsx", &fakeFetcher{err: errors.New("timeout")})

	_, err := remote.SheetNames(context.Background())
	assert.Error(t, err)
}

func TestRemoteCloseDropsDownloadedCopy(t *testing.T) {
	buf, err := buildWorkbook(t).WriteToBuffer()
	require.NoError(t, err)

	fetcher := &fakeFetcher{body: buf.Bytes()}
	remote := NewRemote("https://example.org/wymagania.xlsx", fetcher)
	require.NoError(t, remote.Close())

	_, err = remote.ReadSheet(context.Background(), "400 kg")
	require.NoError(t, err)
	require.NoError(t, remote.Close())

	_, err = remote.ReadSheet(context.Background(), "400 kg")
	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.calls)
}
