package workbook

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// File is an .xlsx workbook held in memory.
type File struct {
	id   string
	file *excelize.File
}

// Open reads a workbook from disk.
func Open(path string) (*File, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return &File{id: "file:" + path, file: f}, nil
}

// OpenReader reads a workbook from r. id names the origin for caching and errors.
func OpenReader(id string, r io.Reader) (*File, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", id, err)
	}
	return &File{id: id, file: f}, nil
}

// ID identifies the workbook origin.
func (f *File) ID() string {
	return f.id
}

// SheetNames lists sheets in workbook order.
func (f *File) SheetNames(_ context.Context) ([]string, error) {
	return f.file.GetSheetList(), nil
}

// ReadSheet returns the stored cell values of a sheet. Number formats are not
// applied, so "#,##0" or "0.00" styled cells keep their full value.
func (f *File) ReadSheet(ctx context.Context, name string) ([][]interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := f.file.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", name, err)
	}

	out := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		out[i] = cells
	}
	return out, nil
}

// Close releases the workbook.
func (f *File) Close() error {
	return f.file.Close()
}
