package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// Workbook is a set of named sheets of loosely typed cells.
type Workbook interface {
	ID() string
	SheetNames(ctx context.Context) ([]string, error)
	ReadSheet(ctx context.Context, name string) ([][]interface{}, error)
}

// Table is a single sheet of loosely typed cells.
type Table interface {
	ID() string
	ReadRows(ctx context.Context) ([][]interface{}, error)
}

// ErrEmptyWorkbook indicates a workbook without sheets.
var ErrEmptyWorkbook = errors.New("workbook has no sheets")

type sheetTable struct {
	workbook Workbook
	sheet    string
}

// SheetOf exposes one sheet of a workbook as a Table. An empty sheet name
// selects the first sheet. Every read lists the workbook first, which
// refreshes remote workbooks.
func SheetOf(workbook Workbook, sheet string) Table {
	return &sheetTable{workbook: workbook, sheet: sheet}
}

func (s *sheetTable) ID() string {
	if s.sheet == "" {
		return s.workbook.ID()
	}
	return fmt.Sprintf("%s#%s", s.workbook.ID(), s.sheet)
}

func (s *sheetTable) ReadRows(ctx context.Context) ([][]interface{}, error) {
	names, err := s.workbook.SheetNames(ctx)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, ErrEmptyWorkbook
	}

	sheet := s.sheet
	if sheet == "" {
		sheet = names[0]
	} else if !slices.Contains(names, sheet) {
		return nil, fmt.Errorf("sheet %q not found", sheet)
	}
	return s.workbook.ReadSheet(ctx, sheet)
}
