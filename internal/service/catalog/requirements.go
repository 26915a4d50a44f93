package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/mamadbah2/horsefeed/internal/domain/models"
)

const (
	requirementHeaderRow = 1
	// The row under the header holds units and is not data.
	requirementDataStart = 3
)

var (
	errNoWeightSheets = errors.New("no sheet identifier carries a weight in kg")
	errMissingHeader  = errors.New("missing header row")
)

// LoadRequirementTables parses every weight-bearing sheet of the workbook.
func LoadRequirementTables(ctx context.Context, source Workbook, logger *zap.Logger) (models.RequirementTables, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	names, err := source.SheetNames(ctx)
	if err != nil {
		return models.RequirementTables{}, models.NewDataLoadError(source.ID(), err)
	}

	tables := make(map[models.WeightClass]models.RequirementTable)
	sheetFor := make(map[models.WeightClass]string)
	for _, name := range names {
		weight, ok := WeightFromSheetName(name)
		if !ok {
			logger.Debug("skip sheet without weight", zap.String("sheet", name))
			continue
		}
		if prev, dup := sheetFor[weight]; dup {
			return models.RequirementTables{}, models.NewDataLoadError(source.ID(),
				fmt.Errorf("sheets %q and %q both map to %d kg", prev, name, weight))
		}

		rows, err := source.ReadSheet(ctx, name)
		if err != nil {
			return models.RequirementTables{}, models.NewDataLoadError(source.ID(), fmt.Errorf("read sheet %s: %w", name, err))
		}

		table, err := ParseRequirementSheet(rows)
		if err != nil {
			return models.RequirementTables{}, models.NewDataLoadError(source.ID(), fmt.Errorf("sheet %s: %w", name, err))
		}

		tables[weight] = table
		sheetFor[weight] = name
		logger.Debug("requirement sheet parsed",
			zap.String("sheet", name),
			zap.Int("weight", int(weight)),
			zap.Int("rows", len(table.Rows)))
	}

	if len(tables) == 0 {
		return models.RequirementTables{}, models.NewDataLoadError(source.ID(), errNoWeightSheets)
	}

	result := models.NewRequirementTables(tables)
	if err := ValidateSchema(result); err != nil {
		return models.RequirementTables{}, models.NewDataLoadError(source.ID(), err)
	}

	return result, nil
}

// WeightFromSheetName extracts the kilogram class from identifiers such as "500 kg".
func WeightFromSheetName(name string) (models.WeightClass, bool) {
	if !strings.Contains(strings.ToLower(name), "kg") {
		return 0, false
	}

	var digits strings.Builder
	for _, r := range name {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, false
	}

	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0, false
	}
	return models.WeightClass(n), true
}

// ParseRequirementSheet turns raw sheet rows into a table: row 0 is a banner,
// row 1 the header, row 2 units; data follows. Fully empty rows are dropped.
func ParseRequirementSheet(rows [][]interface{}) (models.RequirementTable, error) {
	if len(rows) <= requirementHeaderRow {
		return models.RequirementTable{}, errMissingHeader
	}

	width := 0
	for _, row := range rows[requirementHeaderRow:] {
		if len(row) > width {
			width = len(row)
		}
	}
	if width == 0 {
		return models.RequirementTable{}, errMissingHeader
	}

	header := headerLabels(rows[requirementHeaderRow], width)
	table := models.RequirementTable{
		LabelColumn: header[0],
		Columns:     header[1:],
	}

	if len(rows) <= requirementDataStart {
		return table, nil
	}

	for _, raw := range rows[requirementDataStart:] {
		if isBlankRow(raw) {
			continue
		}
		row := models.RequirementRow{
			Label:  cellAt(raw, 0),
			Values: make([]models.Cell, width-1),
		}
		for i := 1; i < width; i++ {
			if i < len(raw) {
				row.Values[i-1] = models.ParseCell(raw[i])
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// ValidateSchema checks that every weight class shares columns and row labels,
// so that interpolation pairs matching cells.
func ValidateSchema(tables models.RequirementTables) error {
	weights := tables.Weights()
	if len(weights) < 2 {
		return nil
	}

	ref, _ := tables.Table(weights[0])
	for _, w := range weights[1:] {
		t, _ := tables.Table(w)
		if len(t.Columns) != len(ref.Columns) {
			return fmt.Errorf("%d kg has %d columns, %d kg has %d: %w", w, len(t.Columns), weights[0], len(ref.Columns), models.ErrSchemaMismatch)
		}
		for i := range ref.Columns {
			if t.Columns[i] != ref.Columns[i] {
				return fmt.Errorf("%d kg column %d is %q, expected %q: %w", w, i+1, t.Columns[i], ref.Columns[i], models.ErrSchemaMismatch)
			}
		}
		if len(t.Rows) != len(ref.Rows) {
			return fmt.Errorf("%d kg has %d rows, %d kg has %d: %w", w, len(t.Rows), weights[0], len(ref.Rows), models.ErrSchemaMismatch)
		}
		for i := range ref.Rows {
			if t.Rows[i].Label != ref.Rows[i].Label {
				return fmt.Errorf("%d kg row %d is %q, expected %q: %w", w, i+1, t.Rows[i].Label, ref.Rows[i].Label, models.ErrSchemaMismatch)
			}
		}
	}

	return nil
}

func headerLabels(row []interface{}, width int) []string {
	labels := make([]string, width)
	for i := range labels {
		labels[i] = cellAt(row, i)
	}
	return labels
}

func cellAt(row []interface{}, i int) string {
	if i >= len(row) {
		return ""
	}
	return models.CellText(row[i])
}

func isBlankRow(row []interface{}) bool {
	for _, v := range row {
		if models.CellText(v) != "" {
			return false
		}
	}
	return true
}
