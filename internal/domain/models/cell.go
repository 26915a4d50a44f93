package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Cell is a spreadsheet value after coercion: either a number or missing.
type Cell struct {
	Value float64
	Valid bool
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Number builds a present numeric cell.
func Number(v float64) Cell {
	if !Finite(v) {
		return Missing()
	}
	return Cell{Value: v, Valid: true}
}

// Missing builds an empty cell.
func Missing() Cell {
	return Cell{}
}

// OrZero returns the numeric value, or 0 for missing or non-finite cells.
func (c Cell) OrZero() float64 {
	if !c.Valid || !Finite(c.Value) {
		return 0
	}
	return c.Value
}

func (c Cell) String() string {
	if !c.Valid {
		return "NaN"
	}
	return strconv.FormatFloat(c.Value, 'f', -1, 64)
}

// MarshalJSON renders missing cells as null.
func (c Cell) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(c.Value)
}

// UnmarshalJSON accepts numbers, numeric strings and null.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = ParseCell(raw)
	return nil
}

var missingMarkers = map[string]struct{}{
	"":     {},
	"-":    {},
	"none": {},
	"nan":  {},
	"null": {},
}

// ParseCell coerces a raw spreadsheet value into a Cell. Decimal commas are
// accepted; anything that does not parse as a number is Missing.
func ParseCell(raw interface{}) Cell {
	switch v := raw.(type) {
	case nil:
		return Missing()
	case Cell:
		return v
	case float64:
		return Number(v)
	case float32:
		return Number(float64(v))
	case int:
		return Number(float64(v))
	case int32:
		return Number(float64(v))
	case int64:
		return Number(float64(v))
	case bool:
		return Missing()
	case string:
		return parseCellString(v)
	default:
		return parseCellString(fmt.Sprint(v))
	}
}

func parseCellString(s string) Cell {
	s = strings.TrimSpace(s)
	if _, ok := missingMarkers[strings.ToLower(s)]; ok {
		return Missing()
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Missing()
	}
	return Number(f)
}

// CellText renders a raw value as a trimmed label.
func CellText(raw interface{}) string {
	if raw == nil {
		return ""
	}
	if s, ok := raw.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(raw))
}
