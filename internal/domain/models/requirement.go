package models

import (
	"sort"
	"strings"
)

// WeightClass is a tabulated reference body weight in kilograms.
type WeightClass int

// RequirementRow is one category/subcategory line of a requirement table.
// Values are aligned with the owning table's Columns.
type RequirementRow struct {
	Label  string `json:"label"`
	Values []Cell `json:"values"`
}

// RequirementTable holds every subcategory row for one weight class.
type RequirementTable struct {
	LabelColumn string           `json:"label_column"`
	Columns     []string         `json:"columns"`
	Rows        []RequirementRow `json:"rows"`
}

// Clone returns a deep copy of the table.
func (t RequirementTable) Clone() RequirementTable {
	out := RequirementTable{
		LabelColumn: t.LabelColumn,
		Columns:     append([]string(nil), t.Columns...),
		Rows:        make([]RequirementRow, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = RequirementRow{Label: row.Label, Values: append([]Cell(nil), row.Values...)}
	}
	return out
}

// Value returns the cell for column on row, Missing when either is absent.
func (r RequirementRow) Value(columns []string, column string) Cell {
	for i, name := range columns {
		if name == column && i < len(r.Values) {
			return r.Values[i]
		}
	}
	return Missing()
}

// RequirementTables maps weight classes to their tables.
type RequirementTables struct {
	tables  map[WeightClass]RequirementTable
	weights []WeightClass
}

// NewRequirementTables indexes the provided tables by weight class.
func NewRequirementTables(tables map[WeightClass]RequirementTable) RequirementTables {
	weights := make([]WeightClass, 0, len(tables))
	copied := make(map[WeightClass]RequirementTable, len(tables))
	for w, t := range tables {
		weights = append(weights, w)
		copied[w] = t
	}
	sort.Slice(weights, func(i, j int) bool { return weights[i] < weights[j] })
	return RequirementTables{tables: copied, weights: weights}
}

// Weights returns the weight classes in ascending order.
func (r RequirementTables) Weights() []WeightClass {
	return append([]WeightClass(nil), r.weights...)
}

// Table returns the table for an exact weight class.
func (r RequirementTables) Table(w WeightClass) (RequirementTable, bool) {
	t, ok := r.tables[w]
	return t, ok
}

// Len reports the number of weight classes.
func (r RequirementTables) Len() int {
	return len(r.weights)
}

// NutrientValue is one entry of a requirement vector.
type NutrientValue struct {
	Nutrient string `json:"nutrient"`
	Value    Cell   `json:"value"`
}

// RequirementVector is the resolved requirement for one subcategory at one weight.
type RequirementVector struct {
	Subcategory string          `json:"subcategory"`
	Weight      float64         `json:"weight"`
	Entries     []NutrientValue `json:"entries"`
}

// Get returns the requirement for a nutrient.
func (v RequirementVector) Get(nutrient string) (Cell, bool) {
	for _, e := range v.Entries {
		if e.Nutrient == nutrient {
			return e.Value, true
		}
	}
	return Missing(), false
}

// IsEmpty reports whether the vector carries no nutrients.
func (v RequirementVector) IsEmpty() bool {
	return len(v.Entries) == 0
}

// IsWeightNutrient reports whether a column echoes the body weight.
func IsWeightNutrient(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "weight", "waga":
		return true
	}
	return false
}
