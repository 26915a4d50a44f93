package nutrition

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/horsefeed/internal/domain/models"
)

// Bracket picks the tabulated weight classes surrounding target. Targets
// outside the tabulated range clamp to the nearest edge class.
func Bracket(weights []models.WeightClass, target float64) (models.Bracket, error) {
	if len(weights) == 0 {
		return models.Bracket{}, models.ErrNoWeightClasses
	}
	if !models.Finite(target) {
		return models.Bracket{}, models.ErrInvalidWeight
	}

	low, high := weights[0], weights[len(weights)-1]
	lowFound, highFound := false, false
	for _, w := range weights {
		if float64(w) <= target && (!lowFound || w > low) {
			low, lowFound = w, true
		}
		if float64(w) >= target && (!highFound || w < high) {
			high, highFound = w, true
		}
	}
	if !lowFound {
		low = weights[0]
	}
	if !highFound {
		high = weights[len(weights)-1]
	}

	return models.Bracket{Low: low, High: high}, nil
}

// Interpolate builds the requirement table for target by linear interpolation
// between the tables of two weight classes. Equal weights return low unchanged.
func Interpolate(low, high models.RequirementTable, weightLow, weightHigh models.WeightClass, target float64) (models.RequirementTable, error) {
	if weightLow == weightHigh {
		return low, nil
	}
	if !models.Finite(target) {
		return models.RequirementTable{}, fmt.Errorf("interpolate %d-%d kg: %w", weightLow, weightHigh, models.ErrInvalidWeight)
	}
	if len(low.Columns) != len(high.Columns) || len(low.Rows) != len(high.Rows) {
		return models.RequirementTable{}, fmt.Errorf("interpolate %d-%d kg: %w", weightLow, weightHigh, models.ErrSchemaMismatch)
	}

	ratio := (target - float64(weightLow)) / float64(weightHigh-weightLow)
	out := low.Clone()
	for i, row := range out.Rows {
		other := high.Rows[i]
		for j := range row.Values {
			a := row.Values[j]
			var b models.Cell
			if j < len(other.Values) {
				b = other.Values[j]
			}
			if !a.Valid || !b.Valid {
				row.Values[j] = models.Missing()
				continue
			}
			row.Values[j] = models.Number(round(a.Value+(b.Value-a.Value)*ratio, 2))
		}
	}

	return out, nil
}

// RequirementsFor resolves the (possibly interpolated) table for target.
func RequirementsFor(tables models.RequirementTables, target float64) (models.RequirementTable, models.Bracket, error) {
	bracket, err := Bracket(tables.Weights(), target)
	if err != nil {
		return models.RequirementTable{}, models.Bracket{}, err
	}

	low, _ := tables.Table(bracket.Low)
	if bracket.Exact() {
		return low, bracket, nil
	}
	high, _ := tables.Table(bracket.High)

	table, err := Interpolate(low, high, bracket.Low, bracket.High, target)
	if err != nil {
		return models.RequirementTable{}, bracket, err
	}
	return table, bracket, nil
}

func round(v float64, places int32) float64 {
	if !models.Finite(v) {
		return v
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
