package nutrition

import (
	"github.com/shopspring/decimal"

	"github.com/mamadbah2/horsefeed/internal/domain/models"
)

// Compare reports coverage for every nutrient of the requirement, in order.
// A zero or missing target yields 0% coverage.
func Compare(requirement models.RequirementVector, totals models.NutrientTotals) []models.ComparisonRow {
	rows := make([]models.ComparisonRow, 0, len(requirement.Entries))

	for _, entry := range requirement.Entries {
		target := entry.Value.OrZero()
		actual, _ := totals.Get(entry.Nutrient)

		percent := 0.0
		if target != 0 {
			percent = decimal.NewFromFloat(actual).
				Div(decimal.NewFromFloat(target)).
				Mul(decimal.NewFromInt(100)).
				Round(1).
				InexactFloat64()
		}

		rows = append(rows, models.ComparisonRow{
			Nutrient:   entry.Nutrient,
			Actual:     actual,
			Target:     target,
			Difference: round(actual-target, 2),
			Percent:    percent,
			Status:     models.ClassifyCoverage(percent),
		})
	}

	return rows
}
