package nutrition

import (
	"fmt"
	"strings"

	"github.com/mamadbah2/horsefeed/internal/domain/models"
)

// bookkeepingMarkers flag rows that echo weight, milk yield, energy density
// or digestibility rather than a dietary requirement.
var bookkeepingMarkers = []string{"waga", "mleko", "mkcal", "digestible"}

func isBookkeepingRow(label string) bool {
	lower := strings.ToLower(label)
	for _, marker := range bookkeepingMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// Resolve transposes the row labelled subcategory into a requirement vector.
// Bookkeeping rows are dropped before matching. The weight nutrient carries
// target instead of the tabulated class boundary.
func Resolve(table models.RequirementTable, subcategory string, target float64) (models.RequirementVector, error) {
	wanted := strings.TrimSpace(subcategory)

	for _, row := range table.Rows {
		if isBookkeepingRow(row.Label) {
			continue
		}
		if strings.TrimSpace(row.Label) != wanted {
			continue
		}

		vector := models.RequirementVector{
			Subcategory: wanted,
			Weight:      target,
			Entries:     make([]models.NutrientValue, 0, len(table.Columns)),
		}
		for i, column := range table.Columns {
			value := models.Missing()
			if i < len(row.Values) {
				value = row.Values[i]
			}
			if models.IsWeightNutrient(column) {
				value = models.Number(target)
			}
			vector.Entries = append(vector.Entries, models.NutrientValue{Nutrient: column, Value: value})
		}
		return vector, nil
	}

	return models.RequirementVector{}, fmt.Errorf("%q at %.0f kg: %w", wanted, target, models.ErrNotFound)
}
