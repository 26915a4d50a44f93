package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/horsefeed/internal/domain/models"
)

func TestCompare(t *testing.T) {
	requirement := models.RequirementVector{Entries: []models.NutrientValue{
		{Nutrient: "Białko", Value: num(630)},
		{Nutrient: "Ca", Value: num(20)},
		{Nutrient: "P", Value: num(14)},
		{Nutrient: "Se", Value: models.Missing()},
		{Nutrient: "Cu", Value: num(0)},
	}}
	totals := models.NutrientTotals{
		{Nutrient: "Ca", Total: 39.05},
		{Nutrient: "Białko", Total: 620},
		{Nutrient: "Se", Total: 0.24},
		{Nutrient: "Karoten", Total: 120},
	}

	rows := Compare(requirement, totals)

	assert.Equal(t, []models.ComparisonRow{
		{Nutrient: "Białko", Actual: 620, Target: 630, Difference: -10, Percent: 98.4, Status: models.StatusWithinRange},
		{Nutrient: "Ca", Actual: 39.05, Target: 20, Difference: 19.05, Percent: 195.3, Status: models.StatusExcess},
		{Nutrient: "P", Actual: 0, Target: 14, Difference: -14, Percent: 0, Status: models.StatusDeficient},
		{Nutrient: "Se", Actual: 0.24, Target: 0, Difference: 0.24, Percent: 0, Status: models.StatusDeficient},
		{Nutrient: "Cu", Actual: 0, Target: 0, Difference: 0, Percent: 0, Status: models.StatusDeficient},
	}, rows)
}

func TestCompareBoundaries(t *testing.T) {
	requirement := models.RequirementVector{Entries: []models.NutrientValue{
		{Nutrient: "low", Value: num(100)},
		{Nutrient: "high", Value: num(100)},
	}}
	totals := models.NutrientTotals{{Nutrient: "low", Total: 90}, {Nutrient: "high", Total: 110}}

	rows := Compare(requirement, totals)
	require.Len(t, rows, 2)
	assert.Equal(t, models.StatusWithinRange, rows[0].Status)
	assert.Equal(t, models.StatusWithinRange, rows[1].Status)
}

func TestCompareEmptyRequirement(t *testing.T) {
	rows := Compare(models.RequirementVector{}, models.NutrientTotals{{Nutrient: "Ca", Total: 1}})
	assert.Empty(t, rows)
}
