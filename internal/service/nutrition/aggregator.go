package nutrition

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/horsefeed/internal/domain/models"
)

// Aggregate sums per-kg feed compositions scaled by quantity. Placeholder rows,
// quantities that are not positive finite numbers and unknown feeds
// contribute nothing.
func Aggregate(selections models.DietSelection, catalog models.FeedCatalog) models.NutrientTotals {
	return aggregate(selections, catalog, zap.NewNop())
}

func aggregate(selections models.DietSelection, catalog models.FeedCatalog, logger *zap.Logger) models.NutrientTotals {
	var order []string
	sums := make(map[string]decimal.Decimal)

	for _, sel := range selections {
		if !sel.Selected() {
			continue
		}

		entry, ok := catalog.Lookup(sel.Feed)
		if !ok {
			logger.Debug("skip selection for unknown feed", zap.String("feed", sel.Feed))
			continue
		}

		kg := decimal.NewFromFloat(sel.Kg)
		for _, n := range entry.Nutrients {
			sum, seen := sums[n.Nutrient]
			if !seen {
				order = append(order, n.Nutrient)
			}
			sums[n.Nutrient] = sum.Add(decimal.NewFromFloat(n.Value.OrZero()).Mul(kg))
		}
	}

	totals := make(models.NutrientTotals, 0, len(order))
	for _, name := range order {
		totals = append(totals, models.NutrientTotal{
			Nutrient: name,
			Total:    sums[name].Round(2).InexactFloat64(),
		})
	}
	return totals
}
