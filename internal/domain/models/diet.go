package models

// DietRow is one (feed, quantity) line of a diet.
type DietRow struct {
	Feed string  `json:"feed"`
	Kg   float64 `json:"kg"`
}

// Selected reports whether the row takes part in aggregation.
func (r DietRow) Selected() bool {
	return r.Feed != "" && r.Feed != UnselectedFeed && r.Kg > 0 && Finite(r.Kg)
}

// DietSelection is the ordered list of diet rows assembled by a user.
type DietSelection []DietRow

// Active drops placeholder and zero-quantity rows.
func (d DietSelection) Active() DietSelection {
	out := make(DietSelection, 0, len(d))
	for _, row := range d {
		if row.Selected() {
			out = append(out, row)
		}
	}
	return out
}

// NutrientTotal is the summed intake of one nutrient.
type NutrientTotal struct {
	Nutrient string  `json:"nutrient"`
	Total    float64 `json:"total"`
}

// NutrientTotals holds aggregated diet intake in first-seen nutrient order.
type NutrientTotals []NutrientTotal

// Get returns the total for a nutrient.
func (t NutrientTotals) Get(nutrient string) (float64, bool) {
	for _, e := range t {
		if e.Nutrient == nutrient {
			return e.Total, true
		}
	}
	return 0, false
}
