package models

// Session carries the password-gate outcome into the computation boundary.
type Session struct {
	Authenticated bool
}

// EvaluationRequest is everything the UI collects for one recomputation.
type EvaluationRequest struct {
	Weight      float64
	Subcategory string
	Notes       string
	Selections  DietSelection
}

// Bracket is the pair of weight classes a target weight falls between.
type Bracket struct {
	Low  WeightClass `json:"low"`
	High WeightClass `json:"high"`
}

// Exact reports whether the target landed on a tabulated class or was clamped.
func (b Bracket) Exact() bool {
	return b.Low == b.High
}

// Evaluation is the full pipeline output for one request.
type Evaluation struct {
	Weight      float64           `json:"weight"`
	Subcategory string            `json:"subcategory"`
	Notes       string            `json:"notes,omitempty"`
	Bracket     Bracket           `json:"bracket"`
	Found       bool              `json:"found"`
	Warning     string            `json:"warning,omitempty"`
	Requirement RequirementVector `json:"requirement"`
	Diet        DietSelection     `json:"diet"`
	Totals      NutrientTotals    `json:"totals"`
	Comparison  []ComparisonRow   `json:"comparison"`
}
