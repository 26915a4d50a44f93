package models

// CoverageStatus classifies a coverage percentage.
type CoverageStatus string

const (
	StatusWithinRange CoverageStatus = "within-range"
	StatusDeficient   CoverageStatus = "deficient"
	StatusExcess      CoverageStatus = "excess"
)

// Coverage bounds in percent, inclusive.
const (
	CoverageLowerBound = 90.0
	CoverageUpperBound = 110.0
)

// ClassifyCoverage maps a percentage onto a status.
func ClassifyCoverage(percent float64) CoverageStatus {
	switch {
	case percent >= CoverageLowerBound && percent <= CoverageUpperBound:
		return StatusWithinRange
	case percent < CoverageLowerBound:
		return StatusDeficient
	default:
		return StatusExcess
	}
}

// ComparisonRow compares diet intake against the requirement for one nutrient.
type ComparisonRow struct {
	Nutrient   string         `json:"nutrient"`
	Actual     float64        `json:"actual"`
	Target     float64        `json:"target"`
	Difference float64        `json:"difference"`
	Percent    float64        `json:"percent"`
	Status     CoverageStatus `json:"status"`
}
