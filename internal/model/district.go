package model

// IndicatorStats holds the per-district counts and prevalence rate for one
// anthropometric indicator. Moderate+Severe <= Measured always holds;
// Rate is (Moderate+Severe)/Measured*100, or 0 when Measured is 0.
type IndicatorStats struct {
	Measured int     `json:"measured"`
	Moderate int     `json:"moderate"`
	Severe   int     `json:"severe"`
	Rate     float64 `json:"rate"`
}

// Affected returns the number of moderately or severely affected children.
func (s IndicatorStats) Affected() int {
	return s.Moderate + s.Severe
}

// DistrictAggregate is one district's aggregated survey counts and rates.
type DistrictAggregate struct {
	District      string         `json:"district"`
	Province      string         `json:"province"`
	TotalChildren int            `json:"total_children"`
	Stunting      IndicatorStats `json:"stunting"`
	Wasting       IndicatorStats `json:"wasting"`
	Underweight   IndicatorStats `json:"underweight"`
}

// NationalPrevalence holds whole-survey counts and rates per indicator.
type NationalPrevalence struct {
	TotalChildren int            `json:"total_children"`
	Stunting      IndicatorStats `json:"stunting"`
	Wasting       IndicatorStats `json:"wasting"`
	Underweight   IndicatorStats `json:"underweight"`
}
