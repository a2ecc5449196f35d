package model

// Hotspot tier constants, least to most severe.
const (
	TierLow      = "Low"
	TierModerate = "Moderate"
	TierHigh     = "High"
	TierSevere   = "Severe"
)

// RiskRecord is a DistrictAggregate extended with the composite risk score,
// hotspot tier, and tier-level recommendations. Built once by the scorer and
// never mutated; the underlying aggregate is copied, not shared.
type RiskRecord struct {
	DistrictAggregate

	RiskScore       float64  `json:"risk_score"`
	Hotspot         string   `json:"hotspot"`
	Recommendations []string `json:"recommendations"`
}

// RunSummary is the operator-facing accounting for one pipeline run:
// how much data was processed, how well the join matched, and every
// non-fatal data-quality warning raised along the way.
type RunSummary struct {
	TotalChildren int      `json:"total_children"`
	Unassigned    int      `json:"unassigned"`
	Districts     int      `json:"districts"`
	Provinces     int      `json:"provinces"`
	JoinMatched   int      `json:"join_matched"`
	JoinUnmatched []string `json:"join_unmatched"`
	HighRiskCount int      `json:"high_risk_count"`
	LowRiskCount  int      `json:"low_risk_count"`
	Warnings      []string `json:"warnings"`
}
