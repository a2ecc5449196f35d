// Package model defines the data types shared across the malnutrition pipeline.
package model

// Classification tokens used by the CFSVA under-5 survey. A child's
// classification for an indicator is one of these exact strings, or empty
// when the child was not measured for that indicator.
const (
	StuntedModerate     = "Moderately stunted"
	StuntedSevere       = "Severely stunted"
	WastedModerate      = "Moderately wasted"
	WastedSevere        = "Severely wasted"
	UnderweightModerate = "Moderately underweight"
	UnderweightSevere   = "Severely underweight"
)

// ChildRecord is one surveyed child. Classification fields hold the raw
// survey tokens; empty string means unmeasured. Records are read once and
// never modified.
type ChildRecord struct {
	District    string `json:"district"`
	Province    string `json:"province"`
	Stunting    string `json:"stunting"`
	Wasting     string `json:"wasting"`
	Underweight string `json:"underweight"`
}
