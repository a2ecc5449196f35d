package score

import "github.com/nisr-analytics/nutrition-cli/internal/model"

// tierRecommendations maps each hotspot tier to its ordered district-level
// action list. Pure data: every district in a tier gets the same list.
var tierRecommendations = map[string][]string{
	model.TierSevere: {
		"Immediate nutrition interventions (supplementary feeding).",
		"Strengthen community health and growth monitoring.",
		"Short-term cash or food assistance and agricultural support.",
	},
	model.TierHigh: {
		"Targeted nutrition education and supplementation.",
		"Improve access to clean water and sanitation.",
		"Support small-holder agriculture and diversification.",
	},
	model.TierModerate: {
		"Nutrition counselling and school feeding pilots.",
		"Sanitation improvements and hygiene promotion.",
	},
	model.TierLow: {
		"Maintain preventive programs and monitoring.",
	},
}

// provinceActions is the fixed action list attached to every policy brief.
// Province briefs are a communication artifact, not tier-dependent advice.
var provinceActions = []string{
	"Scale up community-based management of acute malnutrition.",
	"Invest in maternal & child health services and growth monitoring.",
	"Promote diversified agriculture and market access for nutritious foods.",
}

// Recommendations returns the action list for a tier. The returned slice is
// a fresh copy so callers cannot mutate the underlying table.
func Recommendations(tier string) []string {
	recs := tierRecommendations[tier]
	out := make([]string, len(recs))
	copy(out, recs)
	return out
}

// ProvinceActions returns a copy of the fixed province-brief action list.
func ProvinceActions() []string {
	out := make([]string, len(provinceActions))
	copy(out, provinceActions)
	return out
}
