package pipeline

import "github.com/nisr-analytics/nutrition-cli/internal/model"

// National computes whole-survey prevalence counts and rates per indicator,
// including children excluded from district aggregation for lacking a
// district id.
func National(records []model.ChildRecord) model.NationalPrevalence {
	n := model.NationalPrevalence{TotalChildren: len(records)}

	for _, rec := range records {
		tally(&n.Stunting, rec.Stunting, model.StuntedModerate, model.StuntedSevere)
		tally(&n.Wasting, rec.Wasting, model.WastedModerate, model.WastedSevere)
		tally(&n.Underweight, rec.Underweight, model.UnderweightModerate, model.UnderweightSevere)
	}

	finalizeRate(&n.Stunting)
	finalizeRate(&n.Wasting)
	finalizeRate(&n.Underweight)
	return n
}
