// Package pipeline aggregates child survey records into district rates and
// orchestrates the full analysis run.
package pipeline

import (
	"go.uber.org/zap"

	"github.com/nisr-analytics/nutrition-cli/internal/model"
)

// AggregateResult holds the per-district aggregates in first-seen district
// order, plus the count of records excluded for having no district id.
type AggregateResult struct {
	Districts  []model.DistrictAggregate
	Unassigned int
}

// provinceCount tracks how often a province value appears within one
// district's rows and where it first appeared in the input.
type provinceCount struct {
	count int
	first int
}

// districtAcc is the growable accumulator for one district.
type districtAcc struct {
	agg       model.DistrictAggregate
	provinces map[string]*provinceCount
}

// Aggregate reduces child records into one DistrictAggregate per distinct
// district, in first-seen input order. Records without a district id never
// reach any district's counts; they are excluded and tallied separately.
func Aggregate(records []model.ChildRecord) AggregateResult {
	byDistrict := make(map[string]*districtAcc)
	var order []string
	var unassigned int

	for i, rec := range records {
		if rec.District == "" {
			unassigned++
			continue
		}

		a, ok := byDistrict[rec.District]
		if !ok {
			a = &districtAcc{
				agg:       model.DistrictAggregate{District: rec.District},
				provinces: make(map[string]*provinceCount),
			}
			byDistrict[rec.District] = a
			order = append(order, rec.District)
		}

		a.agg.TotalChildren++
		tally(&a.agg.Stunting, rec.Stunting, model.StuntedModerate, model.StuntedSevere)
		tally(&a.agg.Wasting, rec.Wasting, model.WastedModerate, model.WastedSevere)
		tally(&a.agg.Underweight, rec.Underweight, model.UnderweightModerate, model.UnderweightSevere)

		if rec.Province != "" {
			pc, ok := a.provinces[rec.Province]
			if !ok {
				pc = &provinceCount{first: i}
				a.provinces[rec.Province] = pc
			}
			pc.count++
		}
	}

	if unassigned > 0 {
		zap.L().Warn("aggregate: child records without district id excluded",
			zap.Int("count", unassigned),
		)
	}

	result := AggregateResult{
		Districts:  make([]model.DistrictAggregate, 0, len(order)),
		Unassigned: unassigned,
	}
	for _, district := range order {
		a := byDistrict[district]
		a.agg.Province = resolveProvince(a.provinces)
		finalizeRate(&a.agg.Stunting)
		finalizeRate(&a.agg.Wasting)
		finalizeRate(&a.agg.Underweight)
		result.Districts = append(result.Districts, a.agg)
	}
	return result
}

// tally counts one classification value into an indicator's stats. Empty
// means unmeasured and contributes to nothing.
func tally(s *model.IndicatorStats, value, moderate, severe string) {
	if value == "" {
		return
	}
	s.Measured++
	switch value {
	case moderate:
		s.Moderate++
	case severe:
		s.Severe++
	}
}

// finalizeRate computes the prevalence rate once counting is done. A district
// with nothing measured keeps rate 0 by policy, not NaN.
func finalizeRate(s *model.IndicatorStats) {
	if s.Measured > 0 {
		s.Rate = float64(s.Moderate+s.Severe) / float64(s.Measured) * 100
	}
}

// resolveProvince picks the most frequent province among a district's rows.
// Conflicting tags indicate upstream data inconsistency, so ties go to the
// value seen first in input order to keep runs deterministic.
func resolveProvince(counts map[string]*provinceCount) string {
	best := ""
	for province, pc := range counts {
		if best == "" {
			best = province
			continue
		}
		b := counts[best]
		if pc.count > b.count || (pc.count == b.count && pc.first < b.first) {
			best = province
		}
	}
	if best == "" {
		return "Unknown"
	}
	return best
}
