// Package export shapes the pipeline's results into their published
// artifact forms and writes them to disk.
package export

import (
	"fmt"
	"math"
	"sort"

	"github.com/nisr-analytics/nutrition-cli/internal/model"
	"github.com/nisr-analytics/nutrition-cli/internal/score"
)

// DistrictAnalytics is one row of the district analytics artifact. Field
// names match what the dashboard consumes.
type DistrictAnalytics struct {
	District        string   `json:"District"`
	Province        string   `json:"Province"`
	StuntingRate    float64  `json:"Stunting_Rate"`
	WastingRate     float64  `json:"Wasting_Rate"`
	UnderweightRate float64  `json:"Underweight_Rate"`
	RiskScore       float64  `json:"RiskScore"`
	Hotspot         string   `json:"Hotspot"`
	Recommendations []string `json:"Recommendations"`
}

// RiskRanking is one entry of the by-risk top list.
type RiskRanking struct {
	District  string  `json:"District"`
	Province  string  `json:"Province"`
	RiskScore float64 `json:"RiskScore"`
	Hotspot   string  `json:"Hotspot"`
}

// StuntingRanking is one entry of the by-stunting top list.
type StuntingRanking struct {
	District     string  `json:"District"`
	Province     string  `json:"Province"`
	StuntingRate float64 `json:"Stunting_Rate"`
}

// TopHotspots holds both top-N rankings.
type TopHotspots struct {
	ByRisk     []RiskRanking     `json:"by_risk"`
	ByStunting []StuntingRanking `json:"by_stunting"`
}

// ProvinceSummary is one row of the province rollup, rounded to 2 decimals.
type ProvinceSummary struct {
	Province        string  `json:"Province"`
	StuntingRate    float64 `json:"Stunting_Rate"`
	WastingRate     float64 `json:"Wasting_Rate"`
	UnderweightRate float64 `json:"Underweight_Rate"`
	RiskScore       float64 `json:"RiskScore"`
}

// PolicyBrief is the per-province communication artifact.
type PolicyBrief struct {
	Province           string   `json:"Province"`
	Summary            string   `json:"Summary"`
	RecommendedActions []string `json:"RecommendedActions"`
}

// Analytics converts risk records into the district analytics artifact,
// preserving aggregator order. The risk score is rounded to 2 decimals;
// rates are published at full precision.
func Analytics(records []model.RiskRecord) []DistrictAnalytics {
	out := make([]DistrictAnalytics, 0, len(records))
	for _, r := range records {
		out = append(out, DistrictAnalytics{
			District:        r.District,
			Province:        r.Province,
			StuntingRate:    r.Stunting.Rate,
			WastingRate:     r.Wasting.Rate,
			UnderweightRate: r.Underweight.Rate,
			RiskScore:       round2(r.RiskScore),
			Hotspot:         r.Hotspot,
			Recommendations: r.Recommendations,
		})
	}
	return out
}

// Hotspots builds the two top-N rankings: by composite risk score and by
// stunting rate, both descending. Ties break on the raw district name
// ascending so the ordering is total.
func Hotspots(records []model.RiskRecord, n int) TopHotspots {
	if n <= 0 {
		n = 10
	}

	byRisk := sortedCopy(records, func(a, b model.RiskRecord) bool {
		if a.RiskScore != b.RiskScore {
			return a.RiskScore > b.RiskScore
		}
		return a.District < b.District
	})
	byStunting := sortedCopy(records, func(a, b model.RiskRecord) bool {
		if a.Stunting.Rate != b.Stunting.Rate {
			return a.Stunting.Rate > b.Stunting.Rate
		}
		return a.District < b.District
	})

	top := TopHotspots{
		ByRisk:     make([]RiskRanking, 0, min(n, len(byRisk))),
		ByStunting: make([]StuntingRanking, 0, min(n, len(byStunting))),
	}
	for _, r := range byRisk[:min(n, len(byRisk))] {
		top.ByRisk = append(top.ByRisk, RiskRanking{
			District:  r.District,
			Province:  r.Province,
			RiskScore: r.RiskScore,
			Hotspot:   r.Hotspot,
		})
	}
	for _, r := range byStunting[:min(n, len(byStunting))] {
		top.ByStunting = append(top.ByStunting, StuntingRanking{
			District:     r.District,
			Province:     r.Province,
			StuntingRate: r.Stunting.Rate,
		})
	}
	return top
}

// Provinces computes the unweighted mean of each rate and of the risk score
// per province, rounded to 2 decimals. Provinces are whatever distinct
// values the records carry, sorted by name.
func Provinces(records []model.RiskRecord) []ProvinceSummary {
	type provinceAcc struct {
		stunting, wasting, underweight, risk float64
		n                                    int
	}

	accs := make(map[string]*provinceAcc)
	var names []string
	for _, r := range records {
		a, ok := accs[r.Province]
		if !ok {
			a = &provinceAcc{}
			accs[r.Province] = a
			names = append(names, r.Province)
		}
		a.stunting += r.Stunting.Rate
		a.wasting += r.Wasting.Rate
		a.underweight += r.Underweight.Rate
		a.risk += r.RiskScore
		a.n++
	}
	sort.Strings(names)

	out := make([]ProvinceSummary, 0, len(names))
	for _, name := range names {
		a := accs[name]
		out = append(out, ProvinceSummary{
			Province:        name,
			StuntingRate:    round2(a.stunting / float64(a.n)),
			WastingRate:     round2(a.wasting / float64(a.n)),
			UnderweightRate: round2(a.underweight / float64(a.n)),
			RiskScore:       round2(a.risk / float64(a.n)),
		})
	}
	return out
}

// Briefs generates one policy brief per province summary. The summary
// sentence quotes the already-rounded province figures.
func Briefs(summaries []ProvinceSummary) []PolicyBrief {
	out := make([]PolicyBrief, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, PolicyBrief{
			Province: s.Province,
			Summary: fmt.Sprintf(
				"%s has average stunting rate %v%% and a risk score of %v. Priority: scale-up nutrition and WASH interventions in high-risk districts.",
				s.Province, s.StuntingRate, s.RiskScore,
			),
			RecommendedActions: score.ProvinceActions(),
		})
	}
	return out
}

func sortedCopy(records []model.RiskRecord, less func(a, b model.RiskRecord) bool) []model.RiskRecord {
	out := make([]model.RiskRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
