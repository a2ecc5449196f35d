// Package score derives composite malnutrition risk scores, hotspot tiers,
// and the recommendations attached to them.
package score

import (
	"math"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/nisr-analytics/nutrition-cli/internal/config"
	"github.com/nisr-analytics/nutrition-cli/internal/model"
)

// Compute builds a RiskRecord from a district aggregate. The aggregate is
// copied into the record; the scorer never mutates its input.
func Compute(agg model.DistrictAggregate, cfg config.ScoreConfig) model.RiskRecord {
	composite := Composite(agg.Stunting.Rate, agg.Wasting.Rate, agg.Underweight.Rate, cfg)
	tier := Tier(composite, cfg)

	return model.RiskRecord{
		DistrictAggregate: agg,
		RiskScore:         composite,
		Hotspot:           tier,
		Recommendations:   Recommendations(tier),
	}
}

// Composite returns the weighted risk score, clamped to [0,100]. The clamp
// only matters when the configured weights do not sum to 1.
func Composite(stunting, wasting, underweight float64, cfg config.ScoreConfig) float64 {
	s := cfg.StuntingWeight*stunting + cfg.WastingWeight*wasting + cfg.UnderweightWeight*underweight
	return math.Min(100, math.Max(0, s))
}

// Tier buckets a composite score into a hotspot tier. Thresholds are
// evaluated most-severe-first with inclusive lower bounds: a score exactly
// at a threshold lands in the more severe tier. The tier depends on the
// composite score alone.
func Tier(composite float64, cfg config.ScoreConfig) string {
	switch {
	case composite >= cfg.SevereMin:
		return model.TierSevere
	case composite >= cfg.HighMin:
		return model.TierHigh
	case composite >= cfg.ModerateMin:
		return model.TierModerate
	default:
		return model.TierLow
	}
}

// Validate checks that a ScoreConfig is internally consistent.
func Validate(cfg config.ScoreConfig) error {
	var errs []string

	if cfg.StuntingWeight < 0 || cfg.WastingWeight < 0 || cfg.UnderweightWeight < 0 {
		errs = append(errs, "weights must be >= 0")
	}
	sum := cfg.StuntingWeight + cfg.WastingWeight + cfg.UnderweightWeight
	if sum <= 0 {
		errs = append(errs, "weight sum must be > 0")
	}
	if !(cfg.SevereMin >= cfg.HighMin && cfg.HighMin >= cfg.ModerateMin && cfg.ModerateMin >= 0) {
		errs = append(errs, "tier thresholds must satisfy severe_min >= high_min >= moderate_min >= 0")
	}
	if cfg.LowRiskStunting > cfg.HighRiskStunting {
		errs = append(errs, "low_risk_stunting must be <= high_risk_stunting")
	}

	if len(errs) > 0 {
		return eris.Errorf("score: invalid config: %s", strings.Join(errs, "; "))
	}
	return nil
}
