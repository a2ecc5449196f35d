package geo

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/nisr-analytics/nutrition-cli/internal/model"
)

// JoinResult summarizes how well risk records merged into boundary features.
// Unmatched holds the resolved name of every feature that found no district,
// in feature order. Diagnostics only; never written into the geometry output.
type JoinResult struct {
	Matched   int
	Unmatched []string
}

// BuildLookup indexes risk records by normalized district name. Two distinct
// districts collapsing onto one key would silently overwrite each other in
// the join, so that case is a fatal configuration error naming both.
func BuildLookup(records []model.RiskRecord) (map[string]model.RiskRecord, error) {
	lookup := make(map[string]model.RiskRecord, len(records))
	names := make(map[string]string, len(records))

	for _, r := range records {
		key := Normalize(r.District)
		if key == "" {
			continue
		}
		if prev, ok := names[key]; ok {
			return nil, eris.Errorf("geo: districts %q and %q both normalize to join key %q", prev, r.District, key)
		}
		names[key] = r.District
		lookup[key] = r
	}
	return lookup, nil
}

// ResolveName returns the first non-empty value among the fallback property
// fields, or "" when the feature carries none of them.
func ResolveName(props map[string]interface{}, nameFields []string) string {
	for _, field := range nameFields {
		if v, ok := props[field]; ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return s
			}
		}
	}
	return ""
}

// Join merges risk fields into every boundary feature whose resolved name
// matches a district. Matched features gain the rate, score, tier, and
// recommendation properties; existing properties are kept as-is. Unmatched
// features are left untouched and reported in the result. A join with zero
// matches is a diagnostic, not an error: boundary naming conventions drift
// between releases.
func Join(fc *geojson.FeatureCollection, records []model.RiskRecord, nameFields []string) (JoinResult, error) {
	lookup, err := BuildLookup(records)
	if err != nil {
		return JoinResult{}, err
	}

	var res JoinResult
	for _, feat := range fc.Features {
		name := ResolveName(feat.Properties, nameFields)
		rec, ok := lookup[Normalize(name)]
		if !ok {
			res.Unmatched = append(res.Unmatched, name)
			continue
		}

		if feat.Properties == nil {
			feat.Properties = make(map[string]interface{})
		}
		for k, v := range riskProperties(rec) {
			feat.Properties[k] = v
		}
		res.Matched++
	}

	if res.Matched == 0 && len(fc.Features) > 0 {
		zap.L().Warn("geo: no boundary features matched any district",
			zap.Int("features", len(fc.Features)),
			zap.Int("districts", len(records)),
		)
	}
	return res, nil
}

// riskProperties is the fixed set of keys a matched feature receives.
func riskProperties(r model.RiskRecord) map[string]interface{} {
	recs := make([]string, len(r.Recommendations))
	copy(recs, r.Recommendations)

	return map[string]interface{}{
		"Stunting_Rate":    r.Stunting.Rate,
		"Wasting_Rate":     r.Wasting.Rate,
		"Underweight_Rate": r.Underweight.Rate,
		"RiskScore":        r.RiskScore,
		"Hotspot":          r.Hotspot,
		"Recommendations":  recs,
	}
}
