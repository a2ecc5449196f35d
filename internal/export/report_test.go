package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nisr-analytics/nutrition-cli/internal/model"
)

func TestReportSections(t *testing.T) {
	national := model.NationalPrevalence{
		TotalChildren: 200,
		Stunting:      model.IndicatorStats{Measured: 180, Moderate: 40, Severe: 14, Rate: 30.0},
		Wasting:       model.IndicatorStats{Measured: 180, Moderate: 5, Severe: 2, Rate: 3.9},
		Underweight:   model.IndicatorStats{Measured: 170, Moderate: 20, Severe: 5, Rate: 14.7},
	}
	records := []model.RiskRecord{
		riskRecord("Rubavu", "Western", 41.2, 5.0, 20.0, 31.5, model.TierHigh),
		riskRecord("Gasabo", "Kigali City", 18.5, 3.0, 10.0, 13.1, model.TierLow),
	}
	provinces := Provinces(records)

	out := Report(national, records, provinces, 35, 20)

	assert.Contains(t, out, "CHILD MALNUTRITION BY DISTRICT")
	assert.Contains(t, out, "NATIONAL SUMMARY")
	assert.Contains(t, out, "Total Children: 200")
	assert.Contains(t, out, "Stunting Rate: 30.0% (54/180 children)")

	assert.Contains(t, out, "TOP 10 HIGHEST STUNTING DISTRICTS")
	assert.Contains(t, out, "TOP 10 LOWEST STUNTING DISTRICTS")

	assert.Contains(t, out, "HIGH-RISK DISTRICTS (Stunting >= 35%)")
	assert.Contains(t, out, "LOW-RISK DISTRICTS (Stunting < 20%)")
	assert.Contains(t, out, "PROVINCIAL SUMMARY")

	// Rubavu lands in the high band, Gasabo in the low band.
	high := section(t, out, "HIGH-RISK DISTRICTS")
	assert.Contains(t, high, "Rubavu")
	assert.NotContains(t, high, "Gasabo")

	low := section(t, out, "LOW-RISK DISTRICTS")
	assert.Contains(t, low, "Gasabo")
	assert.NotContains(t, low, "Rubavu")
}

func TestReportHighestStuntingOrder(t *testing.T) {
	records := []model.RiskRecord{
		riskRecord("Gasabo", "Kigali City", 18.5, 0, 0, 13.1, model.TierLow),
		riskRecord("Rubavu", "Western", 41.2, 0, 0, 31.5, model.TierHigh),
		riskRecord("Ngoma", "Eastern", 30.0, 0, 0, 18.0, model.TierModerate),
	}

	out := Report(model.NationalPrevalence{}, records, nil, 35, 20)

	top := section(t, out, "TOP 10 HIGHEST STUNTING DISTRICTS")
	first := strings.Index(top, "Rubavu")
	second := strings.Index(top, "Ngoma")
	third := strings.Index(top, "Gasabo")
	require.True(t, first >= 0 && second >= 0 && third >= 0)
	assert.Less(t, first, second)
	assert.Less(t, second, third)
}

func TestReportEmptyBandsSayNone(t *testing.T) {
	records := []model.RiskRecord{
		riskRecord("Ngoma", "Eastern", 30.0, 0, 0, 18.0, model.TierModerate),
	}

	out := Report(model.NationalPrevalence{}, records, nil, 35, 20)

	assert.Contains(t, section(t, out, "HIGH-RISK DISTRICTS"), "None")
	assert.Contains(t, section(t, out, "LOW-RISK DISTRICTS"), "None")
}

func TestReportNoRecords(t *testing.T) {
	out := Report(model.NationalPrevalence{}, nil, nil, 35, 20)
	assert.Contains(t, out, "Total Children: 0")
	assert.Contains(t, out, "None")
}

// section returns the report text from the given heading up to the next
// blank-line separated heading.
func section(t *testing.T, report, heading string) string {
	t.Helper()
	start := strings.Index(report, heading)
	require.GreaterOrEqual(t, start, 0, "heading %q not found", heading)
	rest := report[start:]
	if end := strings.Index(rest, "\n\n"); end >= 0 {
		return rest[:end]
	}
	return rest
}
