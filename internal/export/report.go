package export

import (
	"fmt"
	"strings"

	"github.com/nisr-analytics/nutrition-cli/internal/model"
)

const reportRule = "--------------------------------------------------------------------------------"

// Report renders the human-readable district malnutrition report: national
// summary, top and bottom stunting districts, risk bands, and the province
// rollup. highRisk and lowRisk are the stunting-rate band thresholds.
func Report(national model.NationalPrevalence, records []model.RiskRecord, provinces []ProvinceSummary, highRisk, lowRisk float64) string {
	var b strings.Builder

	b.WriteString("CHILD MALNUTRITION BY DISTRICT\n")
	b.WriteString(strings.Repeat("=", 80) + "\n\n")

	b.WriteString("NATIONAL SUMMARY\n")
	b.WriteString(reportRule + "\n")
	fmt.Fprintf(&b, "Total Children: %d\n", national.TotalChildren)
	fmt.Fprintf(&b, "Stunting Rate: %.1f%% (%d/%d children)\n",
		national.Stunting.Rate, national.Stunting.Affected(), national.Stunting.Measured)
	fmt.Fprintf(&b, "Wasting Rate: %.1f%% (%d/%d children)\n",
		national.Wasting.Rate, national.Wasting.Affected(), national.Wasting.Measured)
	fmt.Fprintf(&b, "Underweight Rate: %.1f%% (%d/%d children)\n\n",
		national.Underweight.Rate, national.Underweight.Affected(), national.Underweight.Measured)

	byStunting := sortedCopy(records, func(a, b model.RiskRecord) bool {
		if a.Stunting.Rate != b.Stunting.Rate {
			return a.Stunting.Rate > b.Stunting.Rate
		}
		return a.District < b.District
	})

	b.WriteString("TOP 10 HIGHEST STUNTING DISTRICTS\n")
	b.WriteString(reportRule + "\n")
	for i, r := range byStunting[:min(10, len(byStunting))] {
		fmt.Fprintf(&b, "%2d. %-20s (%-12s): %5.1f%% (%d/%d children)\n",
			i+1, r.District, r.Province, r.Stunting.Rate, r.Stunting.Affected(), r.Stunting.Measured)
	}
	b.WriteString("\n")

	b.WriteString("TOP 10 LOWEST STUNTING DISTRICTS\n")
	b.WriteString(reportRule + "\n")
	bottom := byStunting[max(0, len(byStunting)-10):]
	for i, r := range bottom {
		fmt.Fprintf(&b, "%2d. %-20s (%-12s): %5.1f%% (%d/%d children)\n",
			i+1, r.District, r.Province, r.Stunting.Rate, r.Stunting.Affected(), r.Stunting.Measured)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "HIGH-RISK DISTRICTS (Stunting >= %.0f%%)\n", highRisk)
	b.WriteString(reportRule + "\n")
	writeBand(&b, byStunting, func(r model.RiskRecord) bool { return r.Stunting.Rate >= highRisk })
	b.WriteString("\n")

	fmt.Fprintf(&b, "LOW-RISK DISTRICTS (Stunting < %.0f%%)\n", lowRisk)
	b.WriteString(reportRule + "\n")
	writeBand(&b, byStunting, func(r model.RiskRecord) bool { return r.Stunting.Rate < lowRisk })
	b.WriteString("\n")

	b.WriteString("PROVINCIAL SUMMARY\n")
	b.WriteString(reportRule + "\n")
	for _, p := range provinces {
		fmt.Fprintf(&b, "\n%s:\n", p.Province)
		fmt.Fprintf(&b, "  Stunting: %.1f%%\n", p.StuntingRate)
		fmt.Fprintf(&b, "  Wasting: %.1f%%\n", p.WastingRate)
		fmt.Fprintf(&b, "  Underweight: %.1f%%\n", p.UnderweightRate)
		fmt.Fprintf(&b, "  Risk Score: %.1f\n", p.RiskScore)
	}

	return b.String()
}

func writeBand(b *strings.Builder, records []model.RiskRecord, match func(model.RiskRecord) bool) {
	found := 0
	for _, r := range records {
		if !match(r) {
			continue
		}
		found++
		fmt.Fprintf(b, "%-20s (%-12s): %.1f%% stunting, risk score %.1f (%s)\n",
			r.District, r.Province, r.Stunting.Rate, r.RiskScore, r.Hotspot)
	}
	if found == 0 {
		b.WriteString("None\n")
	}
}
