package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/nisr-analytics/nutrition-cli/internal/export"
	"github.com/nisr-analytics/nutrition-cli/internal/geo"
	"github.com/nisr-analytics/nutrition-cli/internal/model"
)

var joinCmd = &cobra.Command{
	Use:   "join",
	Short: "Merge existing district analytics into boundary geometry",
	Long: `Merge a previously generated district analytics file into a boundary
feature collection without re-running aggregation or scoring. Useful when a
new boundary release ships and the survey data has not changed.

Example:
  nutrition-cli join --analytics public/data/district_analytics.json \
    --boundaries rwanda_districts.json --out public/rwanda_districts.json`,
	RunE: runJoin,
}

func init() {
	f := joinCmd.Flags()
	f.String("analytics", "", "district analytics JSON file (required)")
	f.String("boundaries", "", "boundary file, .geojson/.json or .shp (required)")
	f.String("out", "", "enriched GeoJSON output path (required)")

	rootCmd.AddCommand(joinCmd)
}

func runJoin(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	analyticsPath, _ := cmd.Flags().GetString("analytics")
	boundariesPath, _ := cmd.Flags().GetString("boundaries")
	outPath, _ := cmd.Flags().GetString("out")
	if analyticsPath == "" || boundariesPath == "" || outPath == "" {
		return eris.New("join: --analytics, --boundaries, and --out are all required")
	}

	data, err := os.ReadFile(analyticsPath)
	if err != nil {
		return eris.Wrap(err, "join: read analytics file")
	}
	var analytics []export.DistrictAnalytics
	if err := json.Unmarshal(data, &analytics); err != nil {
		return eris.Wrap(err, "join: decode analytics file")
	}

	fc, err := geo.LoadBoundaries(ctx, boundariesPath)
	if err != nil {
		return err
	}

	records := make([]model.RiskRecord, 0, len(analytics))
	for _, a := range analytics {
		records = append(records, model.RiskRecord{
			DistrictAggregate: model.DistrictAggregate{
				District: a.District,
				Province: a.Province,
				Stunting: model.IndicatorStats{Rate: a.StuntingRate},
				Wasting:  model.IndicatorStats{Rate: a.WastingRate},
				Underweight: model.IndicatorStats{
					Rate: a.UnderweightRate,
				},
			},
			RiskScore:       a.RiskScore,
			Hotspot:         a.Hotspot,
			Recommendations: a.Recommendations,
		})
	}

	res, err := geo.Join(fc, records, cfg.Boundary.NameFields)
	if err != nil {
		return err
	}

	enriched, err := json.Marshal(fc)
	if err != nil {
		return eris.Wrap(err, "join: encode enriched geometry")
	}
	if err := os.WriteFile(outPath, enriched, 0o644); err != nil {
		return eris.Wrap(err, "join: write enriched geometry")
	}

	fmt.Printf("Matched analytics to %d features, %d unmatched\n", res.Matched, len(res.Unmatched))
	for i, name := range res.Unmatched {
		if i == 20 {
			break
		}
		if name == "" {
			name = "(unnamed feature)"
		}
		fmt.Printf("  - %s\n", name)
	}
	return nil
}
