package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/nisr-analytics/nutrition-cli/internal/model"
	"github.com/nisr-analytics/nutrition-cli/internal/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full malnutrition analysis pipeline",
	Long: `Run the complete batch pipeline: load the child survey and boundary
geometry, aggregate per-district malnutrition rates, compute composite risk
scores and hotspot tiers, join the results into the boundary features, and
write all output artifacts.

Examples:
  # Run with paths from config.yaml
  nutrition-cli run

  # Override inputs and output directory
  nutrition-cli run --survey children.csv --boundaries districts.geojson --out public/data

  # Read the survey from a spreadsheet
  nutrition-cli run --survey CFSVA_under5.xlsx --boundaries rwanda_districts.json`,
	RunE: runPipeline,
}

func init() {
	f := runCmd.Flags()
	f.String("survey", "", "survey file, .csv or .xlsx (overrides config)")
	f.String("boundaries", "", "boundary file, .geojson/.json or .shp (overrides config)")
	f.String("out", "", "output directory (overrides config)")
	f.Int("top-n", 0, "ranking size for top hotspots (0=use config default)")

	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if s, _ := cmd.Flags().GetString("survey"); s != "" {
		cfg.Survey.Path = s
	}
	if b, _ := cmd.Flags().GetString("boundaries"); b != "" {
		cfg.Boundary.Path = b
	}
	if o, _ := cmd.Flags().GetString("out"); o != "" {
		cfg.Export.Dir = o
	}
	if n, _ := cmd.Flags().GetInt("top-n"); n > 0 {
		cfg.Export.TopN = n
	}

	if cfg.Survey.Path == "" {
		return eris.New("run: survey path required (--survey or config)")
	}
	if cfg.Boundary.Path == "" {
		return eris.New("run: boundary path required (--boundaries or config)")
	}

	summary, err := pipeline.New(cfg).Run(ctx)
	if err != nil {
		return err
	}

	printSummary(summary)
	return nil
}

func printSummary(s *model.RunSummary) {
	fmt.Printf("Children surveyed:  %d (%d without district id)\n", s.TotalChildren, s.Unassigned)
	fmt.Printf("Districts analyzed: %d across %d provinces\n", s.Districts, s.Provinces)
	fmt.Printf("Features matched:   %d (%d unmatched)\n", s.JoinMatched, len(s.JoinUnmatched))
	fmt.Printf("Risk bands:         %d high-risk, %d low-risk districts\n", s.HighRiskCount, s.LowRiskCount)

	if len(s.JoinUnmatched) > 0 {
		fmt.Println("Unmatched boundary features:")
		for i, name := range s.JoinUnmatched {
			if i == 20 {
				fmt.Printf("  ... and %d more\n", len(s.JoinUnmatched)-i)
				break
			}
			if name == "" {
				name = "(unnamed feature)"
			}
			fmt.Printf("  - %s\n", name)
		}
	}
	if len(s.Warnings) > 0 {
		fmt.Printf("Warnings: %d (see logs)\n", len(s.Warnings))
	}
}
