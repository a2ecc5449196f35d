package pipeline

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nisr-analytics/nutrition-cli/internal/config"
	"github.com/nisr-analytics/nutrition-cli/internal/export"
	"github.com/nisr-analytics/nutrition-cli/internal/geo"
	"github.com/nisr-analytics/nutrition-cli/internal/model"
	"github.com/nisr-analytics/nutrition-cli/internal/score"
	"github.com/nisr-analytics/nutrition-cli/internal/survey"
)

// Pipeline runs one full batch analysis: load, aggregate, score, join,
// export. Every run starts from freshly loaded inputs; nothing is shared
// across runs.
type Pipeline struct {
	cfg *config.Config
}

// New creates a Pipeline.
func New(cfg *config.Config) *Pipeline {
	return &Pipeline{cfg: cfg}
}

// Run executes the pipeline. Fatal errors abort before any artifact is
// written; data-quality warnings are collected into the returned summary.
func (p *Pipeline) Run(ctx context.Context) (*model.RunSummary, error) {
	log := zap.L().With(zap.String("component", "pipeline"))

	if err := score.Validate(p.cfg.Score); err != nil {
		return nil, err
	}

	// Survey and boundary inputs are independent; load them concurrently.
	var (
		records []model.ChildRecord
		fc      *geojson.FeatureCollection
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = survey.Load(gctx, p.cfg.Survey)
		return err
	})
	g.Go(func() error {
		var err error
		fc, err = geo.LoadBoundaries(gctx, p.cfg.Boundary.Path)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	aggRes := Aggregate(records)
	if len(aggRes.Districts) == 0 {
		return nil, eris.New("pipeline: survey input contains no records with a district id")
	}

	national := National(records)
	log.Info("national prevalence",
		zap.Int("children", national.TotalChildren),
		zap.Float64("stunting_rate", national.Stunting.Rate),
		zap.Float64("wasting_rate", national.Wasting.Rate),
		zap.Float64("underweight_rate", national.Underweight.Rate),
	)

	riskRecords := make([]model.RiskRecord, 0, len(aggRes.Districts))
	for _, agg := range aggRes.Districts {
		riskRecords = append(riskRecords, score.Compute(agg, p.cfg.Score))
	}

	joinRes, err := geo.Join(fc, riskRecords, p.cfg.Boundary.NameFields)
	if err != nil {
		return nil, err
	}

	provinces := export.Provinces(riskRecords)
	artifacts := export.Artifacts{
		Analytics: export.Analytics(riskRecords),
		Hotspots:  export.Hotspots(riskRecords, p.cfg.Export.TopN),
		Provinces: provinces,
		Briefs:    export.Briefs(provinces),
		Geometry:  fc,
		Report: export.Report(national, riskRecords, provinces,
			p.cfg.Score.HighRiskStunting, p.cfg.Score.LowRiskStunting),
	}
	if err := export.Write(p.cfg.Export.Dir, artifacts); err != nil {
		return nil, err
	}

	summary := p.buildSummary(records, aggRes, riskRecords, joinRes, len(provinces))
	log.Info("run complete",
		zap.Int("districts", summary.Districts),
		zap.Int("matched", summary.JoinMatched),
		zap.Int("unmatched", len(summary.JoinUnmatched)),
		zap.Int("warnings", len(summary.Warnings)),
	)
	return summary, nil
}

// buildSummary assembles the operator-facing accounting for the run.
func (p *Pipeline) buildSummary(records []model.ChildRecord, aggRes AggregateResult, riskRecords []model.RiskRecord, joinRes geo.JoinResult, provinces int) *model.RunSummary {
	s := &model.RunSummary{
		TotalChildren: len(records),
		Unassigned:    aggRes.Unassigned,
		Districts:     len(aggRes.Districts),
		Provinces:     provinces,
		JoinMatched:   joinRes.Matched,
		JoinUnmatched: joinRes.Unmatched,
	}

	if aggRes.Unassigned > 0 {
		s.Warnings = append(s.Warnings,
			fmt.Sprintf("%d child records had no district id and were excluded", aggRes.Unassigned))
	}
	s.Warnings = append(s.Warnings, zeroMeasuredWarnings(aggRes.Districts)...)
	if joinRes.Matched == 0 {
		s.Warnings = append(s.Warnings, "no boundary features matched any district")
	}

	for _, r := range riskRecords {
		if r.Stunting.Rate >= p.cfg.Score.HighRiskStunting {
			s.HighRiskCount++
		}
		if r.Stunting.Rate < p.cfg.Score.LowRiskStunting {
			s.LowRiskCount++
		}
	}
	return s
}

// zeroMeasuredWarnings reports every district/indicator pair with no
// measured children. The rate defaults to 0 there, which operators should
// know about before reading it as a genuine zero prevalence.
func zeroMeasuredWarnings(districts []model.DistrictAggregate) []string {
	var warnings []string
	for _, d := range districts {
		for _, ind := range []struct {
			name  string
			stats model.IndicatorStats
		}{
			{"stunting", d.Stunting},
			{"wasting", d.Wasting},
			{"underweight", d.Underweight},
		} {
			if ind.stats.Measured == 0 {
				warnings = append(warnings,
					fmt.Sprintf("district %s: no measured children for %s, rate defaults to 0", d.District, ind.name))
				zap.L().Warn("aggregate: no measured children for indicator",
					zap.String("district", d.District),
					zap.String("indicator", ind.name),
				)
			}
		}
	}
	return warnings
}
