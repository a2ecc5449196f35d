// Package survey reads child anthropometric records from tabular sources.
package survey

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/nisr-analytics/nutrition-cli/internal/config"
	"github.com/nisr-analytics/nutrition-cli/internal/model"
)

// Load reads child records from the configured survey file, choosing the
// parser by file extension (.csv or .xlsx).
func Load(ctx context.Context, cfg config.SurveyConfig) ([]model.ChildRecord, error) {
	if cfg.Path == "" {
		return nil, eris.New("survey: no input path configured")
	}

	switch strings.ToLower(filepath.Ext(cfg.Path)) {
	case ".csv":
		f, err := os.Open(cfg.Path)
		if err != nil {
			return nil, eris.Wrap(err, "survey: open input file")
		}
		defer f.Close() //nolint:errcheck
		return ReadCSV(ctx, f, cfg.Columns)
	case ".xlsx":
		return ReadXLSX(cfg.Path, cfg.Sheet, cfg.Columns)
	default:
		return nil, eris.Errorf("survey: unsupported input format %q", filepath.Ext(cfg.Path))
	}
}

// columnIndex holds the resolved header position of each survey field.
type columnIndex struct {
	district    int
	province    int
	stunting    int
	wasting     int
	underweight int
}

// resolveColumns locates every required column in the header row, matching
// case-insensitively. A column missing from the schema entirely is a fatal
// configuration error: a record can be unmeasured, but a dataset without
// the field has no denominator to compute.
func resolveColumns(header []string, cols config.SurveyColumns) (columnIndex, error) {
	idx := columnIndex{district: -1, province: -1, stunting: -1, wasting: -1, underweight: -1}

	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case strings.ToLower(cols.District):
			idx.district = i
		case strings.ToLower(cols.Province):
			idx.province = i
		case strings.ToLower(cols.Stunting):
			idx.stunting = i
		case strings.ToLower(cols.Wasting):
			idx.wasting = i
		case strings.ToLower(cols.Underweight):
			idx.underweight = i
		}
	}

	var missing []string
	if idx.district < 0 {
		missing = append(missing, cols.District)
	}
	if idx.province < 0 {
		missing = append(missing, cols.Province)
	}
	if idx.stunting < 0 {
		missing = append(missing, cols.Stunting)
	}
	if idx.wasting < 0 {
		missing = append(missing, cols.Wasting)
	}
	if idx.underweight < 0 {
		missing = append(missing, cols.Underweight)
	}
	if len(missing) > 0 {
		return idx, eris.Errorf("survey: required columns missing from header: %s", strings.Join(missing, ", "))
	}

	return idx, nil
}

// recordFromRow extracts a ChildRecord from a row using resolved indices.
// Short rows yield empty (unmeasured) values rather than an error.
func recordFromRow(row []string, idx columnIndex) model.ChildRecord {
	return model.ChildRecord{
		District:    cell(row, idx.district),
		Province:    cell(row, idx.province),
		Stunting:    cell(row, idx.stunting),
		Wasting:     cell(row, idx.wasting),
		Underweight: cell(row, idx.underweight),
	}
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
