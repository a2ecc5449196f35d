package survey

import (
	"context"
	"encoding/csv"
	"io"

	"github.com/rotisserie/eris"

	"github.com/nisr-analytics/nutrition-cli/internal/config"
	"github.com/nisr-analytics/nutrition-cli/internal/model"
)

// ReadCSV parses child records from CSV data. The first row must be a
// header containing every configured column.
func ReadCSV(ctx context.Context, r io.Reader, cols config.SurveyColumns) ([]model.ChildRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow variable fields

	header, err := reader.Read()
	if err == io.EOF {
		return nil, eris.New("survey: empty CSV input")
	}
	if err != nil {
		return nil, eris.Wrap(err, "survey: read CSV header")
	}

	idx, err := resolveColumns(header, cols)
	if err != nil {
		return nil, err
	}

	var records []model.ChildRecord
	for {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "survey: context cancelled")
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "survey: read CSV row")
		}
		records = append(records, recordFromRow(row, idx))
	}

	return records, nil
}
