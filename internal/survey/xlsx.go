package survey

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/nisr-analytics/nutrition-cli/internal/config"
	"github.com/nisr-analytics/nutrition-cli/internal/model"
)

// ReadXLSX parses child records from an XLSX workbook. The first row of the
// selected sheet must be a header containing every configured column. An
// empty sheetName selects the first sheet.
func ReadXLSX(path, sheetName string, cols config.SurveyColumns) ([]model.ChildRecord, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "survey: open xlsx file")
	}

	sheet, err := getSheet(f, sheetName)
	if err != nil {
		return nil, err
	}
	if len(sheet.Rows) == 0 {
		return nil, eris.New("survey: empty xlsx sheet")
	}

	idx, err := resolveColumns(rowToStrings(sheet.Rows[0]), cols)
	if err != nil {
		return nil, err
	}

	records := make([]model.ChildRecord, 0, len(sheet.Rows)-1)
	for _, row := range sheet.Rows[1:] {
		records = append(records, recordFromRow(rowToStrings(row), idx))
	}

	return records, nil
}

func getSheet(f *xlsx.File, name string) (*xlsx.Sheet, error) {
	if name != "" {
		sheet, ok := f.Sheet[name]
		if !ok {
			return nil, eris.Errorf("survey: sheet %q not found", name)
		}
		return sheet, nil
	}

	if len(f.Sheets) == 0 {
		return nil, eris.New("survey: xlsx file has no sheets")
	}
	return f.Sheets[0], nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}
