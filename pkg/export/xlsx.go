package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/shelterconnect/shelter-matcher/pkg/core/matcher"
)

// SheetName is the worksheet holding the matches
const SheetName = "matches"

// XLSX writes the match set as a single-sheet Excel workbook
type XLSX struct{}

func (XLSX) Extension() string {
	return "xlsx"
}

func (XLSX) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Export writes the header row followed by one row per match. Unknown values are left blank.
func (XLSX) Export(set *matcher.MatchSet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(set.Columns))
	for i, col := range set.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range set.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := row.Values()
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}
