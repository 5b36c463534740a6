package sheetsclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/shelterconnect/shelter-matcher/pkg/core/coerce"
	"github.com/shelterconnect/shelter-matcher/pkg/core/model"
)

// ListRecords reads a tab and returns one record per data row, keyed by the header row.
// An empty tab yields no records.
func (c *Client) ListRecords(ctx context.Context, spreadsheetID, tab string) ([]model.Record, error) {
	values, err := c.GetValues(ctx, spreadsheetID, tab)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s data: %w", tab, err)
	}

	return parseRecords(values), nil
}

// parseRecords converts raw spreadsheet data into records.
// Columns with a blank header are ignored, cells past the end of a short row
// are left out of the record, and rows with no non-blank cell are skipped.
func parseRecords(raw [][]interface{}) []model.Record {
	if len(raw) == 0 {
		return []model.Record{}
	}

	headers := make([]string, len(raw[0]))
	for i, cell := range raw[0] {
		headers[i] = strings.TrimSpace(coerce.ToText(cell))
	}

	records := make([]model.Record, 0, len(raw)-1)
	for _, row := range raw[1:] {
		rec := make(model.Record, len(headers))
		blank := true

		for i, cell := range row {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			rec[headers[i]] = cell
			if strings.TrimSpace(coerce.ToText(cell)) != "" {
				blank = false
			}
		}

		if blank {
			continue
		}
		records = append(records, rec)
	}

	return records
}
