package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/shelterconnect/shelter-matcher/pkg/core/coerce"
	"github.com/shelterconnect/shelter-matcher/pkg/core/matcher"
)

// CSV writes the match set as comma separated values with a header row
type CSV struct{}

func (CSV) Extension() string {
	return "csv"
}

func (CSV) ContentType() string {
	return "text/csv"
}

func (CSV) Export(set *matcher.MatchSet) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(set.Columns); err != nil {
		return nil, fmt.Errorf("csv: write header: %w", err)
	}

	record := make([]string, len(set.Columns))
	for _, row := range set.Rows {
		for i, v := range row.Values() {
			record[i] = coerce.ToText(v)
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("csv: write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv: flush: %w", err)
	}

	return buf.Bytes(), nil
}
