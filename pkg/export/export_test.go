package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/shelterconnect/shelter-matcher/pkg/core/matcher"
	"github.com/shelterconnect/shelter-matcher/pkg/core/model"
)

func intPtr(n int) *int {
	return &n
}

func sampleSet() *matcher.MatchSet {
	return &matcher.MatchSet{
		Columns: model.MatchColumns,
		Rows: []model.MatchRow{
			{
				RefRowID:        "7",
				RefFirstName:    "Ana",
				RefAge:          intPtr(31),
				RefSPA:          nil,
				RefVehicle:      true,
				ShelterUID:      "SHELTER-001",
				ShelterName:     "Hope House, Downtown",
				ShelterSPA:      intPtr(4),
				BedsAvailable:   2,
				BedsLastUpdated: time.Date(2025, 11, 19, 0, 0, 0, 0, time.UTC),
			},
		},
	}
}

func TestForFormat(t *testing.T) {
	x, err := ForFormat("xlsx")
	require.NoError(t, err)
	assert.Equal(t, "xlsx", x.Extension())

	c, err := ForFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, "csv", c.Extension())
	assert.Equal(t, "text/csv", c.ContentType())

	_, err = ForFormat("pdf")
	assert.Error(t, err)
}

func TestXLSX_Export(t *testing.T) {
	data, err := XLSX{}.Export(sampleSet())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, model.MatchColumns, rows[0])

	row := rows[1]
	require.Len(t, row, len(model.MatchColumns))
	assert.Equal(t, "7", row[0])
	assert.Equal(t, "Ana", row[1])
	assert.Equal(t, "31", row[3])
	assert.Equal(t, "", row[6], "unknown referral SPA is blank")
	assert.Equal(t, "SHELTER-001", row[11])
	assert.Equal(t, "Hope House, Downtown", row[12])
	assert.Equal(t, "4", row[13])
	assert.Equal(t, "2", row[21])
	assert.Equal(t, "2025-11-19", row[22])
}

func TestXLSX_EmptySetKeepsHeader(t *testing.T) {
	set := matcher.BuildMatches(nil, nil, nil)

	data, err := XLSX{}.Export(set)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, model.MatchColumns, rows[0])
}

func TestCSV_Export(t *testing.T) {
	data, err := CSV{}.Export(sampleSet())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, model.MatchColumns, records[0])

	row := records[1]
	assert.Equal(t, "7", row[0])
	assert.Equal(t, "31", row[3])
	assert.Equal(t, "", row[6])
	assert.Equal(t, "true", row[7])
	assert.Equal(t, "false", row[8])
	assert.Equal(t, "Hope House, Downtown", row[12])
	assert.Equal(t, "2025-11-19", row[22])
}

func TestCSV_EmptySetKeepsHeader(t *testing.T) {
	data, err := CSV{}.Export(matcher.BuildMatches(nil, nil, nil))
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Len(t, records[0], 23)
}
