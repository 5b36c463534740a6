package sheetsclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelterconnect/shelter-matcher/pkg/core/model"
)

func TestParseRecords(t *testing.T) {
	raw := [][]interface{}{
		{"uid", " first_name ", "", "age"},
		{"1", "Ana", "ignored", "34"},
		{"2", "Ben"},
		{"", "  ", ""},
		{"3", "Cy", "x", "", "beyond header"},
	}

	records := parseRecords(raw)

	require.Len(t, records, 3)
	assert.Equal(t, model.Record{"uid": "1", "first_name": "Ana", "age": "34"}, records[0])
	assert.Equal(t, model.Record{"uid": "2", "first_name": "Ben"}, records[1])
	assert.Equal(t, model.Record{"uid": "3", "first_name": "Cy", "age": ""}, records[2])

	_, hasAge := records[1]["age"]
	assert.False(t, hasAge)
}

func TestParseRecords_Empty(t *testing.T) {
	assert.Empty(t, parseRecords(nil))
	assert.NotNil(t, parseRecords(nil))
	assert.Empty(t, parseRecords([][]interface{}{{"uid", "first_name"}}))
}

func TestParseRecords_NonStringCells(t *testing.T) {
	raw := [][]interface{}{
		{"ShelterID", "BedsAvailable"},
		{"SHELTER_001", float64(4)},
	}

	records := parseRecords(raw)

	require.Len(t, records, 1)
	assert.Equal(t, float64(4), records[0]["BedsAvailable"])
}
