package postgres

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelterconnect/shelter-matcher/pkg/core/normalize"
	"github.com/shelterconnect/shelter-matcher/pkg/db"
)

var _ db.RecordSource = (*DB)(nil)

func TestMigrationFiles_Embedded(t *testing.T) {
	files, err := migrationFiles(migrationsFS)
	require.NoError(t, err)

	assert.Equal(t, []string{"001_source_tables.sql", "002_bed_availability_index.sql"}, files)
}

func TestMigrationFiles_SortsAndFilters(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/010_later.sql":   {Data: []byte("SELECT 1;")},
		"migrations/002_second.sql":  {Data: []byte("SELECT 1;")},
		"migrations/README.md":       {Data: []byte("notes")},
		"migrations/001_first.sql":   {Data: []byte("SELECT 1;")},
		"migrations/archive/old.sql": {Data: []byte("SELECT 1;")},
	}

	files, err := migrationFiles(fsys)
	require.NoError(t, err)

	assert.Equal(t, []string{"001_first.sql", "002_second.sql", "010_later.sql"}, files)
}

func TestBedRecord_Normalizes(t *testing.T) {
	date := time.Date(2025, 11, 19, 0, 0, 0, 0, time.UTC)
	beds := int32(4)

	bed, ok := normalize.BedRow(bedRecord("SHELTER_001", &beds, date))
	require.True(t, ok)
	assert.Equal(t, "SHELTER-001", bed.ShelterUID)
	assert.Equal(t, 4, bed.BedsAvailable)
	assert.True(t, date.Equal(bed.Date))

	bed, ok = normalize.BedRow(bedRecord("SHELTER-002", nil, date))
	require.True(t, ok)
	assert.Equal(t, 0, bed.BedsAvailable)
}
