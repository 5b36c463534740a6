package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shelterconnect/shelter-matcher/pkg/core/model"
)

// GetReferrals retrieves all referral rows in import order
func (db *DB) GetReferrals(ctx context.Context) ([]model.Record, error) {
	records, err := db.jsonRecords(ctx, `SELECT data FROM referral ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to get referrals: %w", err)
	}
	return records, nil
}

// GetShelters retrieves all shelter rows in import order
func (db *DB) GetShelters(ctx context.Context) ([]model.Record, error) {
	records, err := db.jsonRecords(ctx, `SELECT data FROM shelter ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to get shelters: %w", err)
	}
	return records, nil
}

// GetBedAvailability retrieves all bed availability rows in insertion order
func (db *DB) GetBedAvailability(ctx context.Context) ([]model.Record, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT shelter_id, beds_available, date
		FROM bed_availability
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query bed availability: %w", err)
	}
	defer rows.Close()

	var records []model.Record
	for rows.Next() {
		var shelterID string
		var beds *int32
		var date time.Time
		if err := rows.Scan(&shelterID, &beds, &date); err != nil {
			return nil, fmt.Errorf("failed to scan bed availability: %w", err)
		}
		records = append(records, bedRecord(shelterID, beds, date))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bed availability: %w", err)
	}

	return records, nil
}

func (db *DB) jsonRecords(ctx context.Context, query string) ([]model.Record, error) {
	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	var records []model.Record
	for rows.Next() {
		var data map[string]any
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		records = append(records, model.Record(data))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return records, nil
}

// bedRecord shapes a bed_availability row like a bed sheet row.
// A NULL count is left nil so it normalizes to zero beds.
func bedRecord(shelterID string, beds *int32, date time.Time) model.Record {
	rec := model.Record{
		"ShelterID": shelterID,
		"Date":      date,
	}
	if beds != nil {
		rec["BedsAvailable"] = int(*beds)
	} else {
		rec["BedsAvailable"] = nil
	}
	return rec
}
