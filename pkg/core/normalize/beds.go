package normalize

import (
	"strings"
	"time"

	"github.com/shelterconnect/shelter-matcher/pkg/core/coerce"
	"github.com/shelterconnect/shelter-matcher/pkg/core/model"
)

// Column titles in the bed availability sheet
const (
	bedShelterID     = "ShelterID"
	bedBedsAvailable = "BedsAvailable"
	bedDate          = "Date"
)

// BedRow converts a bed availability row into a model.BedAvailability.
// ok is false when the row has no shelter id or no parseable date.
// Shelter ids are normalized with shelterKey.
func BedRow(rec model.Record) (model.BedAvailability, bool) {
	uid := shelterKey(rec[bedShelterID])
	if uid == "" {
		return model.BedAvailability{}, false
	}

	date, ok := parseDate(rec[bedDate])
	if !ok {
		return model.BedAvailability{}, false
	}

	beds, ok := coerce.ToIntOrNone(rec[bedBedsAvailable])
	if !ok || beds < 0 {
		beds = 0
	}

	return model.BedAvailability{
		ShelterUID:    uid,
		BedsAvailable: beds,
		Date:          date,
	}, true
}

// LatestBedsByShelter keeps the most recent row per shelter id.
// Rows dated the same as the current latest do not replace it, so the first one seen wins.
func LatestBedsByShelter(records []model.Record) map[string]model.BedAvailability {
	latest := make(map[string]model.BedAvailability)

	for _, rec := range records {
		row, ok := BedRow(rec)
		if !ok {
			continue
		}

		current, exists := latest[row.ShelterUID]
		if !exists || row.Date.After(current.Date) {
			latest[row.ShelterUID] = row
		}
	}

	return latest
}

func parseDate(v any) (time.Time, bool) {
	if t, ok := v.(time.Time); ok {
		if t.IsZero() {
			return time.Time{}, false
		}
		return t, true
	}

	s := strings.TrimSpace(coerce.ToText(v))
	if s == "" {
		return time.Time{}, false
	}

	if d, err := time.Parse("2006-01-02", s); err == nil {
		return d, true
	}
	if d, err := time.Parse(time.RFC3339, s); err == nil {
		return d, true
	}
	return time.Time{}, false
}
