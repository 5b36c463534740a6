package db

import (
	"context"

	"github.com/shelterconnect/shelter-matcher/pkg/core/model"
)

// RecordSource provides the raw rows the matcher runs on.
// Both the Sheets-backed SheetsSource and postgres.DB implement this interface.
type RecordSource interface {
	GetReferrals(ctx context.Context) ([]model.Record, error)
	GetShelters(ctx context.Context) ([]model.Record, error)
	GetBedAvailability(ctx context.Context) ([]model.Record, error)
}
