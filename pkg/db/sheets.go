package db

import (
	"context"
	"fmt"

	"github.com/shelterconnect/shelter-matcher/internal/config"
	"github.com/shelterconnect/shelter-matcher/pkg/core/model"
)

// RecordLister reads one spreadsheet tab as header-keyed records
type RecordLister interface {
	ListRecords(ctx context.Context, spreadsheetID, tab string) ([]model.Record, error)
}

// SheetsSource reads referrals, shelters and bed availability from Google Sheets
type SheetsSource struct {
	lister RecordLister
	cfg    *config.Config
}

// NewSheetsSource creates a RecordSource over the tabs named in cfg
func NewSheetsSource(lister RecordLister, cfg *config.Config) *SheetsSource {
	return &SheetsSource{
		lister: lister,
		cfg:    cfg,
	}
}

// GetReferrals retrieves all referral rows
func (s *SheetsSource) GetReferrals(ctx context.Context) ([]model.Record, error) {
	records, err := s.lister.ListRecords(ctx, s.cfg.ReferralSheetID, s.cfg.ReferralTab)
	if err != nil {
		return nil, fmt.Errorf("failed to get referrals: %w", err)
	}
	return records, nil
}

// GetShelters retrieves all shelter rows
func (s *SheetsSource) GetShelters(ctx context.Context) ([]model.Record, error) {
	records, err := s.lister.ListRecords(ctx, s.cfg.ShelterSheetID, s.cfg.ShelterTab)
	if err != nil {
		return nil, fmt.Errorf("failed to get shelters: %w", err)
	}
	return records, nil
}

// GetBedAvailability retrieves all bed availability rows
func (s *SheetsSource) GetBedAvailability(ctx context.Context) ([]model.Record, error) {
	records, err := s.lister.ListRecords(ctx, s.cfg.BedSheetID, s.cfg.BedTab)
	if err != nil {
		return nil, fmt.Errorf("failed to get bed availability: %w", err)
	}
	return records, nil
}
