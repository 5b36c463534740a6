package services

import (
	"context"
	"errors"
	"sync"

	"github.com/shelterconnect/shelter-matcher/pkg/core/matcher"
	"github.com/shelterconnect/shelter-matcher/pkg/core/model"
)

// mockSource implements db.RecordSource
type mockSource struct {
	referrals []model.Record
	shelters  []model.Record
	beds      []model.Record

	getReferralsErr error
	getSheltersErr  error
	getBedsErr      error
}

func (m *mockSource) GetReferrals(ctx context.Context) ([]model.Record, error) {
	if m.getReferralsErr != nil {
		return nil, m.getReferralsErr
	}
	return m.referrals, nil
}

func (m *mockSource) GetShelters(ctx context.Context) ([]model.Record, error) {
	if m.getSheltersErr != nil {
		return nil, m.getSheltersErr
	}
	return m.shelters, nil
}

func (m *mockSource) GetBedAvailability(ctx context.Context) ([]model.Record, error) {
	if m.getBedsErr != nil {
		return nil, m.getBedsErr
	}
	return m.beds, nil
}

// mockExporter implements Exporter, rendering the row count
type mockExporter struct {
	exported *matcher.MatchSet
	err      error
}

func (m *mockExporter) Export(set *matcher.MatchSet) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.exported = set
	return []byte{byte(len(set.Rows))}, nil
}

func (m *mockExporter) Extension() string {
	return "xlsx"
}

func (m *mockExporter) ContentType() string {
	return "application/test"
}

type sentEmail struct {
	to       []string
	subject  string
	body     string
	filename string
	data     []byte
}

// mockNotifier implements Notifier
type mockNotifier struct {
	mu   sync.Mutex
	sent []sentEmail
	err  error
}

func (m *mockNotifier) SendAttachment(ctx context.Context, to []string, subject, body, filename string, data []byte) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentEmail{to: to, subject: subject, body: body, filename: filename, data: data})
	return nil
}

var errBoom = errors.New("boom")

// fixtureSource has two referrals and three shelters; referral 1 matches S1 and S2, referral 2 matches S1 only
func fixtureSource() *mockSource {
	return &mockSource{
		referrals: []model.Record{
			{"uid": "2", "first_name": "Ben", "pet": "yes", "current_stay": "SPA 4"},
			{"uid": "1", "first_name": "Ana", "current_stay": "SPA 4"},
		},
		shelters: []model.Record{
			{"shelter_id": "S1", "shelter_name": "Hope House", "spa": "4", "pets": "dogs"},
			{"shelter_id": "S2", "shelter_name": "Bright Path", "spa": "5", "pets": "no_pets_allowed"},
			{"shelter_id": "S3", "shelter_name": "Full Up", "spa": "5", "pets": "dogs"},
		},
		beds: []model.Record{
			{"ShelterID": "S1", "BedsAvailable": "3", "Date": "2025-11-18"},
			{"ShelterID": "S2", "BedsAvailable": "1", "Date": "2025-11-18"},
			{"ShelterID": "S3", "BedsAvailable": "0", "Date": "2025-11-19"},
			{"ShelterID": "S3", "BedsAvailable": "5", "Date": "2025-11-01"},
		},
	}
}
