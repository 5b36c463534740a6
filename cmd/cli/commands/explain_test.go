package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shelterconnect/shelter-matcher/pkg/core/matcher"
	"github.com/shelterconnect/shelter-matcher/pkg/core/model"
	"github.com/shelterconnect/shelter-matcher/pkg/core/services"
)

func intPtr(v int) *int { return &v }

func TestPrintExplanations(t *testing.T) {
	explanations := []services.ReferralExplanation{
		{
			Referral: model.Referral{RowID: "7", FirstName: "Ana", LastName: "Diaz", SPA: intPtr(4), GenderBedPref: "female"},
			Verdicts: []matcher.Verdict{
				{ShelterUID: "S1", ShelterName: "Hope House", ShelterSPA: intPtr(4), Matched: true, Reason: matcher.ReasonOK},
				{ShelterUID: "S2", ShelterName: "Bright Path", Matched: false, Reason: "no beds available"},
			},
		},
	}

	var buf bytes.Buffer
	printExplanations(&buf, explanations, false)

	expected := "\nReferral 7 (Ana Diaz) - 1 of 2 shelters match\n" +
		"SPA=4, age=unknown, gender_pref=female, gender_id=\n" +
		"  ✓ S1 (Hope House)\n" +
		"  ✗ S2 (Bright Path): no beds available\n" +
		"\n"
	assert.Equal(t, expected, buf.String())
}

func TestPrintExplanations_Color(t *testing.T) {
	explanations := []services.ReferralExplanation{
		{
			Referral: model.Referral{RowID: "7"},
			Verdicts: []matcher.Verdict{{ShelterUID: "S1", Matched: true}},
		},
	}

	var buf bytes.Buffer
	printExplanations(&buf, explanations, true)

	assert.Contains(t, buf.String(), colorGreen+"✓"+colorReset)
}

func TestPrintColumnSamples(t *testing.T) {
	var buf bytes.Buffer
	printColumnSamples(&buf, "spa", []services.ColumnSample{
		{Name: "spa", Values: []string{"4", "5"}},
		{Name: "spa_notes", Values: []string{}},
	})
	assert.Equal(t, "\nShelter columns containing \"spa\":\n  spa: [4 5]\n  spa_notes: []\n", buf.String())

	buf.Reset()
	printColumnSamples(&buf, "region", nil)
	assert.Equal(t, "\nNo shelter columns contain \"region\"\n", buf.String())
}

func TestOptionalInt(t *testing.T) {
	assert.Equal(t, "unknown", optionalInt(nil))
	assert.Equal(t, "0", optionalInt(intPtr(0)))
	assert.Equal(t, "55", optionalInt(intPtr(55)))
}
