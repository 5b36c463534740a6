package matcher

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shelterconnect/shelter-matcher/pkg/core/model"
)

// Verdict is the explain-mode outcome for one (referral, shelter) pair
type Verdict struct {
	ShelterUID  string
	ShelterName string
	ShelterSPA  *int
	Matched     bool
	Reason      string
}

// Status renders the verdict as MATCH or NO (<reason>)
func (v Verdict) Status() string {
	if v.Matched {
		return "MATCH"
	}
	return fmt.Sprintf("NO (%s)", v.Reason)
}

// ExplainReferral evaluates one referral against every shelter in order
func ExplainReferral(ref *model.Referral, shelters []model.Shelter, beds BedsByShelter) []Verdict {
	verdicts := make([]Verdict, 0, len(shelters))
	for i := range shelters {
		shelter := &shelters[i]
		ok, reason := DebugMatch(ref, shelter, beds)
		verdicts = append(verdicts, Verdict{
			ShelterUID:  shelter.UID,
			ShelterName: shelter.Name,
			ShelterSPA:  shelter.SPA,
			Matched:     ok,
			Reason:      reason,
		})
	}
	return verdicts
}

// PrintNoMatchDiagnostics writes, for each referral, why every shelter did or did not match.
// It only reads its inputs.
func PrintNoMatchDiagnostics(w io.Writer, refs []model.Referral, shelters []model.Shelter, beds BedsByShelter) error {
	if _, err := fmt.Fprint(w, "\n================ DEBUG: No matches found ================\n\n"); err != nil {
		return err
	}

	for i := range refs {
		if err := PrintReferralDiagnostics(w, &refs[i], shelters, beds); err != nil {
			return err
		}
	}
	return nil
}

// PrintReferralDiagnostics writes the verdict block for a single referral
func PrintReferralDiagnostics(w io.Writer, ref *model.Referral, shelters []model.Shelter, beds BedsByShelter) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Referral %s (%s %s), SPA=%s, age=%s, gender_pref=%s, gender_id=%s\n",
		ref.RowID, ref.FirstName, ref.LastName,
		formatOptional(ref.SPA), formatOptional(ref.Age),
		ref.GenderBedPref, ref.GenderIdentity)
	b.WriteString(strings.Repeat("-", 80))
	b.WriteString("\n")

	for _, v := range ExplainReferral(ref, shelters, beds) {
		fmt.Fprintf(&b, "%s -> %s (%s), shelter_SPA=%s: %s\n",
			ref.RowID, v.ShelterUID, v.ShelterName, formatOptional(v.ShelterSPA), v.Status())
	}
	b.WriteString("\n\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func formatOptional(p *int) string {
	if p == nil {
		return "unknown"
	}
	return strconv.Itoa(*p)
}
