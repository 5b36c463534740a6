package matcher

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/shelterconnect/shelter-matcher/pkg/core/model"
)

// MatchSet is the ordered result of a matching run.
// Columns is always populated so an empty set still exports with headers.
type MatchSet struct {
	Columns []string
	Rows    []model.MatchRow
}

// Empty reports whether no pair matched
func (m *MatchSet) Empty() bool {
	return len(m.Rows) == 0
}

// BuildMatches evaluates every referral against every shelter and keeps the exact matches.
// Rows are stably sorted by referral id, then shelter SPA, then shelter name.
func BuildMatches(refs []model.Referral, shelters []model.Shelter, beds BedsByShelter) *MatchSet {
	set := &MatchSet{
		Columns: slices.Clone(model.MatchColumns),
		Rows:    []model.MatchRow{},
	}

	for i := range refs {
		ref := &refs[i]
		for j := range shelters {
			shelter := &shelters[j]
			if !IsExactMatch(ref, shelter, beds) {
				continue
			}
			set.Rows = append(set.Rows, newMatchRow(ref, shelter, beds[shelter.UID]))
		}
	}

	slices.SortStableFunc(set.Rows, compareRows)

	return set
}

func newMatchRow(ref *model.Referral, shelter *model.Shelter, bed model.BedAvailability) model.MatchRow {
	return model.MatchRow{
		RefRowID:            ref.RowID,
		RefFirstName:        ref.FirstName,
		RefLastName:         ref.LastName,
		RefAge:              ref.Age,
		RefGenderIdentity:   ref.GenderIdentity,
		RefGenderBedPref:    ref.GenderBedPref,
		RefSPA:              ref.SPA,
		RefVehicle:          ref.Vehicle,
		RefHasAnyAnimal:     ref.HasAnyAnimal,
		RefCurrentLocation:  ref.CurrentLocation,
		RefPresentingIssues: ref.PresentingIssues,

		ShelterUID:               shelter.UID,
		ShelterName:              shelter.Name,
		ShelterSPA:               shelter.SPA,
		ShelterCities:            shelter.Cities,
		ShelterPets:              shelter.PetsText,
		ShelterDemographics:      shelter.Demographics,
		ShelterPrograms:          shelter.ProgramsText,
		ShelterEntryRequirements: shelter.EntryRequirementsText,
		ShelterEmail:             shelter.Email,
		ShelterPhone:             shelter.Phone,

		BedsAvailable:   bed.BedsAvailable,
		BedsLastUpdated: bed.Date,
	}
}

func compareRows(a, b model.MatchRow) int {
	if c := compareIDs(a.RefRowID, b.RefRowID); c != 0 {
		return c
	}
	if c := compareSPA(a.ShelterSPA, b.ShelterSPA); c != 0 {
		return c
	}
	return cmp.Compare(a.ShelterName, b.ShelterName)
}

// compareIDs orders numeric ids numerically and before any non-numeric id
func compareIDs(a, b string) int {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)

	switch {
	case errA == nil && errB == nil:
		return cmp.Compare(na, nb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return cmp.Compare(a, b)
	}
}

// compareSPA places unknown SPAs last
func compareSPA(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return cmp.Compare(*a, *b)
	}
}
