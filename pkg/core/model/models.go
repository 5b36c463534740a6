package model

import "time"

// TagAll is the tag meaning a shelter serves every age group or gender
const TagAll = "all"

// Record is a single loosely typed source row keyed by column title
type Record map[string]any

// Referral represents a person seeking shelter, normalized from a referral form row
type Referral struct {
	RowID     string
	FirstName string
	LastName  string

	Age            *int // nil when unknown
	GenderIdentity string
	GenderBedPref  string

	CurrentLocation string
	SPA             *int // extracted from CurrentLocation, nil when unknown
	PreferredSPA    string
	PreferredCity   string
	ExcludeSPA      []string
	ExcludeCityName string
	SkidRow         string

	Vehicle     bool
	VehicleInfo string

	HasAnyAnimal bool

	Health           string
	Accessibility    string
	RoomType         string
	TopBunk          string
	PresentingIssues string
}

// Shelter represents a shelter facility from the shelter database
type Shelter struct {
	UID    string // empty when missing, such a shelter never matches
	Name   string
	SPA    *int
	Cities string

	// Age and Gender are never empty: an empty source value becomes ["all"]
	Age    []string
	Gender []string

	Pets              []string
	Programs          []string
	EntryRequirements []string

	// Source text of the tag fields, kept for output
	PetsText              string
	ProgramsText          string
	EntryRequirementsText string
	Demographics          string

	SpecialSituationRestrictions string
	Accessibility                string
	HealthServices               string
	RoomStyle                    string
	Storage                      string
	Meals                        string
	Parking                      string
	Vehicles                     string
	CriminalHistory              string

	Email string
	Phone string
}

// BedAvailability is the bed count reported for a shelter on a given date
type BedAvailability struct {
	ShelterUID    string
	BedsAvailable int
	Date          time.Time
}

// MatchRow is one (referral, shelter) pair that passed every rule
type MatchRow struct {
	RefRowID            string
	RefFirstName        string
	RefLastName         string
	RefAge              *int
	RefGenderIdentity   string
	RefGenderBedPref    string
	RefSPA              *int
	RefVehicle          bool
	RefHasAnyAnimal     bool
	RefCurrentLocation  string
	RefPresentingIssues string

	ShelterUID               string
	ShelterName              string
	ShelterSPA               *int
	ShelterCities            string
	ShelterPets              string
	ShelterDemographics      string
	ShelterPrograms          string
	ShelterEntryRequirements string
	ShelterEmail             string
	ShelterPhone             string

	BedsAvailable   int
	BedsLastUpdated time.Time
}

// MatchColumns is the output column order for tabular export
var MatchColumns = []string{
	"ref_row_id",
	"ref_first_name",
	"ref_last_name",
	"ref_age",
	"ref_gender_identity",
	"ref_gender_bed_pref",
	"ref_spa",
	"ref_vehicle",
	"ref_has_any_animal",
	"ref_current_location",
	"ref_presenting_issues",
	"shelter_uid",
	"shelter_name",
	"shelter_spa",
	"shelter_cities",
	"shelter_pets",
	"shelter_demographics",
	"shelter_programs",
	"shelter_entry_requirements",
	"shelter_email",
	"shelter_phone",
	"beds_available",
	"beds_last_updated",
}

// Values returns the row cells in MatchColumns order.
// Unknown integers are returned as nil so writers leave the cell blank.
func (r MatchRow) Values() []any {
	var lastUpdated any
	if !r.BedsLastUpdated.IsZero() {
		lastUpdated = r.BedsLastUpdated.Format("2006-01-02")
	}

	return []any{
		r.RefRowID,
		r.RefFirstName,
		r.RefLastName,
		intOrNil(r.RefAge),
		r.RefGenderIdentity,
		r.RefGenderBedPref,
		intOrNil(r.RefSPA),
		r.RefVehicle,
		r.RefHasAnyAnimal,
		r.RefCurrentLocation,
		r.RefPresentingIssues,
		r.ShelterUID,
		r.ShelterName,
		intOrNil(r.ShelterSPA),
		r.ShelterCities,
		r.ShelterPets,
		r.ShelterDemographics,
		r.ShelterPrograms,
		r.ShelterEntryRequirements,
		r.ShelterEmail,
		r.ShelterPhone,
		r.BedsAvailable,
		lastUpdated,
	}
}

func intOrNil(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
