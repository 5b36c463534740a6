package normalize

import (
	"strings"

	"github.com/shelterconnect/shelter-matcher/pkg/core/coerce"
	"github.com/shelterconnect/shelter-matcher/pkg/core/model"
)

// Column titles in the shelter database sheet
const (
	shelterID                  = "shelter_id"
	shelterName                = "shelter_name"
	shelterSPA                 = "spa"
	shelterCities              = "cities"
	shelterAgeGroup            = "age_group"
	shelterGender              = "gender"
	shelterDemographics        = "demographics"
	shelterPrograms            = "shelter_programs"
	shelterEntryRequirements   = "entry_requirements"
	shelterSpecialRestrictions = "special_situation_restrictions"
	shelterAccessibility       = "accessibility"
	shelterHealthServices      = "health_services"
	shelterRoomStyle           = "room_style"
	shelterStorage             = "storage"
	shelterPets                = "pets"
	shelterMeals               = "meals"
	shelterParking             = "parking"
	shelterVehicles            = "vehicles"
	shelterCriminalHistory     = "criminal_history"
	shelterEmail               = "email"
	shelterPhone               = "phone"
)

// Shelter converts a shelter database row into a model.Shelter
// Empty age group and gender tags are replaced with ["all"]
func Shelter(rec model.Record) model.Shelter {
	return model.Shelter{
		UID:    shelterKey(rec[shelterID]),
		Name:   text(rec, shelterName),
		SPA:    coerce.ToIntPtr(rec[shelterSPA]),
		Cities: text(rec, shelterCities),

		Age:    orAll(coerce.SplitTags(rec[shelterAgeGroup])),
		Gender: orAll(coerce.SplitTags(rec[shelterGender])),

		Pets:              coerce.SplitTags(rec[shelterPets]),
		Programs:          coerce.SplitTags(rec[shelterPrograms]),
		EntryRequirements: coerce.SplitTags(rec[shelterEntryRequirements]),

		PetsText:              text(rec, shelterPets),
		ProgramsText:          text(rec, shelterPrograms),
		EntryRequirementsText: text(rec, shelterEntryRequirements),
		Demographics:          text(rec, shelterDemographics),

		SpecialSituationRestrictions: text(rec, shelterSpecialRestrictions),
		Accessibility:                text(rec, shelterAccessibility),
		HealthServices:               text(rec, shelterHealthServices),
		RoomStyle:                    text(rec, shelterRoomStyle),
		Storage:                      text(rec, shelterStorage),
		Meals:                        text(rec, shelterMeals),
		Parking:                      text(rec, shelterParking),
		Vehicles:                     text(rec, shelterVehicles),
		CriminalHistory:              text(rec, shelterCriminalHistory),

		Email: text(rec, shelterEmail),
		Phone: text(rec, shelterPhone),
	}
}

// Shelters normalizes every row, preserving order
func Shelters(records []model.Record) []model.Shelter {
	shelters := make([]model.Shelter, 0, len(records))
	for _, rec := range records {
		shelters = append(shelters, Shelter(rec))
	}
	return shelters
}

func orAll(tags []string) []string {
	if len(tags) == 0 {
		return []string{model.TagAll}
	}
	return tags
}

// shelterKey trims a shelter id and rewrites underscores to dashes, so shelter
// rows and bed rows written as SHELTER_001 or SHELTER-001 join on the same key.
func shelterKey(v any) string {
	return strings.ReplaceAll(strings.TrimSpace(coerce.ToText(v)), "_", "-")
}
