// Package normalize maps source rows with arbitrary columns onto the
// canonical referral, shelter and bed availability types.
package normalize

import (
	"github.com/shelterconnect/shelter-matcher/pkg/core/coerce"
	"github.com/shelterconnect/shelter-matcher/pkg/core/model"
)

// Column titles in the referral form sheet
const (
	referralUID              = "uid"
	referralFirstName        = "first_name"
	referralLastName         = "last_name"
	referralAge              = "age"
	referralGenderIdentity   = "gender_identity"
	referralGenderBedPref    = "gender_bed_preference"
	referralCurrentStay      = "current_stay"
	referralPreferredSPA     = "preferred_spa"
	referralPreferredCity    = "preferred_city_name"
	referralExcludeSPA       = "exclude_spa"
	referralExcludeCity      = "exclude_city_name"
	referralSkidRow          = "skid_row"
	referralVehicle          = "vehicle"
	referralVehicleInfo      = "vehicle_info"
	referralHealth           = "health_concerns"
	referralAccessibility    = "accessibility"
	referralRoomType         = "congregate_environment"
	referralTopBunk          = "top_bunk"
	referralSpecialSituation = "special_situations"
)

// animalFields are the referral flags that indicate the client has an animal with them
var animalFields = []string{
	"animals",
	"service_animal",
	"emotional_supportemotional_support_animal",
	"pet",
}

// Referral converts a referral form row into a model.Referral
// Missing columns leave the corresponding field empty
func Referral(rec model.Record) model.Referral {
	ref := model.Referral{
		RowID:     text(rec, referralUID),
		FirstName: text(rec, referralFirstName),
		LastName:  text(rec, referralLastName),

		Age:            coerce.ToIntPtr(rec[referralAge]),
		GenderIdentity: text(rec, referralGenderIdentity),
		GenderBedPref:  text(rec, referralGenderBedPref),

		CurrentLocation: text(rec, referralCurrentStay),
		PreferredSPA:    text(rec, referralPreferredSPA),
		PreferredCity:   text(rec, referralPreferredCity),
		ExcludeSPA:      coerce.SplitTags(rec[referralExcludeSPA]),
		ExcludeCityName: text(rec, referralExcludeCity),
		SkidRow:         text(rec, referralSkidRow),

		Vehicle:     coerce.ToBool(rec[referralVehicle]),
		VehicleInfo: text(rec, referralVehicleInfo),

		HasAnyAnimal: hasAnyAnimal(rec),

		Health:           text(rec, referralHealth),
		Accessibility:    text(rec, referralAccessibility),
		RoomType:         text(rec, referralRoomType),
		TopBunk:          text(rec, referralTopBunk),
		PresentingIssues: text(rec, referralSpecialSituation),
	}

	if spa, ok := coerce.ExtractSpaFromLocation(rec[referralCurrentStay]); ok {
		ref.SPA = &spa
	}

	return ref
}

// Referrals normalizes every row, preserving order
func Referrals(records []model.Record) []model.Referral {
	refs := make([]model.Referral, 0, len(records))
	for _, rec := range records {
		refs = append(refs, Referral(rec))
	}
	return refs
}

func hasAnyAnimal(rec model.Record) bool {
	for _, field := range animalFields {
		if coerce.ToBool(rec[field]) {
			return true
		}
	}
	return false
}

func text(rec model.Record, field string) string {
	return coerce.ToText(rec[field])
}
