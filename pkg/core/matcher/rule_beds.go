package matcher

import (
	"github.com/shelterconnect/shelter-matcher/pkg/core/model"
)

// BedsRule requires the shelter to have at least one available bed.
// A shelter without a uid can never be looked up and always fails.
type BedsRule struct{}

func (BedsRule) Name() string {
	return "Beds"
}

func (BedsRule) Check(ref *model.Referral, shelter *model.Shelter, beds BedsByShelter) (bool, string) {
	if shelter.UID == "" {
		return false, "shelter uid missing"
	}

	info, ok := beds[shelter.UID]
	if !ok || info.BedsAvailable <= 0 {
		return false, "no beds available"
	}

	return true, ""
}
