package matcher

import (
	"slices"

	"github.com/shelterconnect/shelter-matcher/pkg/core/model"
)

// TagNoPetsAllowed marks a shelter that accepts no animals
const TagNoPetsAllowed = "no_pets_allowed"

// PetsRule requires a shelter that accepts some kind of animal when the client has one.
// An empty pets field counts as not accepting animals.
type PetsRule struct{}

func (PetsRule) Name() string {
	return "Pets"
}

func (PetsRule) Check(ref *model.Referral, shelter *model.Shelter, beds BedsByShelter) (bool, string) {
	if !ref.HasAnyAnimal {
		return true, ""
	}

	if len(shelter.Pets) == 0 {
		return false, "client has animal but shelter has no pets field"
	}
	if slices.Contains(shelter.Pets, TagNoPetsAllowed) {
		return false, "client has animal but shelter has no_pets_allowed"
	}

	return true, ""
}
