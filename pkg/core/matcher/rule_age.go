package matcher

import (
	"fmt"

	"github.com/shelterconnect/shelter-matcher/pkg/core/model"
)

// Age limits for single-focus shelters
const (
	SeniorMinAge = 55
	TAYMaxAge    = 24
)

// AgeRule enforces age limits for shelters that serve only seniors or only TAY.
// Shelters with mixed or broader age tags, and referrals with unknown age, pass.
type AgeRule struct{}

func (AgeRule) Name() string {
	return "Age"
}

func (AgeRule) Check(ref *model.Referral, shelter *model.Shelter, beds BedsByShelter) (bool, string) {
	if ref.Age == nil {
		return true, ""
	}
	age := *ref.Age

	if onlyTag(shelter.Age, TagSeniors) && age < SeniorMinAge {
		return false, fmt.Sprintf("age %d < %d for seniors-only shelter", age, SeniorMinAge)
	}

	if onlyTag(shelter.Age, TagTAY) && age > TAYMaxAge {
		return false, fmt.Sprintf("age %d > %d for TAY-only shelter", age, TAYMaxAge)
	}

	return true, ""
}

func onlyTag(tags []string, tag string) bool {
	return len(tags) == 1 && tags[0] == tag
}
