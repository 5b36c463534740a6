package matcher

import (
	"github.com/shelterconnect/shelter-matcher/pkg/core/model"
)

// BedsByShelter maps a shelter uid to its most recent bed availability
type BedsByShelter map[string]model.BedAvailability

// ReasonOK is the DebugMatch reason for a pair that passes every rule
const ReasonOK = "OK"

// Rule is a single hard eligibility constraint between a referral and a shelter
type Rule interface {
	// Name returns a short identifier for this rule
	Name() string

	// Check returns false and a human-readable reason when the pair violates the rule
	// The reason is empty when the pair passes
	Check(ref *model.Referral, shelter *model.Shelter, beds BedsByShelter) (bool, string)
}

// defaultRules is the fixed evaluation order: cheapest and most decisive filters first
var defaultRules = []Rule{
	BedsRule{},
	SPAExclusionRule{},
	PetsRule{},
	VehicleRule{},
	GenderRule{},
	AgeRule{},
}

// DefaultRules returns the rules in evaluation order
func DefaultRules() []Rule {
	rules := make([]Rule, len(defaultRules))
	copy(rules, defaultRules)
	return rules
}

// Evaluate runs the rules in order and stops at the first failure.
// It returns the failing rule's reason, or ReasonOK when every rule passes.
func Evaluate(ref *model.Referral, shelter *model.Shelter, beds BedsByShelter) (bool, string) {
	for _, rule := range defaultRules {
		if ok, reason := rule.Check(ref, shelter, beds); !ok {
			return false, reason
		}
	}
	return true, ReasonOK
}

// IsExactMatch reports whether the shelter satisfies every rule for the referral
func IsExactMatch(ref *model.Referral, shelter *model.Shelter, beds BedsByShelter) bool {
	ok, _ := Evaluate(ref, shelter, beds)
	return ok
}

// DebugMatch is IsExactMatch that also returns the first failing reason
func DebugMatch(ref *model.Referral, shelter *model.Shelter, beds BedsByShelter) (bool, string) {
	return Evaluate(ref, shelter, beds)
}
