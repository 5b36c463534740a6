package matcher

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shelterconnect/shelter-matcher/pkg/core/model"
)

// Shelter gender and age tags consulted by the gender and age rules
const (
	TagSingleMen     = "single_men"
	TagSingleWomen   = "single_women"
	TagSingleMoms    = "single_moms"
	TagSingleParents = "single_parents"
	TagFamilies      = "families"
	TagSeniors       = "seniors"
	TagTAY           = "tay_teen"
)

var (
	femaleKeywords = []string{"female", "woman", "girl"}
	maleKeywords   = []string{"male", "man", "boy"}
	familyTags     = []string{TagFamilies, TagSingleMoms, TagSingleParents}
)

// GenderRule checks the client's gender preference against the shelter's gender tags.
//
// The preference is the bed preference, or the gender identity when the
// preference is blank or "no preference". Shelters focused on TAY or seniors
// are not checked here; AgeRule governs them.
type GenderRule struct{}

func (GenderRule) Name() string {
	return "Gender"
}

func (GenderRule) Check(ref *model.Referral, shelter *model.Shelter, beds BedsByShelter) (bool, string) {
	pref := genderPreference(ref)
	if pref == "" {
		return true, ""
	}

	if slices.Contains(shelter.Age, TagTAY) || slices.Contains(shelter.Age, TagSeniors) {
		return true, ""
	}

	// Keywords are substring tests, so "female" and "woman" also read as male
	isMale := containsAny(pref, maleKeywords)
	isFemale := containsAny(pref, femaleKeywords)

	if isMale && !hasAnyTag(shelter.Gender, TagSingleMen, model.TagAll) && !servesFamilies(shelter.Gender) {
		return false, fmt.Sprintf("gender mismatch (male) vs %s", strings.Join(shelter.Gender, ","))
	}

	if isFemale && !hasAnyTag(shelter.Gender, TagSingleWomen, TagSingleMoms, model.TagAll) && !servesFamilies(shelter.Gender) {
		return false, fmt.Sprintf("gender mismatch (female) vs %s", strings.Join(shelter.Gender, ","))
	}

	return true, ""
}

// genderPreference resolves the lower-cased gender text used for matching
func genderPreference(ref *model.Referral) string {
	pref := strings.ToLower(strings.TrimSpace(ref.GenderBedPref))
	if pref == "" || strings.Contains(pref, "no preference") {
		return strings.ToLower(strings.TrimSpace(ref.GenderIdentity))
	}
	return pref
}

func servesFamilies(tags []string) bool {
	return hasAnyTag(tags, familyTags...)
}

func hasAnyTag(tags []string, wanted ...string) bool {
	for _, w := range wanted {
		if slices.Contains(tags, w) {
			return true
		}
	}
	return false
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
