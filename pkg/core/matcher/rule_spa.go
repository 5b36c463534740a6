package matcher

import (
	"fmt"
	"strings"

	"github.com/shelterconnect/shelter-matcher/pkg/core/coerce"
	"github.com/shelterconnect/shelter-matcher/pkg/core/model"
)

// SPAExclusionRule rejects shelters in an SPA the referral excluded.
//
// Only exclusions are enforced: a referral with no excluded SPAs passes
// regardless of the shelter's SPA, and the preferred SPA is never consulted.
// When exclusions exist the shelter SPA must be known.
type SPAExclusionRule struct{}

func (SPAExclusionRule) Name() string {
	return "SPAExclusion"
}

func (SPAExclusionRule) Check(ref *model.Referral, shelter *model.Shelter, beds BedsByShelter) (bool, string) {
	if len(ref.ExcludeSPA) == 0 {
		return true, ""
	}

	if shelter.SPA == nil {
		return false, "shelter SPA missing"
	}

	for _, tag := range ref.ExcludeSPA {
		if spa, ok := spaFromTag(tag); ok && spa == *shelter.SPA {
			return false, fmt.Sprintf("SPA mismatch (ref exclude spa %s vs shelter %d)",
				strings.Join(ref.ExcludeSPA, ","), *shelter.SPA)
		}
	}

	return true, ""
}

// spaFromTag reads an excluded SPA tag written either as "4" or as "spa 4"
func spaFromTag(tag string) (int, bool) {
	if n, ok := coerce.ToIntOrNone(tag); ok {
		return n, true
	}
	return coerce.ExtractSpaFromLocation(tag)
}
