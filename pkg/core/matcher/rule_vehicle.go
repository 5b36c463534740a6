package matcher

import (
	"slices"
	"strings"

	"github.com/shelterconnect/shelter-matcher/pkg/core/model"
)

// TagVehicleRegistration is the entry requirement of shelters that take clients with vehicles
const TagVehicleRegistration = "vehicle_registration"

// safeParkingMarkers are matched as substrings of program tags, so
// "safe_parking_lot" and "safe parking program" both count
var safeParkingMarkers = []string{"safe_park", "safe parking"}

// VehicleRule pairs clients who have a vehicle with vehicle-friendly shelters,
// and keeps clients without one out of safe parking shelters.
type VehicleRule struct{}

func (VehicleRule) Name() string {
	return "Vehicle"
}

func (VehicleRule) Check(ref *model.Referral, shelter *model.Shelter, beds BedsByShelter) (bool, string) {
	safeParking := isSafeParking(shelter)

	if ref.Vehicle {
		if !safeParking && !slices.Contains(shelter.EntryRequirements, TagVehicleRegistration) {
			return false, "client has vehicle but shelter not vehicle-friendly"
		}
		return true, ""
	}

	if safeParking {
		return false, "client no vehicle but shelter is safe-parking only"
	}
	return true, ""
}

func isSafeParking(shelter *model.Shelter) bool {
	for _, program := range shelter.Programs {
		for _, marker := range safeParkingMarkers {
			if strings.Contains(program, marker) {
				return true
			}
		}
	}
	return false
}
