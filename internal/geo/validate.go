// Package geo validates coordinates that arrived with the imported data.
package geo

import (
	"math"

	"github.com/almehdi/jobview/internal/model"
)

// Validate checks whether a record's raw latitude/longitude fields form a
// usable position. Both must be present, numeric, and inside the standard
// ranges. Any failure means "absent": the record is routed to geocoding,
// never rejected. Out-of-range values are not clamped.
func Validate(lat, lng model.Flexible) (model.Coordinates, bool) {
	latV, ok := lat.Float()
	if !ok {
		return model.Coordinates{}, false
	}
	lngV, ok := lng.Float()
	if !ok {
		return model.Coordinates{}, false
	}
	if math.IsNaN(latV) || math.IsNaN(lngV) {
		return model.Coordinates{}, false
	}
	if latV < -90 || latV > 90 || lngV < -180 || lngV > 180 {
		return model.Coordinates{}, false
	}
	return model.Coordinates{Lat: latV, Lng: lngV}, true
}
