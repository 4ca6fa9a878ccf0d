package institution

import "github.com/kailas-cloud/eacsearch/internal/domain/geo"

// Institution is the school the current user searches on behalf of.
type Institution struct {
	UAI            string
	Name           string
	DepartmentCode string
	Latitude       *float64
	Longitude      *float64
}

// HasValidLocation reports whether both coordinates are present and in range.
func (i Institution) HasValidLocation() bool {
	return i.Latitude != nil && i.Longitude != nil &&
		geo.ValidateCoordinates(*i.Latitude, *i.Longitude)
}

// Location returns the institution's position. ok is false without a valid location.
func (i Institution) Location() (p geo.Point, ok bool) {
	if !i.HasValidLocation() {
		return geo.Point{}, false
	}
	return geo.Point{Latitude: *i.Latitude, Longitude: *i.Longitude}, true
}
