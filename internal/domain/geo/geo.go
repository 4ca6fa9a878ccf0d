// Package geo computes distances between offers and the searching institution.
package geo

import (
	"math"
	"strconv"
	"strings"
)

// EarthRadiusMeters is the mean radius of Earth used for Haversine distance.
const EarthRadiusMeters = 6_371_000.0

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Latitude  float64
	Longitude float64
}

// Circle is the area within RadiusKm of Center.
type Circle struct {
	Center   Point
	RadiusKm int
}

// Haversine returns the great-circle distance in meters between two points
// specified by latitude and longitude in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1r := lat1 * math.Pi / 180
	lat2r := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// DistanceKm returns the distance between a and b in kilometers, rounded to
// one decimal as shown on offer cards.
func DistanceKm(a, b Point) float64 {
	m := Haversine(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
	return math.Round(m/100) / 10
}

// ValidateCoordinates checks that latitude is in [-90,90] and longitude in [-180,180].
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ParseLonLat parses the "lon,lat" form used by GEO index fields.
func ParseLonLat(s string) (Point, bool) {
	lonStr, latStr, ok := strings.Cut(s, ",")
	if !ok {
		return Point{}, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return Point{}, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return Point{}, false
	}
	if !ValidateCoordinates(lat, lon) {
		return Point{}, false
	}
	return Point{Latitude: lat, Longitude: lon}, true
}
