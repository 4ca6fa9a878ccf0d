package geo

import (
	"math"
	"testing"
)

func almost(a, b, eps float64) bool {
	if a > b {
		return a-b < eps
	}
	return b-a < eps
}

func TestHaversine_SamePoint(t *testing.T) {
	d := Haversine(43.6108, 3.8767, 43.6108, 3.8767)
	if d != 0 {
		t.Fatalf("want 0, got %f", d)
	}
}

func TestHaversine_Paris_Marseille(t *testing.T) {
	// Paris to Marseille: ~661 km
	d := Haversine(48.8566, 2.3522, 43.2965, 5.3698)
	expected := 661_000.0
	if !almost(d, expected, 5_000) {
		t.Fatalf("want ~%.0fm, got %.0fm", expected, d)
	}
}

func TestHaversine_Antipodal(t *testing.T) {
	d := Haversine(0, 0, 0, 180)
	expected := math.Pi * EarthRadiusMeters
	if !almost(d, expected, 1) {
		t.Fatalf("want ~%.0fm, got %.0fm", expected, d)
	}
}

func TestDistanceKm_Rounded(t *testing.T) {
	a := Point{Latitude: 48.8566, Longitude: 2.3522}
	b := Point{Latitude: 43.2965, Longitude: 5.3698}
	d := DistanceKm(a, b)
	if d*10 != math.Round(d*10) {
		t.Errorf("distance %v is not rounded to one decimal", d)
	}
	if !almost(d, 661, 5) {
		t.Errorf("distance = %v, want ~661", d)
	}
}

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		lat, lon float64
		want     bool
	}{
		{0, 0, true},
		{90, 180, true},
		{-90, -180, true},
		{90.1, 0, false},
		{0, -180.5, false},
	}
	for _, tt := range tests {
		if got := ValidateCoordinates(tt.lat, tt.lon); got != tt.want {
			t.Errorf("ValidateCoordinates(%v, %v) = %v, want %v", tt.lat, tt.lon, got, tt.want)
		}
	}
}

func TestParseLonLat(t *testing.T) {
	tests := []struct {
		in   string
		want Point
		ok   bool
	}{
		{"3.8767,43.6108", Point{Latitude: 43.6108, Longitude: 3.8767}, true},
		{" 2.35 , 48.85 ", Point{Latitude: 48.85, Longitude: 2.35}, true},
		{"2.35", Point{}, false},
		{"a,b", Point{}, false},
		{"2.35,x", Point{}, false},
		{"200,10", Point{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseLonLat(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseLonLat(%q) = (%+v, %v), want (%+v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
