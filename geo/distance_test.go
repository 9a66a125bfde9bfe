package geo

import (
	"math"
	"testing"
)

func TestDistanceZero(t *testing.T) {
	p := &GeoPoint{Latitude: 45.5, Longitude: -73.6}
	if d := Distance(p, p); d != 0 {
		t.Fatalf("distance to self = %v, expected 0", d)
	}
}

func TestDistanceEquatorDegree(t *testing.T) {
	a := &GeoPoint{Latitude: 0, Longitude: 0}
	b := &GeoPoint{Latitude: 0, Longitude: 1}

	// One degree of longitude at the equator is ~111.19 km on a
	// spherical earth.
	d := Distance(a, b)
	if math.Abs(d-111195) > 100 {
		t.Fatalf("equator degree distance = %v m, expected ~111195 m", d)
	}
}

func TestDistanceSymmetric(t *testing.T) {
	a := &GeoPoint{Latitude: 40.7128, Longitude: -74.0060}
	b := &GeoPoint{Latitude: 34.0522, Longitude: -118.2437}

	if math.Abs(Distance(a, b)-Distance(b, a)) > 1e-6 {
		t.Fatal("distance is not symmetric")
	}
}
