package geo

import (
	"math"
	"testing"
)

func TestHaversineZero(t *testing.T) {
	p := Point{Lat: -9.6658, Lng: -35.7353}
	if d := HaversineMeters(p, p); d != 0 {
		t.Fatalf("same point: got %v", d)
	}
}

func TestHaversineOneDegreeLatitude(t *testing.T) {
	a := Point{Lat: 0, Lng: 0}
	b := Point{Lat: 1, Lng: 0}
	d := HaversineMeters(a, b)
	// one degree of latitude on a 6371 km sphere is ~111.19 km
	if math.Abs(d-111194.9) > 50 {
		t.Fatalf("one degree latitude: got %v", d)
	}
}

func TestHaversineSymmetric(t *testing.T) {
	a := Point{Lat: -9.6658, Lng: -35.7353}
	b := Point{Lat: -9.6400, Lng: -35.7100}
	if d1, d2 := HaversineMeters(a, b), HaversineMeters(b, a); math.Abs(d1-d2) > 1e-9 {
		t.Fatalf("not symmetric: %v vs %v", d1, d2)
	}
}
