package geo

import (
	"math"
	"testing"
)

var (
	jaboatao = Coordinate{Lat: -8.1130, Lng: -35.0147}
	recife   = Coordinate{Lat: -8.0476, Lng: -34.8770}
)

func TestDistanceZeroForSamePoint(t *testing.T) {
	if d := DistanceKm(jaboatao, jaboatao); d != 0 {
		t.Fatalf("expected zero distance, got %f", d)
	}
}

func TestDistanceSymmetric(t *testing.T) {
	ab := DistanceKm(jaboatao, recife)
	ba := DistanceKm(recife, jaboatao)
	if math.Abs(ab-ba) > 1e-9 {
		t.Fatalf("distance not symmetric: %f vs %f", ab, ba)
	}
}

func TestDistanceKnownPair(t *testing.T) {
	// Jaboatão centre to Recife centre, reference value computed independently.
	const want = 16.8135
	got := DistanceKm(jaboatao, recife)
	if math.Abs(got-want)/want > 0.001 {
		t.Fatalf("expected ~%f km, got %f", want, got)
	}
}
