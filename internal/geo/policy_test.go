package geo

import "testing"

func testPolicy() Policy {
	return Policy{
		Origin:          jaboatao,
		BasePrice:       500,
		PerKmRate:       135,
		MaxRadiusKm:     30,
		FreeShippingMin: 29900,
		DeliveryDays:    DeliveryDays{Min: 1, Max: 3},
		AllowedCities: []string{
			"Recife",
			"Jaboatão dos Guararapes",
			"Camaragibe",
			"São Lourenço da Mata",
			"Moreno",
		},
		OutsideAreaMessage: "Desculpe, no momento não entregamos na sua região.",
	}
}

func TestPriceSubKilometreFloor(t *testing.T) {
	p := testPolicy()
	if got := p.Price(0.5); got != 500 {
		t.Fatalf("expected base price 500, got %d", got)
	}
	if got := p.Price(0); got != 500 {
		t.Fatalf("expected base price 500, got %d", got)
	}
}

func TestPriceRoundsToNearestCentavo(t *testing.T) {
	p := testPolicy()
	// 16.81354910876871 km -> 500 + 2269.83 = 2769.83, rounds to 2770.
	if got := p.Price(16.81354910876871); got != 2770 {
		t.Fatalf("expected 2770, got %d", got)
	}
}

func TestPriceMonotonic(t *testing.T) {
	p := testPolicy()
	prev := p.Price(1)
	for d := 1.5; d <= 30; d += 0.5 {
		cur := p.Price(d)
		if cur < prev {
			t.Fatalf("price decreased from %d to %d at %f km", prev, cur, d)
		}
		prev = cur
	}
}

func TestCityServedNormalizesInput(t *testing.T) {
	p := testPolicy()
	for _, city := range []string{"Recife", " recife ", "RECIFE", "jaboatão dos guararapes"} {
		if !p.CityServed(city) {
			t.Fatalf("expected %q to be served", city)
		}
	}
	for _, city := range []string{"São Paulo", "Olinda", "Rec", ""} {
		if p.CityServed(city) {
			t.Fatalf("expected %q not to be served", city)
		}
	}
}

func TestWithinRadiusBoundary(t *testing.T) {
	p := testPolicy()
	if !p.WithinRadius(30) {
		t.Fatal("boundary distance should be inside the radius")
	}
	if p.WithinRadius(30.01) {
		t.Fatal("distance past the radius should be outside")
	}
}

func TestFreeShippingThreshold(t *testing.T) {
	p := testPolicy()
	if !p.FreeShipping(29900) {
		t.Fatal("subtotal at the minimum should qualify")
	}
	if p.FreeShipping(29899) {
		t.Fatal("one centavo below the minimum should not qualify")
	}
}

func TestEstimatedDays(t *testing.T) {
	p := testPolicy()
	if got := p.EstimatedDays(9.99); got != 1 {
		t.Fatalf("expected min days, got %d", got)
	}
	if got := p.EstimatedDays(10); got != 3 {
		t.Fatalf("expected max days, got %d", got)
	}
}
