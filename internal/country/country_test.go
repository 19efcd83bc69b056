package country

import (
	"math/rand"
	"testing"
)

func TestTaxKnownAndUnknown(t *testing.T) {
	table := NewTable()

	if got := table.Tax("HU"); got != 1.27 {
		t.Errorf("Tax(HU) = %v, want 1.27", got)
	}
	if got := table.Tax("XX"); got != 1 {
		t.Errorf("Tax(XX) = %v, want 1", got)
	}
}

func TestTaxMultiplierAtLeastOne(t *testing.T) {
	table := NewTable()
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 100; i++ {
		code := table.RandomOne(rng)
		if tax := table.Tax(code); tax < 1 {
			t.Fatalf("Tax(%s) = %v, want >= 1", code, tax)
		}
	}
}
