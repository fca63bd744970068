package tick

import (
	"testing"
	"time"
)

func TestGeneratorRoundRobinsSymbols(t *testing.T) {
	g := NewGenerator([]string{"A", "B"}, 1, "SIM")
	now := time.Unix(0, 0)

	first := g.Next(now)
	second := g.Next(now)
	third := g.Next(now)

	if first.Symbol != "A" || second.Symbol != "B" || third.Symbol != "A" {
		t.Fatalf("expected round-robin A,B,A got %s,%s,%s", first.Symbol, second.Symbol, third.Symbol)
	}
}

func TestGeneratorPriceNeverGoesNegative(t *testing.T) {
	g := NewGenerator([]string{"X"}, 7, "SIM")
	now := time.Unix(0, 0)
	for i := 0; i < 10000; i++ {
		tk := g.Next(now)
		if tk.Price <= 0 {
			t.Fatalf("price went non-positive: %v", tk.Price)
		}
	}
}

func TestGeneratorSequenceIDsIncrement(t *testing.T) {
	g := NewGenerator([]string{"X"}, 1, "SIM")
	now := time.Unix(0, 0)
	a := g.Next(now)
	b := g.Next(now)
	if b.SequenceID != a.SequenceID+1 {
		t.Fatalf("expected monotonically increasing sequence IDs, got %d then %d", a.SequenceID, b.SequenceID)
	}
}
