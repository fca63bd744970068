package fractal

import "testing"

func TestClassifyOrderFirstMatchWins(t *testing.T) {
	cases := []struct {
		name  string
		fd    float64
		trend float64
		vol   float64
		want  Label
	}{
		{"smooth trend", 1.1, 0.05, 0.01, LabelSmoothTrend},
		{"sideways", 1.1, 0.0, 0.01, LabelSideways},
		{"volatile breakout", 1.85, 0.0, 0.10, LabelVolatileBreakout},
		{"choppy", 1.85, 0.0, 0.01, LabelChoppy},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			prices := syntheticTrendSeries(c.trend)
			vols := flatSeries(len(prices), c.vol)
			got := Classify(prices, vols, c.fd)
			if got != c.want {
				t.Fatalf("Classify(fd=%v): want %v, got %v", c.fd, c.want, got)
			}
		})
	}
}

func syntheticTrendSeries(totalReturn float64) []float64 {
	n := 30
	out := make([]float64, n)
	out[0] = 100
	step := totalReturn / float64(n-1)
	for i := 1; i < n; i++ {
		out[i] = out[i-1] * (1 + step)
	}
	return out
}

func TestPredictStrengthOverrides(t *testing.T) {
	if got := Predict(LabelVolatileUptrend, 1.65, 0.2); got != PredictionNeutral {
		t.Fatalf("strength<0.3 must floor to NEUTRAL, got %v", got)
	}
	if got := Predict(LabelVolatileUptrend, 1.65, 0.9); got != PredictionStrongBuy {
		t.Fatalf("strength>0.8 BUY must become STRONG_BUY, got %v", got)
	}
	if got := Predict(LabelVolatileDowntrend, 1.65, 0.9); got != PredictionStrongSell {
		t.Fatalf("strength>0.8 SELL must become STRONG_SELL, got %v", got)
	}
	if got := Predict(LabelVolatileUptrend, 1.65, 0.35); got != PredictionWeakBuy {
		t.Fatalf("0.3<=strength<0.4 BUY must become WEAK_BUY, got %v", got)
	}
	if got := Predict(LabelVolatileRange, 1.65, 0.35); got != PredictionNeutral {
		t.Fatalf("WEAK_ prefix must not apply to a NEUTRAL base, got %v", got)
	}
	if got := Predict(LabelVolatileUptrend, 1.65, 0.6); got != PredictionBuy {
		t.Fatalf("mid-range strength keeps the base prediction, got %v", got)
	}
}

func TestDetectBuildsConsistentPattern(t *testing.T) {
	prices := syntheticTrendSeries(0.3)
	vols := flatSeries(len(prices), 0.12)
	pat := Detect("BTC-USD", 1000, 2000, prices, vols)

	if pat.Symbol != "BTC-USD" {
		t.Fatalf("symbol not preserved: %v", pat.Symbol)
	}
	if pat.DurationMS != 1 {
		t.Fatalf("duration_ms = (end-start)/1000, want 1, got %v", pat.DurationMS)
	}
	if pat.PriceRange[0] > pat.PriceRange[1] {
		t.Fatalf("price range inverted: %v", pat.PriceRange)
	}
	if pat.FractalDimension < 1.0 || pat.FractalDimension > 2.0 {
		t.Fatalf("fd out of range in pattern: %v", pat.FractalDimension)
	}
}
