package signal

import (
	"testing"

	"github.com/dropio12/fractal-hft/internal/fractal"
)

func basePattern() fractal.Pattern {
	return fractal.Pattern{
		Symbol:           "BTC-USD",
		PatternType:      fractal.LabelVolatileUptrend,
		FractalDimension: 1.65,
		Confidence:       0.85,
		PatternStrength:  0.9,
		PredictionSignal: fractal.PredictionStrongBuy,
		RiskScore:        0.5,
	}
}

func TestProcessRejectsLowConfidence(t *testing.T) {
	p := NewProcessor()
	pat := basePattern()
	pat.Confidence = 0.5
	if _, ok := p.Process(pat, 1); ok {
		t.Fatal("low-confidence pattern must be rejected")
	}
}

func TestProcessRejectsHighRisk(t *testing.T) {
	p := NewProcessor()
	pat := basePattern()
	pat.RiskScore = 2.0
	if _, ok := p.Process(pat, 1); ok {
		t.Fatal("high-risk pattern must be rejected")
	}
}

func TestProcessRejectsNonActionablePrediction(t *testing.T) {
	p := NewProcessor()
	pat := basePattern()
	pat.PredictionSignal = fractal.PredictionHold
	if _, ok := p.Process(pat, 1); ok {
		t.Fatal("HOLD must not become a signal")
	}
}

func TestProcessAcceptsAndRecordsHistory(t *testing.T) {
	p := NewProcessor()
	pat := basePattern()
	sig, ok := p.Process(pat, 123)
	if !ok {
		t.Fatal("expected signal to be accepted")
	}
	if sig.Action != fractal.PredictionStrongBuy {
		t.Fatalf("action mismatch: %v", sig.Action)
	}
	if sig.PositionSize < 100 || sig.PositionSize > 10000 {
		t.Fatalf("position size out of bounds: %v", sig.PositionSize)
	}
	if len(p.History("BTC-USD")) != 1 {
		t.Fatalf("expected one recorded signal, got %d", len(p.History("BTC-USD")))
	}
}

func TestHistoryCapsAt100(t *testing.T) {
	p := NewProcessor()
	pat := basePattern()
	for i := 0; i < 150; i++ {
		p.Process(pat, int64(i))
	}
	if got := len(p.History("BTC-USD")); got != historyPerSymbol {
		t.Fatalf("history must cap at %d, got %d", historyPerSymbol, got)
	}
}

func TestHighStrengthGetsHighPriority(t *testing.T) {
	p := NewProcessor()
	pat := basePattern()
	sig, ok := p.Process(pat, 1)
	if !ok {
		t.Fatal("expected acceptance")
	}
	if sig.SignalStrength > 0.8 && sig.Priority != PriorityHigh {
		t.Fatalf("strength %.2f should map to HIGH priority, got %v", sig.SignalStrength, sig.Priority)
	}
}
