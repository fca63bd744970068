// Package signal implements the signal processor: it filters fractal
// patterns by confidence/risk and, for those that pass, computes signal
// strength, position size, and priority.
package signal

import (
	"sync"

	"github.com/dropio12/fractal-hft/internal/fractal"
)

const (
	confidenceThreshold = 0.7
	riskThreshold       = 1.5

	historyPerSymbol = 100
)

// Priority is the two-level intake ordering for downstream orders.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
)

// Signal is an accepted pattern turned into an actionable directive.
type Signal struct {
	Symbol          string             `json:"symbol"`
	PatternType     fractal.Label      `json:"pattern_type"`
	Action          fractal.Prediction `json:"action"`
	SignalStrength  float64            `json:"signal_strength"`
	PositionSize    float64            `json:"position_size"`
	Confidence      float64            `json:"confidence"`
	RiskScore       float64            `json:"risk_score"`
	Priority        Priority           `json:"priority"`
	TimestampUS     int64              `json:"timestamp_us"`
}

var patternMultipliers = map[fractal.Label]float64{
	fractal.LabelVolatileBreakout:  1.20,
	fractal.LabelVolatileUptrend:   1.10,
	fractal.LabelVolatileDowntrend: 1.10,
	fractal.LabelTrendingFractal:   1.05,
	fractal.LabelSmoothTrend:       0.90,
	fractal.LabelVolatileRange:     0.80,
	fractal.LabelChoppy:            0.60,
}

var predictionMultipliers = map[fractal.Prediction]float64{
	fractal.PredictionStrongBuy:  1.30,
	fractal.PredictionStrongSell: 1.30,
	fractal.PredictionBuy:        1.10,
	fractal.PredictionSell:       1.10,
	fractal.PredictionHold:       0.70,
	fractal.PredictionNeutral:    0.50,
	fractal.PredictionAvoid:      0.20,
}

// actionable predictions that may become orders.
var actionable = map[fractal.Prediction]bool{
	fractal.PredictionBuy:        true,
	fractal.PredictionStrongBuy:  true,
	fractal.PredictionSell:       true,
	fractal.PredictionStrongSell: true,
}

// Processor filters patterns into signals and keeps the last 100 signals
// per symbol for introspection.
type Processor struct {
	mu      sync.Mutex
	history map[string][]Signal
}

// NewProcessor builds an empty Processor.
func NewProcessor() *Processor {
	return &Processor{history: make(map[string][]Signal)}
}

// Process evaluates a pattern and returns (signal, true) if it is
// accepted, or (Signal{}, false) if filtered out by the confidence/risk
// gate or because the prediction carries no actionable side.
func (p *Processor) Process(pat fractal.Pattern, nowUS int64) (Signal, bool) {
	if pat.Confidence < confidenceThreshold || pat.RiskScore > riskThreshold {
		return Signal{}, false
	}
	if !actionable[pat.PredictionSignal] {
		return Signal{}, false
	}

	strength := p.signalStrength(pat)
	size := positionSize(strength, pat.RiskScore)

	priority := PriorityMedium
	if strength > 0.8 {
		priority = PriorityHigh
	}

	sig := Signal{
		Symbol:         pat.Symbol,
		PatternType:    pat.PatternType,
		Action:         pat.PredictionSignal,
		SignalStrength: strength,
		PositionSize:   size,
		Confidence:     pat.Confidence,
		RiskScore:      pat.RiskScore,
		Priority:       priority,
		TimestampUS:    nowUS,
	}

	p.record(sig)
	return sig, true
}

func (p *Processor) signalStrength(pat fractal.Pattern) float64 {
	strength := pat.Confidence

	if m, ok := patternMultipliers[pat.PatternType]; ok {
		strength *= m
	}
	if m, ok := predictionMultipliers[pat.PredictionSignal]; ok {
		strength *= m
	}

	riskPenalty := clampMax(pat.RiskScore*0.15, 0.3)
	strength -= riskPenalty

	return clamp(strength, 0, 1)
}

func positionSize(strength, risk float64) float64 {
	strengthMultiplier := 0.5 + strength*1.5
	riskMultiplier := clampMin(1.0-risk*0.3, 0.2)
	size := 1000.0 * strengthMultiplier * riskMultiplier
	return clamp(size, 100, 10000)
}

func (p *Processor) record(s Signal) {
	p.mu.Lock()
	defer p.mu.Unlock()
	h := append(p.history[s.Symbol], s)
	if len(h) > historyPerSymbol {
		h = h[len(h)-historyPerSymbol:]
	}
	p.history[s.Symbol] = h
}

// History returns the last (up to 100) signals recorded for a symbol.
func (p *Processor) History(symbol string) []Signal {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Signal, len(p.history[symbol]))
	copy(out, p.history[symbol])
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampMax(v, hi float64) float64 {
	if v > hi {
		return hi
	}
	return v
}

func clampMin(v, lo float64) float64 {
	if v < lo {
		return lo
	}
	return v
}
