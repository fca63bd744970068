// Package tick defines the market tick event and a synthetic generator
// that stands in for the out-of-scope external market-data producer.
package tick

import (
	"math"
	"math/rand"
	"time"
)

// Tick is an immutable market event. Consumed once, never mutated.
type Tick struct {
	TimestampUS      int64   `json:"timestamp_us"`
	Symbol           string  `json:"symbol"`
	Price            float64 `json:"price"`
	Volume           int     `json:"volume"`
	Bid              float64 `json:"bid"`
	Ask              float64 `json:"ask"`
	Spread           float64 `json:"spread"`
	Volatility       float64 `json:"volatility"`
	FractalDimension float64 `json:"fractal_dimension"`
	SequenceID       int64   `json:"sequence_id"`
	Exchange         string  `json:"exchange"`
}

// Generator produces a synthetic tick stream for a fixed symbol universe.
// The real producer is an external system in production; this stands in
// for it so the binary has something to run against end-to-end.
type Generator struct {
	symbols  []string
	rng      *rand.Rand
	prices   map[string]float64
	seq      int64
	exchange string
}

// NewGenerator seeds a generator with a starting mid price per symbol.
func NewGenerator(symbols []string, seed int64, exchange string) *Generator {
	prices := make(map[string]float64, len(symbols))
	for _, s := range symbols {
		prices[s] = 100.0
	}
	return &Generator{
		symbols:  symbols,
		rng:      rand.New(rand.NewSource(seed)),
		prices:   prices,
		exchange: exchange,
	}
}

// Next returns one synthetic tick for a round-robin symbol, advancing its
// random-walk price. Volatility is a positive estimate derived from the
// step size actually taken.
func (g *Generator) Next(now time.Time) Tick {
	symbol := g.symbols[int(g.seq)%len(g.symbols)]
	price := g.prices[symbol]

	step := g.rng.NormFloat64() * price * 0.0008
	price = math.Max(0.01, price+step)
	g.prices[symbol] = price

	vol := math.Abs(step) / math.Max(price, 1e-9)
	spread := price * 0.0002

	g.seq++
	return Tick{
		TimestampUS:      now.UnixMicro(),
		Symbol:           symbol,
		Price:            price,
		Volume:           1 + g.rng.Intn(500),
		Bid:              price - spread/2,
		Ask:              price + spread/2,
		Spread:           spread,
		Volatility:       vol,
		FractalDimension: 0, // hint only; the kernel recomputes its own estimate
		SequenceID:       g.seq,
		Exchange:         g.exchange,
	}
}
