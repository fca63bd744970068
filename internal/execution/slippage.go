package execution

import "math/rand"

// SlippageSource draws a zero-mean random shift applied to market-order
// execution price. Implementations must be swappable for a deterministic
// source so execution price tests don't depend on randomness.
type SlippageSource interface {
	Sample() float64
}

// GaussianSlippageSource is the production source: N(0, sigma).
type GaussianSlippageSource struct {
	rng   *rand.Rand
	sigma float64
}

// NewGaussianSlippageSource builds a source seeded from seed, drawing from
// N(0, sigma). sigma is used as given; the engine's config supplies
// 0.0001 unless SLIPPAGE_SIGMA overrides it.
func NewGaussianSlippageSource(seed int64, sigma float64) *GaussianSlippageSource {
	return &GaussianSlippageSource{rng: rand.New(rand.NewSource(seed)), sigma: sigma}
}

// Sample returns one draw from N(0, sigma).
func (g *GaussianSlippageSource) Sample() float64 {
	return g.rng.NormFloat64() * g.sigma
}

// FixedSlippageSource always returns the same value; used by tests that
// need deterministic fill prices.
type FixedSlippageSource struct {
	Value float64
}

// Sample returns the fixed value.
func (f FixedSlippageSource) Sample() float64 { return f.Value }
