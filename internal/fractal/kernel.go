// Package fractal implements the box-counting fractal-dimension kernel and
// the derived confidence/strength/risk scalars, plus the pattern
// classifier and prediction mapping. All functions here are pure over a
// window of prices and volatilities.
package fractal

import "math"

// RealTimeBoxSizes is the box-size sequence used by the real-time kernel
// that runs inline with the Window Store (window sizes 20/50/100).
var RealTimeBoxSizes = []int{1, 2, 4, 8, 16}

// BatchBoxSizes is the finer box-size sequence used by the batch kernel
// (window sizes 50/100/200), grounded on the distributed analyzer's
// coarser-to-finer tiling; exercised by BatchWindowView, not by the
// real-time CORE path.
var BatchBoxSizes = []int{1, 2, 3, 4, 5, 8, 10, 16, 20, 25, 32, 50}

// Dimension computes the box-counting fractal dimension of prices using
// boxSizes, clamped to [1.0, 2.0].
func Dimension(prices []float64, boxSizes []int) float64 {
	n := len(prices)
	if n < 10 {
		return 1.0
	}

	minP, maxP := prices[0], prices[0]
	for _, p := range prices {
		if p < minP {
			minP = p
		}
		if p > maxP {
			maxP = p
		}
	}
	priceRange := maxP - minP
	if priceRange == 0 {
		return 1.0
	}

	normalized := make([]float64, n)
	for i, p := range prices {
		normalized[i] = (p - minP) / priceRange
	}

	var logSizes, logCounts []float64
	limit := n / 3
	for _, s := range boxSizes {
		if s >= limit {
			break
		}
		boxes := make(map[[2]int]struct{})
		for i := 0; i < n-1; i++ {
			x := i / s
			y := int(normalized[i] * float64(s))
			boxes[[2]int{x, y}] = struct{}{}
		}
		if len(boxes) > 1 {
			logSizes = append(logSizes, math.Log(1.0/float64(s)))
			logCounts = append(logCounts, math.Log(float64(len(boxes))))
		}
	}

	if len(logSizes) < 2 {
		return 1.0
	}

	slope, ok := ordinaryLeastSquares(logSizes, logCounts)
	if !ok {
		return 1.0
	}
	return clamp(slope, 1.0, 2.0)
}

// FractalDimension is the real-time kernel entry point (box sizes
// {1,2,4,8,16}).
func FractalDimension(prices []float64) float64 {
	return Dimension(prices, RealTimeBoxSizes)
}

// FractalDimensionBatch is the batch kernel entry point (finer box
// sizes), used by the out-of-CORE batch view.
func FractalDimensionBatch(prices []float64) float64 {
	return Dimension(prices, BatchBoxSizes)
}

// ordinaryLeastSquares fits y = slope*x + intercept and returns the slope.
func ordinaryLeastSquares(x, y []float64) (slope float64, ok bool) {
	n := float64(len(x))
	var sumX, sumY, sumXY, sumXX float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumXX += x[i] * x[i]
	}
	denom := n*sumXX - sumX*sumX
	if math.Abs(denom) < 1e-10 {
		return 0, false
	}
	return (n*sumXY - sumX*sumY) / denom, true
}

// Confidence computes a weighted confidence score in [0,1] from the
// fractal dimension, the price range, and volatility consistency.
func Confidence(prices, volatilities []float64, fd float64) float64 {
	n := len(prices)
	if n == 0 {
		return 0
	}

	dimScore := clamp(1.0-math.Abs(fd-1.5)/0.5, 0, 1)

	meanP := mean(prices)
	var rangeScore float64
	if meanP != 0 {
		minP, maxP := minMax(prices)
		rangeScore = clampMax((maxP-minP)/meanP*20, 1)
	}

	meanV := mean(volatilities)
	volConsistency := clamp(1.0-stdev(volatilities, meanV)/math.Max(meanV, 0.001), 0, 1)

	lengthScore := clampMax(float64(n)/50.0, 1)

	confidence := 0.3*dimScore + 0.3*rangeScore + 0.2*volConsistency + 0.2*lengthScore
	return clamp(confidence, 0, 1)
}

// PatternStrength computes pattern strength in [0,1] from recent price
// momentum and volatility.
func PatternStrength(prices, volatilities []float64) float64 {
	returns := simpleReturns(prices)
	var momentum float64
	if len(returns) >= 5 {
		var sum float64
		for _, r := range returns[len(returns)-5:] {
			sum += r
		}
		momentum = math.Abs(sum)
	}

	volStrength := mean(volatilities) / 0.02
	strength := (momentum*10 + volStrength) / 2
	return clamp(strength, 0, 1)
}

// RiskScore computes the risk score (>= 0). Unlike the other scalars
// this is not clamped to [0,1]; it is a sum of three risk terms.
func RiskScore(volatilities []float64, fd float64) float64 {
	meanV := mean(volatilities)
	maxV := max(volatilities)

	volatilityRisk := clampMax(meanV/0.03, 2.0)
	fractalRisk := math.Max(0, (fd-1.5)*2)
	spikeRisk := math.Max(0, (maxV/math.Max(meanV, 0.001)-2)/2)

	return volatilityRisk + fractalRisk + spikeRisk
}

// --- small numeric helpers (no third-party stats library in the pack for
// this concern; see DESIGN.md) ---

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
	if v < 0 {
		return 0
	}
	return v
}

func mean(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	var sum float64
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}

func stdev(v []float64, m float64) float64 {
	if len(v) < 2 {
		return 0
	}
	var sumSq float64
	for _, x := range v {
		d := x - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(v)-1))
}

func minMax(v []float64) (lo, hi float64) {
	lo, hi = v[0], v[0]
	for _, x := range v {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	return
}

func max(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	m := v[0]
	for _, x := range v {
		if x > m {
			m = x
		}
	}
	return m
}

func simpleReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}
	out := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] == 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, (prices[i]-prices[i-1])/prices[i-1])
	}
	return out
}
