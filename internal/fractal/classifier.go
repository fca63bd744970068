package fractal

import "math"

// Label is the closed pattern-label vocabulary.
type Label string

const (
	LabelSmoothTrend       Label = "SMOOTH_TREND"
	LabelSideways          Label = "SIDEWAYS"
	LabelVolatileBreakout  Label = "VOLATILE_BREAKOUT"
	LabelChoppy            Label = "CHOPPY"
	LabelVolatileUptrend   Label = "VOLATILE_UPTREND"
	LabelVolatileDowntrend Label = "VOLATILE_DOWNTREND"
	LabelVolatileRange     Label = "VOLATILE_RANGE"
	LabelTrendingFractal   Label = "TRENDING_FRACTAL"
	LabelRangeFractal      Label = "RANGE_FRACTAL"
	LabelNormalMovement    Label = "NORMAL_MOVEMENT"
)

const volatilityThreshold = 0.05

// Classify maps (fd, prices, volatilities) to a pattern label using a
// top-to-bottom, first-match-wins decision table.
func Classify(prices, volatilities []float64, fd float64) Label {
	avgVol := mean(volatilities)
	trend := trendOf(prices)

	switch {
	case fd < 1.2 && math.Abs(trend) > 0.01:
		return LabelSmoothTrend
	case fd < 1.2:
		return LabelSideways
	case fd > 1.8 && avgVol > volatilityThreshold:
		return LabelVolatileBreakout
	case fd > 1.8:
		return LabelChoppy
	case fd > 1.6 && trend > 0.02:
		return LabelVolatileUptrend
	case fd > 1.6 && trend < -0.02:
		return LabelVolatileDowntrend
	case fd > 1.6:
		return LabelVolatileRange
	case fd > 1.4 && math.Abs(trend) > 0.015:
		return LabelTrendingFractal
	case fd > 1.4:
		return LabelRangeFractal
	default:
		return LabelNormalMovement
	}
}

// trendOf sums the last min(10, n-1) simple returns.
func trendOf(prices []float64) float64 {
	returns := simpleReturns(prices)
	if len(returns) == 0 {
		return 0
	}
	n := len(returns)
	if n > 10 {
		returns = returns[n-10:]
	}
	var sum float64
	for _, r := range returns {
		sum += r
	}
	return sum
}

// Prediction is the closed prediction-signal vocabulary.
type Prediction string

const (
	PredictionBuy        Prediction = "BUY"
	PredictionSell       Prediction = "SELL"
	PredictionHold       Prediction = "HOLD"
	PredictionNeutral    Prediction = "NEUTRAL"
	PredictionAvoid      Prediction = "AVOID"
	PredictionStrongBuy  Prediction = "STRONG_BUY"
	PredictionStrongSell Prediction = "STRONG_SELL"
	PredictionWeakBuy    Prediction = "WEAK_BUY"
	PredictionWeakSell   Prediction = "WEAK_SELL"
	PredictionWeakHold   Prediction = "WEAK_HOLD"
)

// Predict maps a pattern label and strength to a prediction signal via a
// base lookup table plus strength-based overrides.
func Predict(label Label, fd, strength float64) Prediction {
	var base Prediction
	switch label {
	case LabelVolatileUptrend:
		base = PredictionBuy
	case LabelVolatileBreakout:
		if fd > 1.7 {
			base = PredictionBuy
		} else {
			base = PredictionNeutral
		}
	case LabelVolatileDowntrend:
		base = PredictionSell
	case LabelSmoothTrend, LabelTrendingFractal:
		base = PredictionHold
	case LabelVolatileRange:
		base = PredictionNeutral
	case LabelChoppy:
		base = PredictionAvoid
	default:
		base = PredictionNeutral
	}

	if strength < 0.3 {
		return PredictionNeutral
	}
	if strength > 0.8 {
		switch base {
		case PredictionBuy:
			return PredictionStrongBuy
		case PredictionSell:
			return PredictionStrongSell
		}
	}
	if strength < 0.4 && base != PredictionNeutral {
		return Prediction("WEAK_" + string(base))
	}
	return base
}
