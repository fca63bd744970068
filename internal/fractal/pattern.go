package fractal

// Pattern is a labeled window summary produced by the classifier.
type Pattern struct {
	Symbol           string     `json:"symbol"`
	PatternType      Label      `json:"pattern_type"`
	StartTimeUS      int64      `json:"start_time_us"`
	EndTimeUS        int64      `json:"end_time_us"`
	DurationMS       int64      `json:"duration_ms"`
	FractalDimension float64    `json:"fractal_dimension"`
	Confidence       float64    `json:"confidence"`
	PriceRange       [2]float64 `json:"price_range"`
	VolatilityAvg    float64    `json:"volatility_avg"`
	PatternStrength  float64    `json:"pattern_strength"`
	PredictionSignal Prediction `json:"prediction_signal"`
	RiskScore        float64    `json:"risk_score"`
}

// Detect runs the full kernel -> classifier -> prediction pipeline over a
// length-N window and builds the Pattern record. startUS/endUS are the
// oldest/newest tick timestamps in the window at emission time.
func Detect(symbol string, startUS, endUS int64, prices, volatilities []float64) Pattern {
	return detect(symbol, startUS, endUS, prices, volatilities, FractalDimension(prices))
}

// DetectBatch is Detect's batch-kernel counterpart: same classifier and
// scalar pipeline, but the fractal dimension comes from the finer
// BatchBoxSizes sequence instead of the real-time one. Used by
// BatchWindowView.
func DetectBatch(symbol string, startUS, endUS int64, prices, volatilities []float64) Pattern {
	return detect(symbol, startUS, endUS, prices, volatilities, FractalDimensionBatch(prices))
}

func detect(symbol string, startUS, endUS int64, prices, volatilities []float64, fd float64) Pattern {
	label := Classify(prices, volatilities, fd)
	confidence := Confidence(prices, volatilities, fd)
	strength := PatternStrength(prices, volatilities)
	prediction := Predict(label, fd, strength)
	risk := RiskScore(volatilities, fd)

	minP, maxP := minMax(prices)

	return Pattern{
		Symbol:           symbol,
		PatternType:      label,
		StartTimeUS:      startUS,
		EndTimeUS:        endUS,
		DurationMS:       (endUS - startUS) / 1000,
		FractalDimension: fd,
		Confidence:       confidence,
		PriceRange:       [2]float64{minP, maxP},
		VolatilityAvg:    mean(volatilities),
		PatternStrength:  strength,
		PredictionSignal: prediction,
		RiskScore:        risk,
	}
}
