package fractal

// BatchWindowSizes are the coarser window sizes the batch view maintains
// (N in {50,100,200}), matching the distributed batch analyzer's tiling.
var BatchWindowSizes = []int{50, 100, 200}

type batchSample struct {
	timestampUS int64
	price       float64
	volatility  float64
}

// BatchWindowView accumulates one symbol's samples into the batch
// analyzer's coarser windows and emits a Pattern via the batch kernel
// for every sample once a window is full, standing in for the out-of-scope distributed
// batch analyzer's numeric core.
type BatchWindowView struct {
	symbol  string
	buffers map[int][]batchSample
}

// NewBatchWindowView builds an empty view for one symbol.
func NewBatchWindowView(symbol string) *BatchWindowView {
	v := &BatchWindowView{
		symbol:  symbol,
		buffers: make(map[int][]batchSample, len(BatchWindowSizes)),
	}
	for _, n := range BatchWindowSizes {
		v.buffers[n] = make([]batchSample, 0, n)
	}
	return v
}

// Accept appends one sample to every configured window and returns one
// pattern for each window that is full after the append; a full window
// emits again on every later sample.
func (v *BatchWindowView) Accept(timestampUS int64, price, volatility float64) []Pattern {
	var patterns []Pattern
	for _, n := range BatchWindowSizes {
		buf := append(v.buffers[n], batchSample{timestampUS, price, volatility})
		if len(buf) > n {
			buf = buf[len(buf)-n:]
		}
		v.buffers[n] = buf

		if len(buf) == n {
			prices := make([]float64, n)
			vols := make([]float64, n)
			for i, s := range buf {
				prices[i] = s.price
				vols[i] = s.volatility
			}
			patterns = append(patterns, DetectBatch(v.symbol, buf[0].timestampUS, buf[n-1].timestampUS, prices, vols))
		}
	}
	return patterns
}
