// Package ingest implements the tick ingest and window store: bounded
// per-symbol ring buffers feeding the fractal kernel, plus a last-price
// table shared with the execution engine. The store shards by symbol so
// each symbol's buffers are single-writer on their own lock.
package ingest

import (
	"sync"

	"github.com/dropio12/fractal-hft/internal/fractal"
	"github.com/dropio12/fractal-hft/internal/metrics"
	"github.com/dropio12/fractal-hft/internal/tick"
)

// DetectorWindowSizes are the window sizes the real-time detector
// maintains per symbol.
var DetectorWindowSizes = []int{20, 50, 100}

// entry is one (timestamp_us, price, volatility) sample in a window.
type entry struct {
	timestampUS int64
	price       float64
	volatility  float64
}

// ringBuffer is a fixed-capacity FIFO of entries; length <= capacity at
// all times.
type ringBuffer struct {
	data []entry
	cap  int
}

func newRingBuffer(cap int) *ringBuffer {
	return &ringBuffer{data: make([]entry, 0, cap), cap: cap}
}

func (r *ringBuffer) push(e entry) {
	r.data = append(r.data, e)
	if len(r.data) > r.cap {
		r.data = r.data[len(r.data)-r.cap:]
	}
}

func (r *ringBuffer) full() bool { return len(r.data) == r.cap }

func (r *ringBuffer) slices() (prices, vols []float64, startUS, endUS int64) {
	prices = make([]float64, len(r.data))
	vols = make([]float64, len(r.data))
	for i, e := range r.data {
		prices[i] = e.price
		vols[i] = e.volatility
	}
	if len(r.data) > 0 {
		startUS = r.data[0].timestampUS
		endUS = r.data[len(r.data)-1].timestampUS
	}
	return
}

// symbolState owns one ring buffer per window size for a single symbol.
// It is only ever touched while holding its own mutex, so pattern
// detection for this symbol never blocks on another symbol's state.
type symbolState struct {
	mu      sync.Mutex
	windows map[int]*ringBuffer
	lastTS  int64
}

func newSymbolState(windowSizes []int) *symbolState {
	s := &symbolState{windows: make(map[int]*ringBuffer, len(windowSizes))}
	for _, n := range windowSizes {
		s.windows[n] = newRingBuffer(n)
	}
	return s
}

// LastPriceTable is a concurrent symbol -> last price map. Writers are
// the ingest stage; readers are the execution engine and risk gate.
type LastPriceTable struct {
	prices sync.Map // string -> float64
}

// Store records the latest price for a symbol.
func (t *LastPriceTable) Store(symbol string, price float64) {
	t.prices.Store(symbol, price)
}

// Load returns the latest known price for a symbol, or (0, false).
func (t *LastPriceTable) Load(symbol string) (float64, bool) {
	v, ok := t.prices.Load(symbol)
	if !ok {
		return 0, false
	}
	return v.(float64), true
}

// Snapshot returns a copy of all known last prices, used for
// mark-to-market sweeps.
func (t *LastPriceTable) Snapshot() map[string]float64 {
	out := make(map[string]float64)
	t.prices.Range(func(k, v any) bool {
		out[k.(string)] = v.(float64)
		return true
	})
	return out
}

// WindowStore is the tick ingest and window store component.
type WindowStore struct {
	windowSizes []int
	mu          sync.RWMutex // guards the symbols map only, not per-symbol state
	symbols     map[string]*symbolState
	LastPrice   *LastPriceTable
}

// NewWindowStore builds a store maintaining the given window sizes per
// symbol (defaults to the detector sizes {20,50,100} if nil).
func NewWindowStore(windowSizes []int) *WindowStore {
	if windowSizes == nil {
		windowSizes = DetectorWindowSizes
	}
	return &WindowStore{
		windowSizes: windowSizes,
		symbols:     make(map[string]*symbolState),
		LastPrice:   &LastPriceTable{},
	}
}

func (w *WindowStore) stateFor(symbol string) *symbolState {
	w.mu.RLock()
	s, ok := w.symbols[symbol]
	w.mu.RUnlock()
	if ok {
		return s
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if s, ok := w.symbols[symbol]; ok {
		return s
	}
	s = newSymbolState(w.windowSizes)
	w.symbols[symbol] = s
	return s
}

// Accept appends a tick to every configured window for its symbol and
// returns one pattern for each window that is full after the append; a
// full window emits again on every later tick. It also publishes the
// tick's price to the last-price table.
func (w *WindowStore) Accept(t tick.Tick) []fractal.Pattern {
	w.LastPrice.Store(t.Symbol, t.Price)

	state := w.stateFor(t.Symbol)
	state.mu.Lock()
	defer state.mu.Unlock()

	if t.TimestampUS < state.lastTS {
		// Out-of-order tick for this symbol; drop silently. The bus
		// guarantees per-symbol arrival order, so this should not happen
		// in practice.
		return nil
	}
	state.lastTS = t.TimestampUS

	var patterns []fractal.Pattern
	var maxBufferLen int
	for _, n := range w.windowSizes {
		buf := state.windows[n]
		buf.push(entry{timestampUS: t.TimestampUS, price: t.Price, volatility: t.Volatility})
		if len(buf.data) > maxBufferLen {
			maxBufferLen = len(buf.data)
		}
		if buf.full() {
			prices, vols, startUS, endUS := buf.slices()
			patterns = append(patterns, fractal.Detect(t.Symbol, startUS, endUS, prices, vols))
		}
	}
	metrics.SetProcessingBufferSize(float64(maxBufferLen))
	return patterns
}
