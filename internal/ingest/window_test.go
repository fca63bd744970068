package ingest

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dropio12/fractal-hft/internal/tick"
)

func TestAcceptEmitsPatternOnlyWhenWindowFull(t *testing.T) {
	store := NewWindowStore([]int{5})
	for i := 0; i < 4; i++ {
		tk := tick.Tick{Symbol: "BTC-USD", Price: 100 + float64(i), TimestampUS: int64(i), Volatility: 0.01}
		if patterns := store.Accept(tk); len(patterns) != 0 {
			t.Fatalf("no pattern expected before window fills, got %d", len(patterns))
		}
	}
	tk := tick.Tick{Symbol: "BTC-USD", Price: 105, TimestampUS: 5, Volatility: 0.01}
	patterns := store.Accept(tk)
	if len(patterns) != 1 {
		t.Fatalf("expected exactly one pattern on the 5th tick, got %d", len(patterns))
	}
}

func TestAcceptDropsOutOfOrderTicks(t *testing.T) {
	store := NewWindowStore([]int{5})
	store.Accept(tick.Tick{Symbol: "ETH-USD", Price: 10, TimestampUS: 100})
	store.Accept(tick.Tick{Symbol: "ETH-USD", Price: 11, TimestampUS: 50})

	price, ok := store.LastPrice.Load("ETH-USD")
	if !ok || price != 11 {
		t.Fatalf("last price table tracks every Store call regardless of window ordering, got %v,%v", price, ok)
	}
	if n := len(store.stateFor("ETH-USD").windows[5].data); n != 1 {
		t.Fatalf("out-of-order tick must not enter the window, want 1 buffered entry, got %d", n)
	}
}

func TestLastPriceTableSnapshot(t *testing.T) {
	store := NewWindowStore([]int{20})
	store.Accept(tick.Tick{Symbol: "A", Price: 1, TimestampUS: 1})
	store.Accept(tick.Tick{Symbol: "B", Price: 2, TimestampUS: 1})

	snap := store.LastPrice.Snapshot()
	if snap["A"] != 1 || snap["B"] != 2 {
		t.Fatalf("snapshot missing entries: %v", snap)
	}
}

func TestAcceptPublishesProcessingBufferSizeGauge(t *testing.T) {
	store := NewWindowStore([]int{5})
	for i := 0; i < 5; i++ {
		store.Accept(tick.Tick{Symbol: "BUF-TEST", Price: 100 + float64(i), TimestampUS: int64(i), Volatility: 0.01})
	}

	mfs, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	var found bool
	for _, mf := range mfs {
		if mf.GetName() == "hft_processing_buffer_size" {
			found = true
			if got := mf.GetMetric()[0].GetGauge().GetValue(); got != 5 {
				t.Fatalf("expected buffer size gauge 5 after a full 5-tick window, got %v", got)
			}
		}
	}
	if !found {
		t.Fatalf("hft_processing_buffer_size metric not registered")
	}
}

func TestWindowStoreIsSafeForConcurrentSymbols(t *testing.T) {
	store := NewWindowStore([]int{10})
	symbols := []string{"A", "B", "C", "D"}

	var wg sync.WaitGroup
	for _, s := range symbols {
		s := s
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				store.Accept(tick.Tick{Symbol: s, Price: float64(i), TimestampUS: int64(i), Volatility: 0.01})
			}
		}()
	}
	wg.Wait()

	for _, s := range symbols {
		if _, ok := store.LastPrice.Load(s); !ok {
			t.Fatalf("expected a last price recorded for %s", s)
		}
	}
}
