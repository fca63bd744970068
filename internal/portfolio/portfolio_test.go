package portfolio

import (
	"math"
	"testing"
)

func approxEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestApplyTradeBuyUpdatesAverageEntry(t *testing.T) {
	p := New(100000)
	p.ApplyTrade(Trade{Symbol: "BTC-USD", Side: "buy", Quantity: 2, Price: 100, Commission: 1})
	p.ApplyTrade(Trade{Symbol: "BTC-USD", Side: "buy", Quantity: 2, Price: 200, Commission: 1})

	pos := p.PositionFor("BTC-USD")
	if !approxEqual(pos.AverageEntry, 150) {
		t.Fatalf("expected volume-weighted average entry 150, got %v", pos.AverageEntry)
	}
	if !approxEqual(pos.Quantity, 4) {
		t.Fatalf("expected quantity 4, got %v", pos.Quantity)
	}
	wantCash := 100000.0 - (2*100 + 1) - (2*200 + 1)
	if !approxEqual(p.Cash, wantCash) {
		t.Fatalf("cash mismatch: want %v, got %v", wantCash, p.Cash)
	}
}

func TestApplyTradeSellRealizesPnLWithoutMovingAverageEntry(t *testing.T) {
	p := New(100000)
	p.ApplyTrade(Trade{Symbol: "BTC-USD", Side: "buy", Quantity: 10, Price: 100, Commission: 0})
	p.ApplyTrade(Trade{Symbol: "BTC-USD", Side: "sell", Quantity: 4, Price: 120, Commission: 0})

	pos := p.PositionFor("BTC-USD")
	if !approxEqual(pos.AverageEntry, 100) {
		t.Fatalf("average entry must not move on a sell, got %v", pos.AverageEntry)
	}
	if !approxEqual(pos.RealizedPnL, 80) {
		t.Fatalf("expected realized PnL 80 (4*(120-100)), got %v", pos.RealizedPnL)
	}
	if p.WinningTrades != 1 {
		t.Fatalf("a profitable sell must count as a winning trade, got %d", p.WinningTrades)
	}
}

func TestApplyTradeLosingSellDoesNotCountAsWin(t *testing.T) {
	p := New(100000)
	p.ApplyTrade(Trade{Symbol: "BTC-USD", Side: "buy", Quantity: 10, Price: 100, Commission: 0})
	p.ApplyTrade(Trade{Symbol: "BTC-USD", Side: "sell", Quantity: 4, Price: 90, Commission: 0})

	if p.WinningTrades != 0 {
		t.Fatalf("a losing sell must not count as a win, got %d", p.WinningTrades)
	}
}

func TestSnapshotMarksPositionsWithoutMutatingPnL(t *testing.T) {
	p := New(100000)
	p.ApplyTrade(Trade{Symbol: "BTC-USD", Side: "buy", Quantity: 10, Price: 100, Commission: 0})

	before := p.PositionFor("BTC-USD").RealizedPnL
	snap := p.Snapshot(map[string]float64{"BTC-USD": 150})
	after := p.PositionFor("BTC-USD").RealizedPnL

	if before != after {
		t.Fatal("Snapshot must not change realized PnL (no trade occurred)")
	}
	if snap.ExistingMarketValue != 1500 {
		t.Fatalf("expected marked exposure 1500, got %v", snap.ExistingMarketValue)
	}
}

func TestDrawdownTracksPeakDecline(t *testing.T) {
	p := New(100000)
	p.ApplyTrade(Trade{Symbol: "BTC-USD", Side: "buy", Quantity: 100, Price: 1000, Commission: 0})
	p.ApplyTrade(Trade{Symbol: "BTC-USD", Side: "sell", Quantity: 100, Price: 500, Commission: 0})

	if p.MaxDrawdown <= 0 {
		t.Fatalf("expected a recorded drawdown after a losing round-trip, got %v", p.MaxDrawdown)
	}
}
