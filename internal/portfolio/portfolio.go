// Package portfolio implements the position/portfolio/PnL ledger.
// Portfolio is mutable shared state: every read and write (position
// update, risk check, value calc) takes the single exclusive lock for
// the whole critical section, so a risk check and the trade it gates
// never see torn state from a concurrent update.
package portfolio

import (
	"sync"
)

// Position is per-symbol signed exposure with a volume-weighted average
// entry price.
type Position struct {
	Symbol          string
	Quantity        float64
	AverageEntry    float64
	MarketValue     float64
	UnrealizedPnL   float64
	RealizedPnL     float64
	LastUpdateUS    int64
}

// Portfolio holds cash, positions, and the running PnL/drawdown
// bookkeeping. All access goes through the methods below, which take mu
// for their full duration.
type Portfolio struct {
	mu sync.Mutex

	Cash                float64
	Positions           map[string]*Position
	PeakPortfolioValue  float64
	MaxDrawdown         float64
	TotalTrades         int
	WinningTrades       int
	CumulativePnL       float64
}

// New creates a Portfolio with the given starting cash and no positions.
func New(initialCapital float64) *Portfolio {
	return &Portfolio{
		Cash:               initialCapital,
		Positions:          make(map[string]*Position),
		PeakPortfolioValue: initialCapital,
	}
}

// Value returns cash + sum(position.market_value) using each held
// symbol's last known mark, without mutating state.
func (p *Portfolio) Value() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.valueLocked()
}

func (p *Portfolio) valueLocked() float64 {
	total := p.Cash
	for _, pos := range p.Positions {
		total += pos.MarketValue
	}
	return total
}

// PositionFor returns a copy of the current position for a symbol (zero
// value if none exists yet).
func (p *Portfolio) PositionFor(symbol string) Position {
	p.mu.Lock()
	defer p.mu.Unlock()
	if pos, ok := p.Positions[symbol]; ok {
		return *pos
	}
	return Position{Symbol: symbol}
}

// ExposureSnapshot is the data the risk gate needs, read under a single
// lock acquisition so it cannot be torn by a concurrent trade update.
type ExposureSnapshot struct {
	Cash            float64
	PortfolioValue  float64
	AggregateExposure float64
	ExistingMarketValue float64
}

// Snapshot returns the current cash/value/exposure, recomputing each held
// position's mark and unrealized PnL from currentPrices first. Realized
// PnL, cash and trade counts are not changed (no trade occurred).
func (p *Portfolio) Snapshot(currentPrices map[string]float64) ExposureSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.markLocked(currentPrices)

	var aggregate float64
	for _, pos := range p.Positions {
		aggregate += abs(pos.MarketValue)
	}

	return ExposureSnapshot{
		Cash:                p.Cash,
		PortfolioValue:      maxFloat(p.valueLocked(), 1.0),
		AggregateExposure:   aggregate,
		ExistingMarketValue: aggregate,
	}
}

func (p *Portfolio) markLocked(currentPrices map[string]float64) {
	for symbol, pos := range p.Positions {
		if price, ok := currentPrices[symbol]; ok {
			pos.MarketValue = pos.Quantity * price
			pos.UnrealizedPnL = pos.MarketValue - pos.Quantity*pos.AverageEntry
		}
	}
}

// Trade is the minimal data ApplyTrade needs to update a position; it is
// a narrower view than execution.TradeExecution to avoid an import cycle.
type Trade struct {
	Symbol      string
	Side        string // "buy" or "sell"
	Quantity    float64
	Price       float64
	Commission  float64
	TimestampUS int64
}

// ApplyTrade updates cash and the symbol's position for a BUY or SELL,
// then refreshes portfolio value/peak/drawdown using price as this
// symbol's mark (other symbols keep their last known marks), and
// increments the total trade count (and the winning-trade count on a
// profitable sell).
func (p *Portfolio) ApplyTrade(t Trade) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pos, ok := p.Positions[t.Symbol]
	if !ok {
		pos = &Position{Symbol: t.Symbol}
		p.Positions[t.Symbol] = pos
	}

	switch t.Side {
	case "buy":
		newQty := pos.Quantity + t.Quantity
		if newQty != 0 {
			pos.AverageEntry = (pos.Quantity*pos.AverageEntry + t.Quantity*t.Price) / newQty
		}
		pos.Quantity = newQty
		p.Cash -= t.Quantity*t.Price + t.Commission
	case "sell":
		realized := (t.Price - pos.AverageEntry) * t.Quantity
		pos.RealizedPnL += realized
		p.CumulativePnL += realized
		pos.Quantity -= t.Quantity
		p.Cash += t.Quantity*t.Price - t.Commission
		if realized > 0 {
			p.WinningTrades++
		}
	}

	pos.LastUpdateUS = t.TimestampUS
	pos.MarketValue = pos.Quantity * t.Price
	pos.UnrealizedPnL = pos.MarketValue - pos.Quantity*pos.AverageEntry

	p.TotalTrades++

	currentValue := p.valueLocked()
	if currentValue > p.PeakPortfolioValue {
		p.PeakPortfolioValue = currentValue
	} else if p.PeakPortfolioValue > 0 {
		drawdown := (p.PeakPortfolioValue - currentValue) / p.PeakPortfolioValue
		if drawdown > p.MaxDrawdown {
			p.MaxDrawdown = drawdown
		}
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
