// Package risk implements the risk gate: per-position,
// aggregate-exposure, and capital-adequacy checks applied to each order
// arrival using a single consistent portfolio snapshot.
package risk

import (
	"fmt"

	"github.com/dropio12/fractal-hft/internal/order"
	"github.com/dropio12/fractal-hft/internal/portfolio"
)

const (
	maxPositionSize = 0.05
	maxTotalExposure = 0.80
	capitalAdequacy = 0.95
)

// Check evaluates an order against the given exposure snapshot and
// current last price, returning (true, "") on acceptance or (false,
// reason) on rejection. The snapshot must have been taken under the
// portfolio's lock in the same critical section as any subsequent
// commit, or the check can pass against state a concurrent trade has
// already invalidated.
func Check(o order.Order, lastPrice float64, snap portfolio.ExposureSnapshot) (bool, string) {
	orderValue := o.Quantity * lastPrice
	portfolioValue := snap.PortfolioValue

	positionPct := orderValue / portfolioValue
	if positionPct > maxPositionSize {
		return false, fmt.Sprintf("position size %.2f%% exceeds limit %.2f%%", positionPct*100, maxPositionSize*100)
	}

	totalExposurePct := (snap.AggregateExposure + orderValue) / portfolioValue
	if totalExposurePct > maxTotalExposure {
		return false, fmt.Sprintf("total exposure %.2f%% exceeds limit %.2f%%", totalExposurePct*100, maxTotalExposure*100)
	}

	if o.Side == order.SideBuy && orderValue > capitalAdequacy*snap.Cash {
		return false, "insufficient capital for purchase"
	}

	return true, ""
}
