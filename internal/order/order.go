// Package order defines the Order record and the order builder: it maps
// an accepted trading signal to an order ready for the execution engine.
package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/dropio12/fractal-hft/internal/signal"
)

// Side is the direction of a trade.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Type is the order type understood by the executor. This pipeline only
// builds MARKET orders; LIMIT is supported by the executor for
// completeness and tests.
type Type string

const (
	TypeMarket Type = "market"
	TypeLimit  Type = "limit"
)

// Status is the execution lifecycle state of an order. Terminal on
// Filled or Rejected.
type Status string

const (
	StatusPending   Status = "pending"
	StatusFilled    Status = "filled"
	StatusPartial   Status = "partial"
	StatusCancelled Status = "cancelled"
	StatusRejected  Status = "rejected"
)

// Priority mirrors signal.Priority for the execution queue ordering.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
)

// Order is created by the builder, transferred into the execution
// engine, and mutated solely by executor workers.
type Order struct {
	ID                string  `json:"id"`
	Symbol            string  `json:"symbol"`
	Side              Side    `json:"side"`
	OrderType         Type    `json:"order_type"`
	Quantity          float64 `json:"quantity"`
	LimitPrice        float64 `json:"limit_price,omitempty"`
	HasLimitPrice     bool    `json:"-"`
	CreatedAtUS       int64   `json:"created_at_us"`
	OriginatingSignal string  `json:"originating_signal"`
	Priority          Priority `json:"priority"`
	RiskScore         float64 `json:"risk_score"`
	ExecutionStatus   Status  `json:"execution_status"`
	FilledQuantity    float64 `json:"filled_quantity"`
	AverageFillPrice  float64 `json:"average_fill_price"`
	Commission        float64 `json:"commission"`
}

// FromSignal builds a MARKET Order from an accepted Signal. Only
// BUY/STRONG_BUY/SELL/STRONG_SELL become orders; callers must have
// already filtered to actionable signals.
func FromSignal(sig signal.Signal, now time.Time) Order {
	side := SideBuy
	if sig.Action == "SELL" || sig.Action == "STRONG_SELL" {
		side = SideSell
	}

	priority := PriorityMedium
	if sig.Priority == signal.PriorityHigh {
		priority = PriorityHigh
	}

	return Order{
		ID:                uuid.New().String(),
		Symbol:            sig.Symbol,
		Side:              side,
		OrderType:         TypeMarket,
		Quantity:          sig.PositionSize,
		CreatedAtUS:       now.UnixMicro(),
		OriginatingSignal: string(sig.PatternType),
		Priority:          priority,
		RiskScore:         sig.RiskScore,
		ExecutionStatus:   StatusPending,
	}
}
