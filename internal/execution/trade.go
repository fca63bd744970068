package execution

import "github.com/dropio12/fractal-hft/internal/order"

// TradeExecution is an append-only execution record.
type TradeExecution struct {
	TradeID            string       `json:"trade_id"`
	OrderID            string       `json:"order_id"`
	Symbol             string       `json:"symbol"`
	Side               order.Side   `json:"side"`
	Quantity           float64      `json:"quantity"`
	FillPrice          float64      `json:"fill_price"`
	TimestampUS        int64        `json:"timestamp_us"`
	ExecutionLatencyUS int64        `json:"execution_latency_us"`
	Commission         float64      `json:"commission"`
	OriginatingPattern string       `json:"originating_pattern"`
}

const commissionRate = 0.0005
