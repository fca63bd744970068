// Package execution implements the order execution engine: a priority
// intake queue feeding a fixed worker pool, a slippage/commission model,
// and latency accounting.
package execution

import (
	"container/heap"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dropio12/fractal-hft/internal/ingest"
	"github.com/dropio12/fractal-hft/internal/metrics"
	"github.com/dropio12/fractal-hft/internal/order"
	"github.com/dropio12/fractal-hft/internal/portfolio"
	"github.com/dropio12/fractal-hft/internal/risk"
)

const latencyRingCapacity = 10000

// DefaultWorkers is the fixed worker-pool size used unless overridden.
const DefaultWorkers = 10

// Engine is the priority-ordered order intake and execution pool. Its
// intake queue is a container/heap guarded by its own mutex, separate
// from the Portfolio's lock. The heap has no capacity limit: Submit
// never blocks and never drops an order.
type Engine struct {
	qmu    sync.Mutex
	qcond  *sync.Cond
	queue  itemHeap
	seq    int64
	closed bool

	workers  int
	prices   *ingest.LastPriceTable
	book     *portfolio.Portfolio
	slippage SlippageSource

	latMu      sync.Mutex
	latencies  []int64
	latencyPos int

	wg sync.WaitGroup

	// OnTrade, if set, is invoked (from a worker goroutine) after every
	// fill. OnReject, if set, is invoked after every rejection.
	OnTrade  func(TradeExecution)
	OnReject func(order.Order, string)
}

// NewEngine builds an Engine bound to the given last-price table and
// portfolio, with the given worker count (<=0 uses DefaultWorkers) and
// slippage source.
func NewEngine(workers int, prices *ingest.LastPriceTable, book *portfolio.Portfolio, slippage SlippageSource) *Engine {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	e := &Engine{
		workers:  workers,
		prices:   prices,
		book:     book,
		slippage: slippage,
	}
	e.qcond = sync.NewCond(&e.qmu)
	heap.Init(&e.queue)
	return e
}

// Start launches the fixed worker pool. Each worker pulls one order at a
// time from the priority queue and executes it to completion.
func (e *Engine) Start() {
	for i := 0; i < e.workers; i++ {
		e.wg.Add(1)
		go e.worker()
	}
}

// Stop signals workers to drain and exit once the queue empties, and
// waits for them to finish. In-flight orders complete; queued orders are
// drained rather than force-cancelled.
func (e *Engine) Stop() {
	e.qmu.Lock()
	e.closed = true
	e.qcond.Broadcast()
	e.qmu.Unlock()
	e.wg.Wait()
}

// Submit enqueues an order for execution. The queue is unbounded
// in-process, so callers never need to block here; backpressure, if any
// is needed, belongs at the signal->execution boundary instead of
// dropping orders.
func (e *Engine) Submit(o order.Order) {
	e.qmu.Lock()
	e.seq++
	heap.Push(&e.queue, &queueItem{ord: o, seq: e.seq})
	e.qcond.Signal()
	e.qmu.Unlock()
}

func (e *Engine) worker() {
	defer e.wg.Done()
	for {
		e.qmu.Lock()
		for e.queue.Len() == 0 && !e.closed {
			e.qcond.Wait()
		}
		if e.queue.Len() == 0 && e.closed {
			e.qmu.Unlock()
			return
		}
		item := heap.Pop(&e.queue).(*queueItem)
		e.qmu.Unlock()

		e.execute(item.ord)
	}
}

// execute looks up the last traded price, runs the risk gate, computes a
// fill price and commission, and applies the trade to the portfolio.
func (e *Engine) execute(o order.Order) {
	startUS := time.Now().UnixMicro()

	price, ok := e.prices.Load(o.Symbol)
	if !ok {
		o.ExecutionStatus = order.StatusRejected
		log.Printf("[WARN] execution reject symbol=%s reason=no_market_data", o.Symbol)
		metrics.IncExecutionErrors("execution")
		if e.OnReject != nil {
			e.OnReject(o, "no market data")
		}
		return
	}

	snap := e.book.Snapshot(e.prices.Snapshot())
	metrics.SetRiskExposure(snap.AggregateExposure / snap.PortfolioValue)
	if accept, reason := risk.Check(o, price, snap); !accept {
		o.ExecutionStatus = order.StatusRejected
		log.Printf("[INFO] execution reject symbol=%s reason=%q", o.Symbol, reason)
		if e.OnReject != nil {
			e.OnReject(o, reason)
		}
		return
	}

	execPrice := e.executionPrice(o, price)
	commission := o.Quantity * execPrice * commissionRate

	endUS := time.Now().UnixMicro()
	latencyUS := endUS - startUS

	trade := TradeExecution{
		TradeID:            fmt.Sprintf("T%d_%s", endUS, uuid.New().String()),
		OrderID:            o.ID,
		Symbol:             o.Symbol,
		Side:               o.Side,
		Quantity:           o.Quantity,
		FillPrice:          execPrice,
		TimestampUS:        endUS,
		ExecutionLatencyUS: latencyUS,
		Commission:         commission,
		OriginatingPattern: o.OriginatingSignal,
	}

	e.book.ApplyTrade(portfolio.Trade{
		Symbol:      o.Symbol,
		Side:        string(o.Side),
		Quantity:    o.Quantity,
		Price:       execPrice,
		Commission:  commission,
		TimestampUS: endUS,
	})

	o.ExecutionStatus = order.StatusFilled
	o.FilledQuantity = o.Quantity
	o.AverageFillPrice = execPrice
	o.Commission = commission

	e.recordLatency(latencyUS)
	metrics.IncTradesExecuted()
	metrics.ObserveTradeLatencyUS(latencyUS)
	metrics.SetPortfolioValue(e.book.Value())

	if e.OnTrade != nil {
		e.OnTrade(trade)
	}
}

// executionPrice computes the fill price: MARKET orders draw slippage
// (sign forced by side so a BUY never improves and a SELL never
// improves); LIMIT orders clamp to (mid, limit) by side. The result is
// rounded to 4 decimal places.
func (e *Engine) executionPrice(o order.Order, mid float64) float64 {
	var price float64
	switch o.OrderType {
	case order.TypeLimit:
		if !o.HasLimitPrice {
			price = mid
		} else if o.Side == order.SideBuy {
			price = math.Min(o.LimitPrice, mid)
		} else {
			price = math.Max(o.LimitPrice, mid)
		}
	default: // MARKET
		eps := e.slippage.Sample()
		if o.Side == order.SideBuy {
			eps = math.Abs(eps)
		} else {
			eps = -math.Abs(eps)
		}
		price = mid * (1 + eps)
	}
	return math.Round(price*10000) / 10000
}

func (e *Engine) recordLatency(us int64) {
	e.latMu.Lock()
	defer e.latMu.Unlock()
	if len(e.latencies) < latencyRingCapacity {
		e.latencies = append(e.latencies, us)
		return
	}
	e.latencies[e.latencyPos] = us
	e.latencyPos = (e.latencyPos + 1) % latencyRingCapacity
}

// Latencies returns a snapshot of the last (up to 10,000) execution
// latency samples in microseconds.
func (e *Engine) Latencies() []int64 {
	e.latMu.Lock()
	defer e.latMu.Unlock()
	out := make([]int64, len(e.latencies))
	copy(out, e.latencies)
	return out
}
