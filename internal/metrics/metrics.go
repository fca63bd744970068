// Package metrics exposes the engine's Prometheus collectors. Registered
// in init() and served by the HTTP handler the cmd entrypoint wires at
// /metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	tradesExecuted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hft_trades_executed_total",
		Help: "Total trades executed by the execution engine.",
	})

	tradeLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "hft_trade_latency_microseconds",
		Help:    "Order execution latency in microseconds.",
		Buckets: []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	})

	portfolioValue = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "hft_portfolio_value_usd",
		Help: "Current portfolio value in USD.",
	})

	riskExposure = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "hft_risk_exposure",
		Help: "Current aggregate risk exposure as a fraction of portfolio value.",
	})

	fractalSignals = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hft_fractal_signals_total",
		Help: "Total fractal trading signals accepted by the signal processor.",
	})

	executionErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hft_execution_errors_total",
		Help: "Total execution errors by stage.",
	}, []string{"stage"})

	patternsDetected = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hft_patterns_detected_total",
		Help: "Total fractal patterns detected.",
	})

	patternProcessingLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "hft_pattern_processing_latency_seconds",
		Help:    "Pattern detection processing latency in seconds.",
		Buckets: prometheus.DefBuckets,
	})

	throughput = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "hft_throughput_msgs_per_sec",
		Help: "Current message processing throughput (msgs/s).",
	})

	anomalyAlerts = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hft_anomaly_alerts_total",
		Help: "Total fractal anomaly alerts (risk_score above threshold).",
	})

	processingBufferSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "hft_processing_buffer_size",
		Help: "Current size of the largest per-symbol processing buffer.",
	})
)

func init() {
	prometheus.MustRegister(
		tradesExecuted,
		tradeLatency,
		portfolioValue,
		riskExposure,
		fractalSignals,
		executionErrors,
		patternsDetected,
		patternProcessingLatency,
		throughput,
		anomalyAlerts,
		processingBufferSize,
	)
}

// IncTradesExecuted counts one filled trade.
func IncTradesExecuted() { tradesExecuted.Inc() }

// ObserveTradeLatencyUS records an order's execution latency in
// microseconds.
func ObserveTradeLatencyUS(us int64) { tradeLatency.Observe(float64(us)) }

// SetPortfolioValue publishes the current portfolio value.
func SetPortfolioValue(v float64) { portfolioValue.Set(v) }

// SetRiskExposure publishes the current aggregate exposure fraction.
func SetRiskExposure(v float64) { riskExposure.Set(v) }

// IncFractalSignals counts one accepted trading signal.
func IncFractalSignals() { fractalSignals.Inc() }

// IncExecutionErrors counts one error at the given pipeline stage
// ("ingest", "pattern", or "execution").
func IncExecutionErrors(stage string) { executionErrors.WithLabelValues(stage).Inc() }

// IncPatternsDetected counts one pattern emitted by the Window Store.
func IncPatternsDetected() { patternsDetected.Inc() }

// ObservePatternProcessingLatency records the wall time spent turning a
// tick into emitted patterns.
func ObservePatternProcessingLatency(seconds float64) { patternProcessingLatency.Observe(seconds) }

// SetThroughput publishes the current ingest throughput in msgs/s.
func SetThroughput(v float64) { throughput.Set(v) }

// IncAnomalyAlerts counts one high-risk pattern anomaly.
func IncAnomalyAlerts() { anomalyAlerts.Inc() }

// SetProcessingBufferSize publishes the largest observed per-symbol
// buffer occupancy.
func SetProcessingBufferSize(v float64) { processingBufferSize.Set(v) }
