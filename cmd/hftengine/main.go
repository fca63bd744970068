// FILE: main.go
// Package main – Program entrypoint for the fractal HFT engine.
//
// Boot sequence:
//   1) config.LoadEnvFile()   – read .env (no shell exports required)
//   2) cfg := config.FromEnv() – build runtime Config
//   3) wire tick generator -> window store -> signal processor -> order
//      builder -> risk gate -> execution engine -> portfolio
//   4) start the Prometheus /healthz and /metrics server on cfg.Port
//   5) run until SIGINT/SIGTERM
//
// Flags:
//   -kafka-servers <addr>   Broker address placeholder; no real broker
//                           dial happens, the engine runs the pipeline
//                           in-process via internal/bus
//   -initial-capital <usd>  Starting portfolio cash
//   -log-level <level>      DEBUG|INFO|WARN|ERROR
//
// Example:
//   go run ./cmd/hftengine -initial-capital 500000
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	ossignal "os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dropio12/fractal-hft/internal/bus"
	"github.com/dropio12/fractal-hft/internal/config"
	"github.com/dropio12/fractal-hft/internal/execution"
	"github.com/dropio12/fractal-hft/internal/fractal"
	"github.com/dropio12/fractal-hft/internal/ingest"
	"github.com/dropio12/fractal-hft/internal/metrics"
	"github.com/dropio12/fractal-hft/internal/order"
	"github.com/dropio12/fractal-hft/internal/portfolio"
	tradesignal "github.com/dropio12/fractal-hft/internal/signal"
	"github.com/dropio12/fractal-hft/internal/tick"
)

// anomalyThreshold is the risk_score above which a detected pattern
// counts as an anomaly alert.
const anomalyThreshold = 2.0

// throughputUpdateInterval is how often the background throughput
// gauge is recomputed from messages processed so far.
const throughputUpdateInterval = 5 * time.Second

func main() {
	// ---- Flags ----
	var kafkaServers string
	var initialCapital float64
	var logLevel string
	flag.StringVar(&kafkaServers, "kafka-servers", "", "Market data broker address (placeholder, no dial happens)")
	flag.Float64Var(&initialCapital, "initial-capital", 0, "Starting portfolio cash in USD")
	flag.StringVar(&logLevel, "log-level", "", "DEBUG|INFO|WARN|ERROR")
	flag.Parse()

	// ---- Environment & Config ----
	config.LoadEnvFile()
	cfg := config.FromEnv()
	if kafkaServers != "" {
		cfg.KafkaServers = kafkaServers
	}
	if initialCapital > 0 {
		cfg.InitialCapital = initialCapital
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	log.Printf("[INFO] booting fractal-hft engine kafka_servers=%s initial_capital=%.2f log_level=%s symbols=%v",
		cfg.KafkaServers, cfg.InitialCapital, cfg.LogLevel, cfg.Symbols)

	// ---- Pipeline wiring ----
	windowStore := ingest.NewWindowStore(nil)
	signalProcessor := tradesignal.NewProcessor()
	book := portfolio.New(cfg.InitialCapital)
	slippage := execution.NewGaussianSlippageSource(1, cfg.SlippageSigma)
	engine := execution.NewEngine(cfg.ExecutionWorkers, windowStore.LastPrice, book, slippage)

	patternBus := bus.New[fractal.Pattern](256)
	orderBus := bus.New[order.Order](256)

	engine.OnTrade = func(t execution.TradeExecution) {
		metrics.SetPortfolioValue(book.Value())
		log.Printf("[DEBUG] trade filled symbol=%s side=%s qty=%.4f price=%.4f latency_us=%d",
			t.Symbol, t.Side, t.Quantity, t.FillPrice, t.ExecutionLatencyUS)
	}
	engine.OnReject = func(o order.Order, reason string) {
		metrics.IncExecutionErrors("execution")
		log.Printf("[WARN] order rejected symbol=%s reason=%q", o.Symbol, reason)
	}
	engine.Start()
	defer engine.Stop()

	ctx, cancel := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go runPipeline(ctx, cfg, windowStore, signalProcessor, patternBus, orderBus, engine)

	// ---- HTTP metrics/health ----
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok\n"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Port), Handler: mux}
	go func() {
		log.Printf("[INFO] serving metrics on :%d/metrics", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("[INFO] shutdown signal received, draining")

	shutdownCtx, c := context.WithTimeout(context.Background(), 2*time.Second)
	defer c()
	_ = srv.Shutdown(shutdownCtx)
}

// runPipeline drives the synthetic tick generator (standing in for the
// out-of-scope external producer) through ingest, signal processing,
// order building, and submission to the execution engine.
func runPipeline(
	ctx context.Context,
	cfg config.Config,
	store *ingest.WindowStore,
	sigProc *tradesignal.Processor,
	patternBus *bus.Bus[fractal.Pattern],
	orderBus *bus.Bus[order.Order],
	engine *execution.Engine,
) {
	gen := tick.NewGenerator(cfg.Symbols, 42, "SIM")
	interval := time.Duration(cfg.TickIntervalMS) * time.Millisecond
	if interval <= 0 {
		interval = 10 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var messagesProcessed int64
	startTime := time.Now()
	go reportThroughput(ctx, &messagesProcessed, startTime)

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			t := gen.Next(now)

			acceptStart := time.Now()
			patterns := store.Accept(t)
			metrics.ObservePatternProcessingLatency(time.Since(acceptStart).Seconds())
			atomic.AddInt64(&messagesProcessed, 1)

			for _, pat := range patterns {
				metrics.IncPatternsDetected()
				patternBus.Publish(pat)
				if pat.RiskScore > anomalyThreshold {
					metrics.IncAnomalyAlerts()
				}

				sig, ok := sigProc.Process(pat, now.UnixMicro())
				if !ok {
					continue
				}
				metrics.IncFractalSignals()

				o := order.FromSignal(sig, now)
				orderBus.Publish(o)
				engine.Submit(o)
			}
		}
	}
}

// reportThroughput periodically recomputes the ingest throughput gauge
// from the total messages processed since startTime, mirroring the
// background throughput thread of the system this pipeline simulates.
func reportThroughput(ctx context.Context, messagesProcessed *int64, startTime time.Time) {
	ticker := time.NewTicker(throughputUpdateInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			elapsed := time.Since(startTime).Seconds()
			if elapsed <= 0 {
				continue
			}
			throughput := float64(atomic.LoadInt64(messagesProcessed)) / elapsed
			metrics.SetThroughput(throughput)
		}
	}
}
