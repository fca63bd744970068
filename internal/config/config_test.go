package config

import (
	"os"
	"testing"
)

func TestFromEnvDefaults(t *testing.T) {
	clearEngineEnv(t)
	cfg := FromEnv()

	if cfg.KafkaServers != "localhost:9092" {
		t.Fatalf("default kafka servers mismatch: %v", cfg.KafkaServers)
	}
	if cfg.InitialCapital != 1000000.0 {
		t.Fatalf("default initial capital mismatch: %v", cfg.InitialCapital)
	}
	if cfg.ExecutionWorkers != 10 {
		t.Fatalf("default execution workers mismatch: %v", cfg.ExecutionWorkers)
	}
	if len(cfg.Symbols) != 3 {
		t.Fatalf("expected 3 default symbols, got %v", cfg.Symbols)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	clearEngineEnv(t)
	os.Setenv("INITIAL_CAPITAL", "250000")
	os.Setenv("SYMBOLS", "BTC-USD, ETH-USD")
	defer clearEngineEnv(t)

	cfg := FromEnv()
	if cfg.InitialCapital != 250000 {
		t.Fatalf("expected overridden initial capital, got %v", cfg.InitialCapital)
	}
	if len(cfg.Symbols) != 2 || cfg.Symbols[0] != "BTC-USD" || cfg.Symbols[1] != "ETH-USD" {
		t.Fatalf("expected trimmed, split symbol list, got %v", cfg.Symbols)
	}
}

func clearEngineEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"KAFKA_SERVERS", "INITIAL_CAPITAL", "LOG_LEVEL", "PORT", "EXECUTION_WORKERS", "SYMBOLS", "SLIPPAGE_SIGMA", "TICK_INTERVAL_MS"} {
		os.Unsetenv(k)
	}
}
