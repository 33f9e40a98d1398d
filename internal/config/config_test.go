package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
pair:
  base: btc
  quote: usdt
trade:
  stack: "100.5"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Pair.Base != "BTC" || cfg.Pair.Quote != "USDT" {
		t.Fatalf("pair = %+v, want uppercased BTC/USDT", cfg.Pair)
	}
	if cfg.Exchange.RestBaseURL != "https://api.binance.com" {
		t.Fatalf("rest_base_url default = %q", cfg.Exchange.RestBaseURL)
	}
	if cfg.Exchange.WSBaseURL != "wss://stream.binance.com:9443" {
		t.Fatalf("ws_base_url default = %q", cfg.Exchange.WSBaseURL)
	}
	if cfg.Exchange.RecvWindowMs != 60000 {
		t.Fatalf("recv_window_ms default = %d, want 60000", cfg.Exchange.RecvWindowMs)
	}
	if cfg.Exchange.HTTPTimeoutSec != 15 {
		t.Fatalf("http_timeout_sec default = %d, want 15", cfg.Exchange.HTTPTimeoutSec)
	}
	if !cfg.Trade.Stack.Equal(decimal.RequireFromString("100.5")) {
		t.Fatalf("trade.stack = %s, want 100.5", cfg.Trade.Stack)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, `
pair:
  base: BTC
  quote: USDT
grid:
  levels: 5
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("Load() with unknown field should error")
	}
}

func TestLoadRejectsMissingPair(t *testing.T) {
	path := writeConfig(t, `
exchange:
  recv_window_ms: 5000
`)
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "pair base and quote are required") {
		t.Fatalf("Load() error = %v, want pair requirement", err)
	}
}

func TestLoadRejectsBadRecvWindow(t *testing.T) {
	path := writeConfig(t, `
pair:
  base: BTC
  quote: USDT
exchange:
  recv_window_ms: 70000
`)
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "recv_window_ms") {
		t.Fatalf("Load() error = %v, want recv_window_ms bound", err)
	}
}

func TestLoadRejectsBadDecimal(t *testing.T) {
	path := writeConfig(t, `
pair:
  base: BTC
  quote: USDT
trade:
  stack: "not-a-number"
`)
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "invalid decimal") {
		t.Fatalf("Load() error = %v, want decimal parse failure", err)
	}
}

func TestLoadTelegramValidation(t *testing.T) {
	path := writeConfig(t, `
pair:
  base: BTC
  quote: USDT
observability:
  telegram:
    enabled: true
    chat_id: "123"
`)
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "bot_token") {
		t.Fatalf("Load() error = %v, want bot_token requirement", err)
	}
}
