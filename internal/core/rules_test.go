package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestQuantizeQtyFloorsToStep(t *testing.T) {
	qty := decimal.RequireFromString("0.123456")
	step := decimal.RequireFromString("0.001")

	got := QuantizeQty(qty, step)
	if !got.Equal(decimal.RequireFromString("0.123")) {
		t.Fatalf("QuantizeQty() = %s, want 0.123", got)
	}
}

func TestQuantizeQtyAlreadyAligned(t *testing.T) {
	qty := decimal.RequireFromString("0.002")
	step := decimal.RequireFromString("0.0001")

	got := QuantizeQty(qty, step)
	if !got.Equal(qty) {
		t.Fatalf("QuantizeQty() = %s, want %s", got, qty)
	}
}

func TestQuantizeQtyFloorProperty(t *testing.T) {
	cases := []struct{ qty, step string }{
		{"0.123456", "0.001"},
		{"1", "0.3"},
		{"0.00009", "0.0001"},
		{"5.5555", "0.05"},
		{"100", "1"},
	}
	for _, tc := range cases {
		qty := decimal.RequireFromString(tc.qty)
		step := decimal.RequireFromString(tc.step)
		got := QuantizeQty(qty, step)
		if got.Cmp(qty) > 0 {
			t.Fatalf("QuantizeQty(%s, %s) = %s exceeds input", tc.qty, tc.step, got)
		}
		if !got.Mod(step).IsZero() {
			t.Fatalf("QuantizeQty(%s, %s) = %s is not a step multiple", tc.qty, tc.step, got)
		}
		if got.Add(step).Cmp(qty) <= 0 {
			t.Fatalf("QuantizeQty(%s, %s) = %s floors too far", tc.qty, tc.step, got)
		}
	}
}

func TestQuantizeQtyZeroStepPassesThrough(t *testing.T) {
	qty := decimal.RequireFromString("0.12345")
	if got := QuantizeQty(qty, decimal.Zero); !got.Equal(qty) {
		t.Fatalf("QuantizeQty(zero step) = %s, want %s", got, qty)
	}
}

func TestFormat8(t *testing.T) {
	if got := Format8(decimal.RequireFromString("0.002")); got != "0.00200000" {
		t.Fatalf("Format8(0.002) = %q, want %q", got, "0.00200000")
	}
	if got := Format8(decimal.RequireFromString("50000")); got != "50000.00000000" {
		t.Fatalf("Format8(50000) = %q, want %q", got, "50000.00000000")
	}
}

func TestPairSymbolQuoteThenBase(t *testing.T) {
	p := Pair{Base: "BTC", Quote: "USDT"}
	if got := p.Symbol(); got != "USDTBTC" {
		t.Fatalf("Symbol() = %q, want %q", got, "USDTBTC")
	}
}
