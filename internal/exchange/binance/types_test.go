package binance

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestDecodeTickRequiresPrice(t *testing.T) {
	tick, err := decodeTick([]byte(`{"symbol":"USDTBTC","price":"0.014"}`))
	if err != nil {
		t.Fatalf("decodeTick() error = %v", err)
	}
	want := decimal.RequireFromString("0.014")
	if !tick.Ask.Equal(want) || !tick.Bid.Equal(want) || !tick.Last.Equal(want) {
		t.Fatalf("tick = %+v, want all fields 0.014", tick)
	}

	if _, err := decodeTick([]byte(`{"symbol":"USDTBTC"}`)); err == nil {
		t.Fatalf("decodeTick() without price should error")
	}
	if _, err := decodeTick([]byte(`not json`)); err == nil {
		t.Fatalf("decodeTick() on garbage should error")
	}
}

func TestDecodeTransactionOpenDerivation(t *testing.T) {
	cases := []struct {
		status string
		open   bool
	}{
		{"NEW", true},
		{"PARTIALLY_FILLED", true},
		{"CANCELED", true},
		{"FILLED", false},
	}
	for _, tc := range cases {
		tx, err := decodeTransaction([]byte(`{"symbol":"USDTBTC","orderId":1,"clientOrderId":"c1","origQty":"0.002","status":"` + tc.status + `"}`))
		if err != nil {
			t.Fatalf("decodeTransaction(%s) error = %v", tc.status, err)
		}
		if tx.IsOpen != tc.open {
			t.Fatalf("IsOpen for %s = %v, want %v", tc.status, tx.IsOpen, tc.open)
		}
	}
}

func TestDecodeTransactionMapsFields(t *testing.T) {
	raw := `{"symbol":"USDTBTC","orderId":42,"clientOrderId":"web_abc","price":"50000.00000000","origQty":"0.002","executedQty":"0.001","cummulativeQuoteQty":"50","status":"PARTIALLY_FILLED","timeInForce":"GTC","type":"LIMIT","side":"BUY","time":1499827319559,"updateTime":1499827329559}`
	tx, err := decodeTransaction([]byte(raw))
	if err != nil {
		t.Fatalf("decodeTransaction() error = %v", err)
	}
	if tx.OrderRefID != "web_abc" || tx.OrderID != 42 {
		t.Fatalf("ids = %q/%d, want web_abc/42", tx.OrderRefID, tx.OrderID)
	}
	if !tx.Quantity.Equal(decimal.RequireFromString("0.002")) {
		t.Fatalf("Quantity = %s, want 0.002", tx.Quantity)
	}
	if !tx.ExecutedQty.Equal(decimal.RequireFromString("0.001")) {
		t.Fatalf("ExecutedQty = %s, want 0.001", tx.ExecutedQty)
	}
	if tx.Time.UnixMilli() != 1499827319559 {
		t.Fatalf("Time = %d, want 1499827319559", tx.Time.UnixMilli())
	}
	if tx.UpdateTime.UnixMilli() != 1499827329559 {
		t.Fatalf("UpdateTime = %d, want 1499827329559", tx.UpdateTime.UnixMilli())
	}
}
