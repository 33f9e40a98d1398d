package binance

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"coinbot/internal/core"
)

type param struct {
	Key   string
	Value string
}

// paramList is an order-preserving parameter set. url.Values re-sorts
// keys alphabetically on Encode; the exchange verifies the signature
// against the byte string it receives, so the documented parameter
// order has to survive encoding untouched.
type paramList []param

func (p paramList) Encode() string {
	var b strings.Builder
	for i, kv := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(kv.Key)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(kv.Value))
	}
	return b.String()
}

// signed appends the signature parameter computed over the current
// canonical string. The signature is always last and never signs itself.
func (p paramList) signed(secret string) paramList {
	return append(p, param{Key: "signature", Value: sign(secret, p.Encode())})
}

// orderParams assembles the signed parameter set for a GTC limit order
// in the exchange-mandated order: symbol, side, type, timeInForce,
// quantity, price, recvWindow, timestamp.
func orderParams(side core.Side, symbol string, qty, price decimal.Decimal, recvWindowMs, nowMs int64) paramList {
	return paramList{
		{Key: "symbol", Value: symbol},
		{Key: "side", Value: string(side)},
		{Key: "type", Value: "LIMIT"},
		{Key: "timeInForce", Value: "GTC"},
		{Key: "quantity", Value: core.Format8(qty)},
		{Key: "price", Value: core.Format8(price)},
		{Key: "recvWindow", Value: strconv.FormatInt(recvWindowMs, 10)},
		{Key: "timestamp", Value: strconv.FormatInt(nowMs, 10)},
	}
}

// orderLookupParams assembles the signed parameter set for an order
// lookup by client order id.
func orderLookupParams(symbol, orderRefID string, recvWindowMs, nowMs int64) paramList {
	return paramList{
		{Key: "symbol", Value: symbol},
		{Key: "origClientOrderId", Value: orderRefID},
		{Key: "recvWindow", Value: strconv.FormatInt(recvWindowMs, 10)},
		{Key: "timestamp", Value: strconv.FormatInt(nowMs, 10)},
	}
}

// buyQty derives the buy quantity from the quote-asset stack and floors
// it to the symbol's step.
func buyQty(stack, price, step decimal.Decimal) decimal.Decimal {
	return core.QuantizeQty(stack.Div(price), step)
}
