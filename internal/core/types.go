package core

import (
	"time"

	"github.com/shopspring/decimal"
)

type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// StatusFilled is the exchange's terminal order status. Every other
// status string counts as still open.
const StatusFilled = "FILLED"

// Pair is a traded asset pair: Base is the asset being bought or sold,
// Quote the asset it is priced in.
type Pair struct {
	Base  string
	Quote string
}

// Symbol renders the exchange symbol code. The wire convention is
// quote-then-base concatenation; the ordering is part of the exchange
// contract and must not change.
func (p Pair) Symbol() string {
	return p.Quote + p.Base
}

// Tick carries the ticker prices for a pair. The simple price endpoint
// reports a single value, so Ask, Bid and Last all hold the same price.
type Tick struct {
	Ask  decimal.Decimal
	Bid  decimal.Decimal
	Last decimal.Decimal
}

// Transaction is the normalized view of an exchange order, both when
// freshly placed and when looked up later. OrderRefID is the client
// order id echoed by the exchange and is the handle for idempotent
// lookup.
type Transaction struct {
	Symbol             string
	OrderID            int64
	OrderRefID         string
	Price              decimal.Decimal
	Quantity           decimal.Decimal
	ExecutedQty        decimal.Decimal
	CumulativeQuoteQty decimal.Decimal
	Status             string
	TimeInForce        string
	Type               string
	Side               Side
	IsOpen             bool
	Time               time.Time
	UpdateTime         time.Time
}

// StockInfo describes static capabilities of the exchange.
type StockInfo struct {
	FillOrKill bool
}
