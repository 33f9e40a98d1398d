package binance

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"coinbot/internal/core"
)

type tickerPriceResponse struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

type transactionResponse struct {
	Symbol             string `json:"symbol"`
	OrderID            int64  `json:"orderId"`
	ClientOrderID      string `json:"clientOrderId"`
	Price              string `json:"price"`
	OrigQty            string `json:"origQty"`
	ExecutedQty        string `json:"executedQty"`
	CumulativeQuoteQty string `json:"cummulativeQuoteQty"`
	Status             string `json:"status"`
	TimeInForce        string `json:"timeInForce"`
	Type               string `json:"type"`
	Side               string `json:"side"`
	TransactTime       int64  `json:"transactTime"`
	Time               int64  `json:"time"`
	UpdateTime         int64  `json:"updateTime"`
}

type exchangeInfoResponse struct {
	Symbols []symbolInfoResponse `json:"symbols"`
}

type symbolInfoResponse struct {
	Symbol  string `json:"symbol"`
	Filters []struct {
		FilterType string `json:"filterType"`
		StepSize   string `json:"stepSize"`
	} `json:"filters"`
}

// decodeTick maps the single reported price onto ask, bid and last: the
// simple ticker endpoint does not distinguish them.
func decodeTick(body []byte) (core.Tick, error) {
	var resp tickerPriceResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return core.Tick{}, err
	}
	price, err := decimal.NewFromString(resp.Price)
	if err != nil {
		return core.Tick{}, errors.New("ticker response missing price")
	}
	return core.Tick{Ask: price, Bid: price, Last: price}, nil
}

func decodeTransaction(body []byte) (core.Transaction, error) {
	var resp transactionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return core.Transaction{}, err
	}
	price, _ := decimal.NewFromString(resp.Price)
	origQty, _ := decimal.NewFromString(resp.OrigQty)
	executedQty, _ := decimal.NewFromString(resp.ExecutedQty)
	cumQuote, _ := decimal.NewFromString(resp.CumulativeQuoteQty)

	tx := core.Transaction{
		Symbol:             resp.Symbol,
		OrderID:            resp.OrderID,
		OrderRefID:         resp.ClientOrderID,
		Price:              price,
		Quantity:           origQty,
		ExecutedQty:        executedQty,
		CumulativeQuoteQty: cumQuote,
		Status:             resp.Status,
		TimeInForce:        resp.TimeInForce,
		Type:               resp.Type,
		Side:               core.Side(resp.Side),
		IsOpen:             resp.Status != core.StatusFilled,
	}
	switch {
	case resp.Time > 0:
		tx.Time = time.UnixMilli(resp.Time)
	case resp.TransactTime > 0:
		tx.Time = time.UnixMilli(resp.TransactTime)
	}
	if resp.UpdateTime > 0 {
		tx.UpdateTime = time.UnixMilli(resp.UpdateTime)
	}
	return tx, nil
}

// parseStepSizes flattens the exchangeInfo catalogue into a per-symbol
// LOT_SIZE step map. Symbols without a positive step are left out so
// lookups report NotFound instead of a guessed default.
func parseStepSizes(resp exchangeInfoResponse) map[string]decimal.Decimal {
	steps := make(map[string]decimal.Decimal, len(resp.Symbols))
	for _, sym := range resp.Symbols {
		for _, f := range sym.Filters {
			if f.FilterType != "LOT_SIZE" || f.StepSize == "" {
				continue
			}
			step, err := decimal.NewFromString(f.StepSize)
			if err != nil || step.Cmp(decimal.Zero) <= 0 {
				continue
			}
			steps[sym.Symbol] = step
		}
	}
	return steps
}
