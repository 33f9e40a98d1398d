package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"coinbot/internal/core"
)

// ensureRules performs the one-shot full-catalogue exchangeInfo fetch.
// Concurrent callers block on the Once until the first load finishes;
// the outcome, success or failure, is final for the client's lifetime.
func (c *Client) ensureRules(ctx context.Context) error {
	c.rulesOnce.Do(func() {
		c.steps, c.rulesErr = c.fetchStepSizes(ctx)
	})
	return c.rulesErr
}

func (c *Client) fetchStepSizes(ctx context.Context) (map[string]decimal.Decimal, error) {
	status, body, err := c.send(ctx, http.MethodGet, "/api/v3/exchangeInfo", nil, authNone)
	if err != nil {
		return nil, fmt.Errorf("fetch exchange info: %w", err)
	}
	if status/100 != 2 {
		return nil, fmt.Errorf("fetch exchange info: http status %d", status)
	}
	var resp exchangeInfoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode exchange info: %w", err)
	}
	return parseStepSizes(resp), nil
}

// stepSize looks up the LOT_SIZE step for a symbol. It never falls back
// to a default: a missing filter makes quantization impossible and the
// caller must fail the order locally.
func (c *Client) stepSize(ctx context.Context, symbol string) (decimal.Decimal, error) {
	if err := c.ensureRules(ctx); err != nil {
		return decimal.Zero, core.ErrRulesUnavailable
	}
	step, ok := c.steps[symbol]
	if !ok {
		return decimal.Zero, core.ErrUnknownSymbol
	}
	return step, nil
}
