package binance

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"coinbot/internal/config"
	"coinbot/internal/core"
)

type authType int

const (
	authNone authType = iota
	authSigned
)

const (
	defaultBaseURL      = "https://api.binance.com"
	defaultRecvWindowMs = 60000
)

// Client is the Binance spot trading facade. It holds one credential
// pair and one immutable rules cache; calls share nothing else, so
// concurrent use needs no locking beyond the one-shot rules load.
type Client struct {
	apiKey     string
	apiSecret  string
	baseURL    string
	wsBaseURL  string
	recvWindow int64
	httpClient *http.Client
	clock      Clock

	rulesOnce sync.Once
	steps     map[string]decimal.Decimal
	rulesErr  error
}

type Options struct {
	APIKey         string
	APISecret      string
	RestBaseURL    string
	WSBaseURL      string
	RecvWindowMs   int64
	HTTPTimeoutSec int64
	Clock          Clock
}

// New builds a client from config and performs the one-shot rules load.
// A failed load does not fail construction: ticker and order lookups
// work without rules, while order placement fails fast with the
// precondition sentinel instead of sending an unquantized quantity.
func New(ctx context.Context, cfg config.ExchangeConfig) (*Client, error) {
	if cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, errors.New("api_key/api_secret required")
	}
	c := NewClientWithOptions(Options{
		APIKey:         cfg.APIKey,
		APISecret:      cfg.APISecret,
		RestBaseURL:    cfg.RestBaseURL,
		WSBaseURL:      cfg.WSBaseURL,
		RecvWindowMs:   cfg.RecvWindowMs,
		HTTPTimeoutSec: cfg.HTTPTimeoutSec,
	})
	if err := c.ensureRules(ctx); err != nil {
		log.Printf("level=WARN event=rules_load_failed err=%q", err.Error())
	}
	return c, nil
}

func NewClientWithOptions(opts Options) *Client {
	timeout := 15 * time.Second
	if opts.HTTPTimeoutSec > 0 {
		timeout = time.Duration(opts.HTTPTimeoutSec) * time.Second
	}
	baseURL := strings.TrimRight(opts.RestBaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	recvWindow := opts.RecvWindowMs
	if recvWindow <= 0 {
		recvWindow = defaultRecvWindowMs
	}
	clock := opts.Clock
	if clock == nil {
		clock = systemClock
	}
	return &Client{
		apiKey:     opts.APIKey,
		apiSecret:  opts.APISecret,
		baseURL:    baseURL,
		wsBaseURL:  strings.TrimRight(opts.WSBaseURL, "/"),
		recvWindow: recvWindow,
		httpClient: &http.Client{Timeout: timeout},
		clock:      clock,
	}
}

func (c *Client) Name() string { return "binance" }

func (c *Client) StockInfo() core.StockInfo {
	return core.StockInfo{FillOrKill: false}
}

func (c *Client) GetTicker(ctx context.Context, pair core.Pair) (core.ServiceResponse[core.Tick], error) {
	params := paramList{{Key: "symbol", Value: pair.Symbol()}}
	status, body, err := c.send(ctx, http.MethodGet, "/api/v3/ticker/price", params, authNone)
	if err != nil {
		return core.NetworkFailure[core.Tick](), nil
	}
	return classify(status, body, decodeTick)
}

// GetOrder looks an order up by the client order id echoed at placement
// time. The lookup is idempotent: it creates no exchange state.
func (c *Client) GetOrder(ctx context.Context, pair core.Pair, orderRefID string) (core.ServiceResponse[core.Transaction], error) {
	if err := c.requireCredentials(); err != nil {
		return core.ServiceResponse[core.Transaction]{}, err
	}
	params := orderLookupParams(pair.Symbol(), orderRefID, c.recvWindow, c.clock()).signed(c.apiSecret)
	status, body, err := c.send(ctx, http.MethodGet, "/api/v3/order", params, authSigned)
	if err != nil {
		return core.NetworkFailure[core.Transaction](), nil
	}
	return classify(status, body, decodeTransaction)
}

// PlaceBuyOrder spends stack units of the quote asset at the given
// price. The derived quantity stack/price is floored to the symbol's
// LOT_SIZE step; a pair without a known step fails locally, before any
// network call.
func (c *Client) PlaceBuyOrder(ctx context.Context, pair core.Pair, stack, price decimal.Decimal, testOnly bool) (core.ServiceResponse[core.Transaction], error) {
	if err := c.requireCredentials(); err != nil {
		return core.ServiceResponse[core.Transaction]{}, err
	}
	// Dividing by a zero price panics; reject before deriving quantity.
	if stack.Cmp(decimal.Zero) <= 0 || price.Cmp(decimal.Zero) <= 0 {
		return core.PreconditionFailure[core.Transaction]("buy needs stack > 0 and price > 0, got stack=" + stack.String() + " price=" + price.String()), nil
	}
	step, err := c.stepSize(ctx, pair.Symbol())
	if err != nil {
		return core.PreconditionFailure[core.Transaction](err.Error() + ": " + pair.Symbol()), nil
	}
	qty := buyQty(stack, price, step)
	if qty.Cmp(decimal.Zero) <= 0 {
		return core.PreconditionFailure[core.Transaction]("stack " + stack.String() + " at price " + price.String() + " rounds to zero at step " + step.String()), nil
	}
	return c.placeOrder(ctx, orderParams(core.Buy, pair.Symbol(), qty, price, c.recvWindow, c.clock()), testOnly)
}

// PlaceSellOrder sells qty of the base asset. The quantity is sent
// verbatim; the caller owns step alignment for sells. When
// priceOverride is non-nil it replaces price as the sell target.
func (c *Client) PlaceSellOrder(ctx context.Context, pair core.Pair, qty, price decimal.Decimal, priceOverride *decimal.Decimal, testOnly bool) (core.ServiceResponse[core.Transaction], error) {
	if err := c.requireCredentials(); err != nil {
		return core.ServiceResponse[core.Transaction]{}, err
	}
	if priceOverride != nil {
		price = *priceOverride
	}
	return c.placeOrder(ctx, orderParams(core.Sell, pair.Symbol(), qty, price, c.recvWindow, c.clock()), testOnly)
}

func (c *Client) placeOrder(ctx context.Context, params paramList, testOnly bool) (core.ServiceResponse[core.Transaction], error) {
	path := "/api/v3/order"
	if testOnly {
		path += "/test"
	}
	status, body, err := c.send(ctx, http.MethodPost, path, params.signed(c.apiSecret), authSigned)
	if err != nil {
		return core.NetworkFailure[core.Transaction](), nil
	}
	return classify(status, body, decodeTransaction)
}

func (c *Client) requireCredentials() error {
	if c.apiKey == "" || c.apiSecret == "" {
		return errors.New("api_key/api_secret required")
	}
	return nil
}

// send performs one HTTP exchange. The API key travels as a per-request
// header: mutating shared default headers would race between concurrent
// calls. The returned error covers transport faults only; timeouts and
// connection failures land here and classify as network failures.
func (c *Client) send(ctx context.Context, method, path string, params paramList, auth authType) (int, []byte, error) {
	urlStr := c.baseURL + path
	var (
		req *http.Request
		err error
	)
	if method == http.MethodGet {
		if encoded := params.Encode(); encoded != "" {
			urlStr += "?" + encoded
		}
		req, err = http.NewRequestWithContext(ctx, method, urlStr, nil)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, urlStr, strings.NewReader(params.Encode()))
	}
	if err != nil {
		return 0, nil, err
	}
	if method != http.MethodGet {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if auth == authSigned {
		req.Header.Set("X-MBX-APIKEY", c.apiKey)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}
