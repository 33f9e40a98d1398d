package exchange

import (
	"context"

	"github.com/shopspring/decimal"

	"coinbot/internal/core"
)

// StockAPI is the trading facade for a single exchange with a single
// credential pair. Every call is one attempt; retry policy belongs to
// the caller. A non-nil error means a fault outside the envelope's
// taxonomy (contract breach with the exchange or missing credentials),
// never a classified network or exchange failure.
type StockAPI interface {
	Name() string
	StockInfo() core.StockInfo
	GetTicker(ctx context.Context, pair core.Pair) (core.ServiceResponse[core.Tick], error)
	GetOrder(ctx context.Context, pair core.Pair, orderRefID string) (core.ServiceResponse[core.Transaction], error)
	// PlaceBuyOrder derives quantity as stack/price and floors it to the
	// symbol's LOT_SIZE step before signing.
	PlaceBuyOrder(ctx context.Context, pair core.Pair, stack, price decimal.Decimal, testOnly bool) (core.ServiceResponse[core.Transaction], error)
	// PlaceSellOrder sends qty verbatim; the caller owns step alignment
	// for sells. priceOverride, when non-nil, replaces price.
	PlaceSellOrder(ctx context.Context, pair core.Pair, qty, price decimal.Decimal, priceOverride *decimal.Decimal, testOnly bool) (core.ServiceResponse[core.Transaction], error)
}
