package core

import "errors"

var (
	// ErrInsufficientBalance indicates the exchange rejected the action due to insufficient funds.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrDuplicateOrder indicates the client order id has already been accepted before.
	ErrDuplicateOrder = errors.New("duplicate order")
	// ErrOrderNotFound indicates the order does not exist on exchange.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderRejected indicates the order was rejected by exchange.
	ErrOrderRejected = errors.New("order rejected")
	// ErrOrderExpired indicates the order has expired on exchange.
	ErrOrderExpired = errors.New("order expired")
	// ErrUnknownSymbol indicates the exchange catalogue has no LOT_SIZE entry for the pair.
	ErrUnknownSymbol = errors.New("unknown symbol")
	// ErrRulesUnavailable indicates the symbol rules never loaded, so order
	// quantities cannot be quantized safely.
	ErrRulesUnavailable = errors.New("exchange rules unavailable")
)
