package binance

import (
	"fmt"

	"coinbot/internal/core"
)

// classify maps an HTTP outcome onto the service envelope. A non-2xx
// status becomes an exchange failure carrying the verbatim body. A 2xx
// body that fails to decode is returned as a plain error: that is a
// contract breach with the exchange, not a classifiable result, and it
// must reach the developer instead of being swallowed into the envelope.
func classify[T any](status int, body []byte, decode func([]byte) (T, error)) (core.ServiceResponse[T], error) {
	if status/100 != 2 {
		return core.ExchangeFailure[T](status, string(body)), nil
	}
	data, err := decode(body)
	if err != nil {
		return core.ServiceResponse[T]{}, fmt.Errorf("malformed 2xx exchange response: %w", err)
	}
	return core.OK(data, string(body)), nil
}
