package core

// Envelope status codes. Zero is success; every failure keeps the raw
// exchange message so callers can inspect the machine-readable body.
const (
	StatusOK           = 0
	StatusNetworkError = -1
	StatusPrecondition = 167
)

// NetworkErrorMessage is the fixed text carried by a network failure
// envelope; no exchange body exists in that case.
const NetworkErrorMessage = "network problem: no response from exchange"

// ServiceResponse is the uniform result envelope for every facade call.
// Data is present only when StatusCode is StatusOK.
type ServiceResponse[T any] struct {
	StatusCode int    `json:"statusCode"`
	Data       *T     `json:"data,omitempty"`
	RawMessage string `json:"rawMessage"`
}

func (r ServiceResponse[T]) Success() bool {
	return r.StatusCode == StatusOK
}

func OK[T any](data T, raw string) ServiceResponse[T] {
	return ServiceResponse[T]{StatusCode: StatusOK, Data: &data, RawMessage: raw}
}

// ExchangeFailure wraps a non-2xx exchange response; status is the HTTP
// status code and raw the verbatim error body.
func ExchangeFailure[T any](status int, raw string) ServiceResponse[T] {
	return ServiceResponse[T]{StatusCode: status, RawMessage: raw}
}

func NetworkFailure[T any]() ServiceResponse[T] {
	return ServiceResponse[T]{StatusCode: StatusNetworkError, RawMessage: NetworkErrorMessage}
}

// PreconditionFailure reports a failure detected locally before any
// network call was attempted.
func PreconditionFailure[T any](msg string) ServiceResponse[T] {
	return ServiceResponse[T]{StatusCode: StatusPrecondition, RawMessage: msg}
}
