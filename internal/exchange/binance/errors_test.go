package binance

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"coinbot/internal/core"
)

func TestExchangeErrorClassifiesKnownCodes(t *testing.T) {
	resp := core.ExchangeFailure[core.Transaction](http.StatusBadRequest, `{"code":-2010,"msg":"Duplicate order sent."}`)
	err := ExchangeError(resp)
	if err == nil {
		t.Fatalf("ExchangeError() = nil, want classified error")
	}
	if !errors.Is(err, core.ErrDuplicateOrder) {
		t.Fatalf("ExchangeError() = %v, want ErrDuplicateOrder kind", err)
	}
	apiErr, ok := AsAPIError(err)
	if !ok || apiErr.Code != -2010 {
		t.Fatalf("AsAPIError() = %+v, %v; want code -2010", apiErr, ok)
	}
	if !IsAPIErrorCode(err, -2010) {
		t.Fatalf("IsAPIErrorCode(-2010) = false")
	}
}

func TestExchangeErrorOrderNotFound(t *testing.T) {
	resp := core.ExchangeFailure[core.Transaction](http.StatusBadRequest, `{"code":-2013,"msg":"Order does not exist."}`)
	if err := ExchangeError(resp); !errors.Is(err, core.ErrOrderNotFound) {
		t.Fatalf("ExchangeError() = %v, want ErrOrderNotFound kind", err)
	}
}

func TestExchangeErrorNonJSONBody(t *testing.T) {
	resp := core.ExchangeFailure[core.Tick](http.StatusBadGateway, "bad gateway")
	err := ExchangeError(resp)
	if err == nil {
		t.Fatalf("ExchangeError() = nil, want error")
	}
	if !strings.Contains(err.Error(), "http error 502") {
		t.Fatalf("ExchangeError() = %v, want http error text", err)
	}
	if _, ok := AsAPIError(err); ok {
		t.Fatalf("non-JSON body should not yield an APIError")
	}
}

func TestExchangeErrorNilForNonExchangeOutcomes(t *testing.T) {
	if err := ExchangeError(core.OK(core.Tick{}, "{}")); err != nil {
		t.Fatalf("ExchangeError(success) = %v, want nil", err)
	}
	if err := ExchangeError(core.NetworkFailure[core.Tick]()); err != nil {
		t.Fatalf("ExchangeError(network) = %v, want nil", err)
	}
	if err := ExchangeError(core.PreconditionFailure[core.Tick]("x")); err != nil {
		t.Fatalf("ExchangeError(precondition) = %v, want nil", err)
	}
}

func TestExchangeErrorRejectionFallback(t *testing.T) {
	resp := core.ExchangeFailure[core.Transaction](http.StatusBadRequest, `{"code":-2010,"msg":"Stop price would trigger immediately."}`)
	if err := ExchangeError(resp); !errors.Is(err, core.ErrOrderRejected) {
		t.Fatalf("ExchangeError() = %v, want ErrOrderRejected kind", err)
	}
}
