package core

import (
	"github.com/shopspring/decimal"
)

// Rules holds the exchange-enforced constraints for one symbol. StepSize
// comes from the LOT_SIZE filter and is always > 0 when present.
type Rules struct {
	StepSize decimal.Decimal
}

// QuantizeQty floors qty to an exact multiple of step. Truncation toward
// zero is deliberate: rounding up would commit more base asset than the
// caller asked for.
func QuantizeQty(qty, step decimal.Decimal) decimal.Decimal {
	if step.Cmp(decimal.Zero) <= 0 {
		return qty
	}
	return qty.Div(step).Floor().Mul(step)
}

// Format8 renders a decimal with exactly eight fraction digits and a dot
// separator. The exchange recomputes signatures over the literal bytes
// it receives, so formatting must be byte-stable.
func Format8(d decimal.Decimal) string {
	return d.StringFixed(8)
}
