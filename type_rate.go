package flip

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Rate is a fraction, typically a marketplace fee rate: 0.10 is a 10% fee.
type Rate struct {
	value decimal.Decimal
}

// DefaultFeeRate is the marketplace fee rate assumed when none is configured.
var DefaultFeeRate = R(0.10)

// PendingFeeRate is the fee estimate applied to target prices of unsold items.
var PendingFeeRate = R(0.15)

func R[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Rate {
	return Rate{value: newDecimal(value)}
}

// ParseRate reads "0.1" or "10%".
func ParseRate(s string) (Rate, error) {
	s = strings.TrimSpace(s)
	pct := strings.HasSuffix(s, "%")
	d, err := decimal.NewFromString(strings.TrimSuffix(s, "%"))
	if err != nil {
		return Rate{}, fmt.Errorf("%w: invalid rate %q: %v", ErrInvalid, s, err)
	}
	if pct {
		d = d.Div(hundred)
	}
	return Rate{value: d}, nil
}

// Validate rejects rates outside [0, 1). A fee rate of 100% or more leaves
// nothing to the seller and has no break-even price.
func (r Rate) Validate() error {
	if r.value.IsNegative() || r.value.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: fee rate %s must be in [0%%, 100%%)", ErrInvalid, r)
	}
	return nil
}

func (r Rate) Decimal() decimal.Decimal { return r.value }
func (r Rate) Equal(s Rate) bool        { return r.value.Equal(s.value) }
func (r Rate) Percent() Percent         { return Percent(r.value.Mul(hundred).InexactFloat64()) }
func (r Rate) String() string           { return r.value.Mul(hundred).String() + "%" }

// Set implements flag.Value.
func (r *Rate) Set(s string) error {
	v, err := ParseRate(s)
	if err != nil {
		return err
	}
	*r = v
	return nil
}
