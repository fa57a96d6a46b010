package flip

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value that may be unknown.
//
// The zero value is unknown. An unknown amount is never treated as zero by
// the calculations: a profit computed from an unknown input is itself unknown.
type Amount struct {
	m     Money
	known bool
}

// Some returns the known amount m.
func Some(m Money) Amount { return Amount{m: m, known: true} }

// A is a shortcut for Some(M(value, currency)).
func A[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Amount {
	return Some(M(value, currency))
}

// AmountOf converts a nullable decimal, as stored in the ledger, into an Amount.
func AmountOf(d decimal.NullDecimal, currency string) Amount {
	if !d.Valid {
		return Amount{}
	}
	return Some(M(d.Decimal, currency))
}

// Get returns the money and whether it is known.
func (a Amount) Get() (Money, bool) { return a.m, a.known }

// Known reports whether the amount is known.
func (a Amount) Known() bool { return a.known }

// OrZero returns the money, or a zero Money in the same currency when unknown.
func (a Amount) OrZero() Money { return a.m }

// Null returns the amount as a nullable decimal.
func (a Amount) Null() decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: a.m.value, Valid: a.known}
}

func (a Amount) Equal(b Amount) bool {
	if a.known != b.known {
		return false
	}
	return !a.known || a.m.Equal(b.m)
}

// Add returns a+b, unknown if either is unknown.
func (a Amount) Add(b Amount) Amount {
	if !a.known || !b.known {
		return Amount{}
	}
	return Some(a.m.Add(b.m))
}

// Sub returns a-b, unknown if either is unknown.
func (a Amount) Sub(b Amount) Amount {
	if !a.known || !b.known {
		return Amount{}
	}
	return Some(a.m.Sub(b.m))
}

// String returns "n/a" for an unknown amount.
func (a Amount) String() string {
	if !a.known {
		return "n/a"
	}
	return a.m.String()
}

// SignedString is like Money.SignedString, and "n/a" for an unknown amount.
func (a Amount) SignedString() string {
	if !a.known {
		return "n/a"
	}
	return a.m.SignedString()
}

// MarshalJSON writes null for an unknown amount.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.known {
		return []byte("null"), nil
	}
	return json.Marshal(a.m)
}
