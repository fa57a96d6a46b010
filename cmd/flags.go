package cmd

import (
	"flag"
	"fmt"

	"github.com/etnz/flip/date"
	"github.com/shopspring/decimal"
)

// decimalValue is an optional decimal flag.
type decimalValue struct {
	d   decimal.Decimal
	set bool
}

func (v *decimalValue) String() string {
	if v == nil || !v.set {
		return ""
	}
	return v.d.String()
}

func (v *decimalValue) Set(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid amount %q", s)
	}
	v.d, v.set = d, true
	return nil
}

func (v *decimalValue) null() decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: v.d, Valid: v.set}
}

// txFlags are the flags common to every transaction.
type txFlags struct {
	date string
	memo string
}

func (t *txFlags) setFlags(f *flag.FlagSet) {
	f.StringVar(&t.date, "d", "", "Transaction date, today by default. See 'topic dates' for supported formats.")
	f.StringVar(&t.memo, "m", "", "An optional note for the transaction")
}

// day returns the transaction date, zero for today.
func (t *txFlags) day() (date.Date, error) {
	if t.date == "" {
		return date.Date{}, nil
	}
	return date.Parse(t.date)
}
