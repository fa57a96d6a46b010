package flip

import (
	"testing"

	"github.com/etnz/flip/date"
	"github.com/shopspring/decimal"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// usd is a helper for test to create a known usd amount from const
func usd(v float64) Amount { return Some(USD(v)) }

// none is the unknown amount.
var none Amount

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func null(v float64) decimal.NullDecimal { return decimal.NewNullDecimal(dec(v)) }

// assertAmount fails unless got is known and equal to want.
func assertAmount(t *testing.T, name string, got Amount, want float64) {
	t.Helper()
	m, ok := got.Get()
	if !ok {
		t.Errorf("%s = unknown, want %v", name, want)
		return
	}
	if !m.value.Equal(dec(want)) {
		t.Errorf("%s = %v, want %v", name, m.value, want)
	}
}

// assertUnknown fails unless got is unknown.
func assertUnknown(t *testing.T, name string, got Amount) {
	t.Helper()
	if got.Known() {
		t.Errorf("%s = %v, want unknown", name, got)
	}
}

// newTestLedger validates and appends txs, failing the test on the first invalid one.
func newTestLedger(t *testing.T, txs ...Transaction) *Ledger {
	t.Helper()
	ledger := NewLedger()
	for _, tx := range txs {
		v, err := ledger.Validate(tx)
		if err != nil {
			t.Fatalf("Validate(%v) error = %v", tx, err)
		}
		ledger.Append(v)
	}
	return ledger
}

var (
	day1 = date.New(2025, 3, 1)
	day2 = date.New(2025, 3, 8)
	day3 = date.New(2025, 4, 2)
	day4 = date.New(2025, 5, 20)
)

func decimalNull() decimal.NullDecimal { return decimal.NullDecimal{} }

// date2Range is the range from day2 to day4.
func date2Range() date.Range { return date.Range{From: day2, To: day4} }
