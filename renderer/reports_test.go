package renderer

import (
	"testing"
	"time"

	"github.com/etnz/flip"
	"github.com/etnz/flip/date"
	"github.com/shopspring/decimal"
)

var (
	day1 = date.New(2025, time.March, 1)
	day2 = date.New(2025, time.March, 8)
	day3 = date.New(2025, time.May, 20)
)

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// chairLedger holds one sold chair shared with ann.
func chairLedger(t *testing.T) *flip.Ledger {
	t.Helper()
	ledger := flip.NewLedger()
	for _, tx := range []flip.Transaction{
		flip.NewInit(day1, "", "USD"),
		flip.NewAuction(day1, "", "estate", "Estate sale", "", ""),
		flip.NewPartner(day1, "", "ann", "Ann", ""),
		flip.NewWatch(day1, "", "chair", "Oak chair", "estate", "12", decimal.NullDecimal{}, decimal.NullDecimal{}),
		flip.NewWin(day1, "", "chair", dec(100), 0),
		flip.NewRefurb(day2, "varnish", "chair", dec(30)),
		flip.NewPartnership(day2, "", "chair", "ann", 50),
		flip.NewSell(day3, "", "chair", dec(200), dec(15), dec(5)),
	} {
		v, err := ledger.Validate(tx)
		if err != nil {
			t.Fatalf("Validate(%v) error = %v", tx, err)
		}
		ledger.Append(v)
	}
	return ledger
}

func TestPartnersMarkdown(t *testing.T) {
	report, err := flip.NewPartnerReport(chairLedger(t))
	if err != nil {
		t.Fatalf("NewPartnerReport() error = %v", err)
	}
	doc := parse(t, PartnersMarkdown(report))
	if len(doc.tables) == 0 || len(doc.tables[0]) != 2 {
		t.Fatalf("PartnersMarkdown() tables = %v, want one partner row", doc.tables)
	}
	want := []string{"ann", "1", "1", "+$25.00", "$0.00"}
	got := doc.tables[0][1]
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("PartnersMarkdown() ann row = %v, want %v", got, want)
			break
		}
	}
	if !doc.hasHeading("ann") {
		t.Errorf("PartnersMarkdown() headings = %v, missing recent sales of ann", doc.headings)
	}
}

func TestProfitMarkdown(t *testing.T) {
	items, err := chairLedger(t).Items()
	if err != nil {
		t.Fatalf("Items() error = %v", err)
	}
	doc := parse(t, ProfitMarkdown(flip.NewProfitAnalysis(items, day3)))
	checkRows(t, doc, map[string]string{
		"Items sold": "1",
		"Revenue":    "$200.00",
		"Net profit": "+$50.00",
		"chair":      "Oak chair",
		"estate":     "1",
	})
	if !doc.hasHeading("Monthly Trend") {
		t.Errorf("ProfitMarkdown() headings = %v, missing monthly trend", doc.headings)
	}

	empty := parse(t, ProfitMarkdown(flip.NewProfitAnalysis(nil, day3)))
	if len(empty.tables) != 0 {
		t.Errorf("ProfitMarkdown() without sales rendered %d tables", len(empty.tables))
	}
}

func TestCashFlowMarkdown(t *testing.T) {
	c, err := flip.NewCashFlow(chairLedger(t), date.Range{From: day3, To: day3})
	if err != nil {
		t.Fatalf("NewCashFlow() error = %v", err)
	}
	doc := parse(t, CashFlowMarkdown(c))
	checkRows(t, doc, map[string]string{
		"Income":   "$200.00",
		"Expenses": "$20.00",
		"Net":      "+$180.00",
	})
	if len(doc.tables) != 2 || len(doc.tables[1]) != 4 {
		t.Errorf("CashFlowMarkdown() tables = %v, want 3 movements", doc.tables)
	}
}
