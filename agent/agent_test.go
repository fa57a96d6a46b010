package agent

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/etnz/flip"
	"github.com/etnz/flip/date"
	"github.com/shopspring/decimal"
	"google.golang.org/genai"
)

func testLedger(t *testing.T) *flip.Ledger {
	t.Helper()
	day := date.New(2025, time.March, 1)
	ledger := flip.NewLedger()
	for _, tx := range []flip.Transaction{
		flip.NewInit(day, "", "USD"),
		flip.NewPartner(day, "", "ann", "Ann", ""),
		flip.NewWatch(day, "", "chair", "Oak chair", "", "", decimal.NullDecimal{}, decimal.NullDecimal{}),
		flip.NewWin(day, "", "chair", decimal.NewFromInt(100), 0),
		flip.NewPartnership(day, "", "chair", "ann", 50),
		flip.NewSell(day.Add(10), "", "chair", decimal.NewFromInt(200), decimal.NewFromInt(20), decimal.Zero),
	} {
		v, err := ledger.Validate(tx)
		if err != nil {
			t.Fatalf("Validate(%v) error = %v", tx, err)
		}
		ledger.Append(v)
	}
	return ledger
}

func call(t *testing.T, lib Library, name string, args map[string]any) (string, string) {
	t.Helper()
	resp := lib(context.Background(), &genai.FunctionCall{ID: "1", Name: name, Args: args})
	if resp.ID != "1" || resp.Name != name {
		t.Errorf("%s response is %s/%s", name, resp.ID, resp.Name)
	}
	out, _ := resp.Response["output"].(string)
	msg, _ := resp.Response["error"].(string)
	return out, msg
}

func TestBookkeeping(t *testing.T) {
	lib := NewLibrary(Bookkeeping(testLedger(t), flip.DefaultFeeRate))

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{name: "Items", want: "Oak chair"},
		{name: "Item", args: map[string]any{"id": "chair"}, want: "+$80.00"},
		{name: "Summary", want: "Portfolio Summary"},
		{name: "Partners", want: "+$40.00"},
		{name: "Profit", args: map[string]any{"date": "2025-03-31"}, want: "Oak chair"},
		{name: "CashFlow", args: map[string]any{"date": "2025-03-15", "period": "month"}, want: "+$80.00"},
		{name: "BidTargets", args: map[string]any{"max_bid": 90.0}, want: "$100.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, msg := call(t, lib, tt.name, tt.args)
			if msg != "" {
				t.Fatalf("%s() error = %s", tt.name, msg)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("%s() = %q, want it to contain %q", tt.name, out, tt.want)
			}
		})
	}
}

func TestBookkeepingErrors(t *testing.T) {
	lib := NewLibrary(Bookkeeping(testLedger(t), flip.DefaultFeeRate))

	tests := []struct {
		name string
		args map[string]any
	}{
		{name: "Item"},
		{name: "Item", args: map[string]any{"id": 3}},
		{name: "Item", args: map[string]any{"id": "vase"}},
		{name: "Profit", args: map[string]any{"date": "soon"}},
		{name: "CashFlow", args: map[string]any{"period": "decade"}},
		{name: "BidTargets", args: map[string]any{"max_bid": "a lot"}},
		{name: "Forecast"},
	}
	for _, tt := range tests {
		if _, msg := call(t, lib, tt.name, tt.args); msg == "" {
			t.Errorf("%s(%v) want an error", tt.name, tt.args)
		}
	}
}

func TestNewBookkeeper(t *testing.T) {
	e, err := NewBookkeeper("model", testLedger(t), flip.DefaultFeeRate)
	if err != nil {
		t.Fatalf("NewBookkeeper() error = %v", err)
	}
	decls := e.Config.Tools[0].FunctionDeclarations
	if len(decls) != 7 {
		t.Errorf("NewBookkeeper() declares %d functions, want 7", len(decls))
	}
	if _, err := e.Ask(context.Background(), &genai.Part{Text: "hi"}); err == nil {
		t.Errorf("Ask() before Start() want error")
	}

	a := New(nil, strings.NewReader(""), "model", e, NewMarketAnalyst("model"))
	if got := len(a.Facilitator.Config.Tools[0].FunctionDeclarations); got != 2 {
		t.Errorf("facilitator knows %d experts, want 2", got)
	}
}
