package flip

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestDecodeLedger(t *testing.T) {
	jsonl := `
{"command":"init","date":"2025-03-01","currency":"EUR"}
{"command":"watch","date":"2025-03-01","item":"chair","title":"Oak chair","maxBid":80}
{"command":"win","date":"2025-03-01","item":"chair","price":95.5}
{"command":"sell","date":"2025-03-20","item":"chair","price":180,"fees":18}
{"command":"expense","date":"2025-3-2","item":"chair","amount":12,"category":"transport"}
`
	ledger, err := DecodeLedger(strings.NewReader(jsonl))
	if err != nil {
		t.Fatalf("DecodeLedger() error = %v", err)
	}
	wantTypes := []reflect.Type{
		reflect.TypeOf(Init{}),
		reflect.TypeOf(WatchTx{}),
		reflect.TypeOf(Win{}),
		reflect.TypeOf(ExpenseTx{}), // sorted by date
		reflect.TypeOf(Sell{}),
	}
	if ledger.Len() != len(wantTypes) {
		t.Fatalf("DecodeLedger() decoded %d transactions, want %d", ledger.Len(), len(wantTypes))
	}
	for i, tx := range ledger.Transactions() {
		if got := reflect.TypeOf(tx); got != wantTypes[i] {
			t.Errorf("transaction %d is %v, want %v", i, got, wantTypes[i])
		}
	}

	chair, err := ledger.Item("chair")
	if err != nil {
		t.Fatalf("Item() error = %v", err)
	}
	if m, _ := chair.SalePrice.Get(); !m.Equal(M(180, "EUR")) {
		t.Errorf("SalePrice = %v, want €180", m)
	}
	assertAmount(t, "PlannedMaxBid", chair.PlannedMaxBid, 80)
	assertUnknown(t, "TargetPrice", chair.TargetPrice)
	assertAmount(t, "NetProfit()", chair.NetProfit(), 180-95.5-12-18)
}

func TestDecodeLedgerErrors(t *testing.T) {
	for _, line := range []string{
		`{"command":"buy","date":"2025-03-01"}`,
		`{"command":"win","date":"yesterday","item":"x","price":1}`,
		`not json`,
	} {
		if _, err := DecodeLedger(strings.NewReader(line)); err == nil {
			t.Errorf("DecodeLedger(%s) want error", line)
		}
	}
}

func TestEncodeLedger(t *testing.T) {
	ledger := NewLedger()
	// deliberately unsorted, the two day2 transactions must keep their order.
	ledger.Append(
		NewSell(day3, "", "chair", dec(200), dec(15), dec(0)),
		NewRefurb(day2, "glue", "chair", dec(20)),
		NewList(day2, "", "chair", "ebay", null(250)),
		NewWatch(day1, "", "chair", "Oak chair", "", "", decimalNull(), decimalNull()),
	)
	var buf bytes.Buffer
	if err := EncodeLedger(&buf, ledger); err != nil {
		t.Fatalf("EncodeLedger() error = %v", err)
	}
	want := `{"command":"watch","date":"2025-03-01","item":"chair","title":"Oak chair"}
{"command":"refurb","date":"2025-03-08","memo":"glue","item":"chair","amount":20}
{"command":"list","date":"2025-03-08","item":"chair","channel":"ebay","target":250}
{"command":"sell","date":"2025-04-02","item":"chair","price":200,"fees":15}
`
	if got := buf.String(); got != want {
		t.Errorf("EncodeLedger() =\n%s\nwant\n%s", got, want)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	ledger := resaleLedger(t)
	var first bytes.Buffer
	if err := EncodeLedger(&first, ledger); err != nil {
		t.Fatalf("EncodeLedger() error = %v", err)
	}
	decoded, err := DecodeLedger(bytes.NewReader(first.Bytes()))
	if err != nil {
		t.Fatalf("DecodeLedger() error = %v", err)
	}
	if err := decoded.Check(); err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	var second bytes.Buffer
	if err := EncodeLedger(&second, decoded); err != nil {
		t.Fatalf("EncodeLedger() error = %v", err)
	}
	if first.String() != second.String() {
		t.Errorf("round trip changed the ledger:\n%s\nvs\n%s", first.String(), second.String())
	}
}
