package cmd

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
)

func TestReports(t *testing.T) {
	w := newWorkspace(t)
	w.chair(t)

	testCases := []struct {
		name string
		cmd  subcommands.Command
		args []string
		want []string
	}{
		{"items", &itemsCmd{}, nil, []string{"# Items", "chair", "Oak chair"}},
		{"sold items", &itemsCmd{}, []string{"-s", "sold"}, []string{"chair"}},
		{"item", &itemCmd{}, []string{"chair"}, []string{"# Oak chair", "## Valuation", "## Partners", "ann"}},
		{"summary", &summaryCmd{}, nil, []string{"# Portfolio Summary", "**Total**"}},
		{"partners", &partnersCmd{}, nil, []string{"# Partner Earnings", "## ann", "Oak chair"}},
		{"profit", &profitCmd{}, []string{"-d", "2025-04-30"}, []string{"# Profit Analysis", "## Top Performers", "Oak chair", "estate"}},
		{"cashflow", &cashflowCmd{}, []string{"-d", "2025-04-02", "-p", "month"}, []string{"# Cash Flow", "## Movements", "chair"}},
		{"targets", &targetsCmd{}, []string{"-bid", "100", "-refurb", "20", "-fee", "10%"}, []string{"# Bid Targets", "Break-even"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w.out.Reset()
			if got := w.run(t, tc.cmd, tc.args...); got != subcommands.ExitSuccess {
				t.Fatalf("Execute() = %v, want %v", got, subcommands.ExitSuccess)
			}
			for _, want := range tc.want {
				if !strings.Contains(w.out.String(), want) {
					t.Errorf("output does not contain %q:\n%s", want, w.out)
				}
			}
		})
	}
}

func TestReportsUsage(t *testing.T) {
	w := newWorkspace(t)
	testCases := []struct {
		name string
		cmd  subcommands.Command
		args []string
	}{
		{"unknown status", &itemsCmd{}, []string{"-s", "lost"}},
		{"no item", &itemCmd{}, nil},
		{"bad date", &profitCmd{}, []string{"-d", "yesterday"}},
		{"bad period", &cashflowCmd{}, []string{"-p", "decade"}},
		{"no bid", &targetsCmd{}, nil},
		{"fee above 100%", &targetsCmd{}, []string{"-bid", "100", "-fee", "120%"}},
		{"unknown export", &exportCmd{}, []string{"-what", "taxes"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := w.run(t, tc.cmd, tc.args...); got != subcommands.ExitUsageError {
				t.Errorf("Execute() = %v, want %v", got, subcommands.ExitUsageError)
			}
		})
	}
}

func TestItemNotFound(t *testing.T) {
	w := newWorkspace(t)
	w.chair(t)
	if got := w.run(t, &itemCmd{}, "table"); got != subcommands.ExitFailure {
		t.Errorf("Execute() = %v, want %v", got, subcommands.ExitFailure)
	}
}

// readCSV reads all the records of a CSV file.
func readCSV(t *testing.T, file string) [][]string {
	t.Helper()
	f, err := os.Open(file)
	if err != nil {
		t.Fatalf("Failed to open %q: %v", file, err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read CSV %q: %v", file, err)
	}
	return records
}

func TestExport(t *testing.T) {
	w := newWorkspace(t)
	w.chair(t)

	profit := filepath.Join(w.dir, "profit.csv")
	w.mustRun(t, &exportCmd{}, "-o", profit)
	records := readCSV(t, profit)
	if len(records) != 2 {
		t.Fatalf("profit export has %d records, want 2: %v", len(records), records)
	}
	if got := records[0][0]; got != "Sale Date" {
		t.Errorf("header = %q, want %q", got, "Sale Date")
	}
	if got := records[1][3]; got != "chair" {
		t.Errorf("item = %q, want %q", got, "chair")
	}

	cashflow := filepath.Join(w.dir, "cashflow.csv")
	w.mustRun(t, &exportCmd{}, "-what", "cashflow", "-d", "2025-04-02", "-o", cashflow)
	records = readCSV(t, cashflow)
	if len(records) < 3 {
		t.Fatalf("cash flow export has %d records, want a sale and a total: %v", len(records), records)
	}
	if got := records[len(records)-1][5]; got != "Net" {
		t.Errorf("last row = %v, want the Net total", records[len(records)-1])
	}
}

func TestTargetsCurrency(t *testing.T) {
	w := newWorkspace(t)
	t.Setenv("FLIP_LEDGER_CURRENCY", "EUR")

	// without init, the ledger currency of the settings applies
	w.mustRun(t, &targetsCmd{}, "-bid", "100")
	if !strings.Contains(w.out.String(), "€") {
		t.Errorf("targets without init = %s, want amounts in EUR", w.out)
	}

	w.mustRun(t, &initCmd{}, "-c", "USD", "-d", "2025-03-01")
	w.out.Reset()
	w.mustRun(t, &targetsCmd{}, "-bid", "100")
	if !strings.Contains(w.out.String(), "$") || strings.Contains(w.out.String(), "€") {
		t.Errorf("targets with a USD ledger = %s, want amounts in USD", w.out)
	}
}
