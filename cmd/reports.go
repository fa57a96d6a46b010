package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/flip"
	"github.com/etnz/flip/date"
	"github.com/etnz/flip/renderer"
	"github.com/google/subcommands"
)

// parseDay parses a report date, today when empty.
func parseDay(s string) (date.Date, error) {
	if s == "" {
		return date.Today(), nil
	}
	return date.Parse(s)
}

// --- Items Command ---

type itemsCmd struct {
	status string
}

func (*itemsCmd) Name() string     { return "items" }
func (*itemsCmd) Synopsis() string { return "list the items and their profit" }
func (*itemsCmd) Usage() string {
	return `items [-s <status>]

  Lists the items of the ledger, optionally only those with the given status
  (watch, won, listed or sold).
`
}

func (c *itemsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.status, "s", "", "Only list items with this status")
}

func (c *itemsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var filter func(*flip.Item) bool
	if c.status != "" {
		s, err := flip.ParseStatus(c.status)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		filter = func(it *flip.Item) bool { return it.Status == s }
	}
	e, ok := setup()
	if !ok {
		return subcommands.ExitFailure
	}
	_, items, err := e.items()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if filter != nil {
		kept := items[:0]
		for _, it := range items {
			if filter(it) {
				kept = append(kept, it)
			}
		}
		items = kept
	}
	printMarkdown(renderer.ItemsMarkdown(items))
	return subcommands.ExitSuccess
}

// --- Item Command ---

type itemCmd struct{}

func (*itemCmd) Name() string     { return "item" }
func (*itemCmd) Synopsis() string { return "display the valuation of an item" }
func (*itemCmd) Usage() string {
	return `item <id>

  Displays an item: its prices, its valuation (cost basis, profit, ROI,
  break-even price), its expenses, piece sales and partners.
`
}

func (*itemCmd) SetFlags(f *flag.FlagSet) {}

func (c *itemCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one item id is required")
		f.Usage()
		return subcommands.ExitUsageError
	}
	e, ok := setup()
	if !ok {
		return subcommands.ExitFailure
	}
	ledger, err := e.decodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	it, err := ledger.Item(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.ItemMarkdown(it, e.feeRate))
	return subcommands.ExitSuccess
}

// --- Summary Command ---

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the portfolio summary" }
func (*summaryCmd) Usage() string {
	return `summary

  Displays the number of items per status, the total investment, revenue,
  profit and the overall ROI of the portfolio.
`
}

func (*summaryCmd) SetFlags(f *flag.FlagSet) {}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, ok := setup()
	if !ok {
		return subcommands.ExitFailure
	}
	_, items, err := e.items()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.SummaryMarkdown(flip.Summarize(items)))
	return subcommands.ExitSuccess
}

// --- Partners Command ---

type partnersCmd struct{}

func (*partnersCmd) Name() string     { return "partners" }
func (*partnersCmd) Synopsis() string { return "display the partner earnings" }
func (*partnersCmd) Usage() string {
	return `partners

  Displays for each partner the items shared, the earnings on sold items and
  the pending earnings estimated on the target price of unsold ones.
`
}

func (*partnersCmd) SetFlags(f *flag.FlagSet) {}

func (c *partnersCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, ok := setup()
	if !ok {
		return subcommands.ExitFailure
	}
	ledger, err := e.decodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	report, err := flip.NewPartnerReport(ledger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.PartnersMarkdown(report))
	return subcommands.ExitSuccess
}

// --- Profit Command ---

type profitCmd struct {
	date string
}

func (*profitCmd) Name() string     { return "profit" }
func (*profitCmd) Synopsis() string { return "analyse the profit of sold items" }
func (*profitCmd) Usage() string {
	return `profit [-d <date>]

  Analyses the sold items: totals, top performers, profit per auction and the
  monthly trend of the twelve months ending on the date.
`
}

func (c *profitCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "End date of the monthly trend, today by default")
}

func (c *profitCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	e, ok := setup()
	if !ok {
		return subcommands.ExitFailure
	}
	_, items, err := e.items()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.ProfitMarkdown(flip.NewProfitAnalysis(items, on)))
	return subcommands.ExitSuccess
}

// --- Cash Flow Command ---

type cashflowCmd struct {
	date   string
	period string
}

func (*cashflowCmd) Name() string     { return "cashflow" }
func (*cashflowCmd) Synopsis() string { return "display the money in and out over a period" }
func (*cashflowCmd) Usage() string {
	return `cashflow [-d <date>] [-p <period>]

  Displays the purchases, costs and sales of the period (day, week, month,
  quarter or year) containing the date.
`
}

func (c *cashflowCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "A date in the period, today by default")
	f.StringVar(&c.period, "p", "month", "Period: day, week, month, quarter or year")
}

// cashFlow computes the cash flow of the period containing date.
func cashFlow(e *env, day, period string) (*flip.CashFlow, subcommands.ExitStatus) {
	on, err := parseDay(day)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return nil, subcommands.ExitUsageError
	}
	p, err := date.ParsePeriod(period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing period: %v\n", err)
		return nil, subcommands.ExitUsageError
	}
	ledger, err := e.decodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return nil, subcommands.ExitFailure
	}
	c, err := flip.NewCashFlow(ledger, date.NewRange(on, p))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	return c, subcommands.ExitSuccess
}

func (c *cashflowCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, ok := setup()
	if !ok {
		return subcommands.ExitFailure
	}
	cf, status := cashFlow(e, c.date, c.period)
	if status != subcommands.ExitSuccess {
		return status
	}
	printMarkdown(renderer.CashFlowMarkdown(cf))
	return subcommands.ExitSuccess
}

// --- Targets Command ---

type targetsCmd struct {
	bid, refurb decimalValue
	fee         string
}

func (*targetsCmd) Name() string     { return "targets" }
func (*targetsCmd) Synopsis() string { return "compute the resale targets of a planned bid" }
func (*targetsCmd) Usage() string {
	return `targets -bid <amount> [-refurb <amount>] [-fee <rate>]

  Computes the sale prices needed to break even and to make 20%, 50% and 100%
  profit on a planned bid, before going to the auction.
`
}

func (c *targetsCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.bid, "bid", "Planned maximum bid")
	f.Var(&c.refurb, "refurb", "Estimated refurbishment cost")
	f.StringVar(&c.fee, "fee", "", "Marketplace fee rate (e.g. 13%), the settings' by default")
}

func (c *targetsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.bid.set {
		return usage(f, "-bid")
	}
	e, ok := setup()
	if !ok {
		return subcommands.ExitFailure
	}
	rate := e.feeRate
	if c.fee != "" {
		r, err := flip.ParseRate(c.fee)
		if err == nil {
			err = r.Validate()
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		rate = r
	}
	cur := e.cfg.Ledger.Currency
	if ledger, err := e.decodeLedger(); err == nil && initialized(ledger) {
		cur = ledger.Currency()
	}
	maxBid := flip.A(c.bid.d, cur)
	refurb := flip.A(c.refurb.d, cur)
	targets := flip.BidTargets(maxBid, refurb, rate)
	printMarkdown(renderer.TargetsMarkdown(maxBid, refurb, rate, targets))
	return subcommands.ExitSuccess
}

// initialized reports whether the ledger sets its currency with an init
// transaction. Ledgers without one default to flip.DefaultCurrency.
func initialized(ledger *flip.Ledger) bool {
	for range ledger.Transactions(func(tx flip.Transaction) bool {
		_, ok := tx.(flip.Init)
		return ok
	}) {
		return true
	}
	return false
}

// --- Export Command ---

type exportCmd struct {
	output string
	what   string
	date   string
	period string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export sold items or the cash flow as CSV" }
func (*exportCmd) Usage() string {
	return `export [-what profit|cashflow] [-o <file>] [-d <date>] [-p <period>]

  Exports as CSV either the profit of every sold item, or the cash flow of the
  period containing the date. Writes to stdout unless -o is given.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file, stdout by default")
	f.StringVar(&c.what, "what", "profit", "What to export: profit or cashflow")
	f.StringVar(&c.date, "d", "", "A date in the cash flow period, today by default")
	f.StringVar(&c.period, "p", "month", "Cash flow period: day, week, month, quarter or year")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.what != "profit" && c.what != "cashflow" {
		fmt.Fprintf(os.Stderr, "Error: cannot export %q\n", c.what)
		return subcommands.ExitUsageError
	}
	e, ok := setup()
	if !ok {
		return subcommands.ExitFailure
	}

	var write func(io.Writer) error
	switch c.what {
	case "profit":
		_, items, err := e.items()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		write = func(w io.Writer) error { return flip.WriteProfitCSV(w, items) }
	case "cashflow":
		cf, status := cashFlow(e, c.date, c.period)
		if status != subcommands.ExitSuccess {
			return status
		}
		write = func(w io.Writer) error { return flip.WriteCashFlowCSV(w, cf) }
	}

	w := stdout
	if c.output != "" {
		out, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer out.Close()
		w = out
	}
	if err := write(w); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
