package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/flip"
)

// ProfitMarkdown renders the profit analysis of sold items.
func ProfitMarkdown(a *flip.ProfitAnalysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Profit Analysis on %s\n\n", a.On)
	if a.Sold == 0 {
		fmt.Fprint(&b, "No item sold yet.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| | Value |")
	fmt.Fprintln(&b, "|:---|---:|")
	row(&b, "Items sold", a.Sold)
	row(&b, "Revenue", a.Revenue)
	row(&b, "Investment", a.Investment)
	row(&b, "Net profit", a.NetProfit.SignedString())
	row(&b, "Average ROI", a.AverageROI.SignedString())
	fmt.Fprintln(&b)

	fmt.Fprint(&b, "## Top Performers\n\n")
	fmt.Fprintln(&b, "| Item | Title | Sold | Net Profit | ROI |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|")
	for _, it := range a.Top {
		r, ok := it.ROI()
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", it.ID, cell(it.Title), it.SaleDate, it.NetProfit().SignedString(), roi(r, ok))
	}
	fmt.Fprintln(&b)

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "## By Auction\n\n")
		fmt.Fprintln(w, "| Auction | Sold | Revenue | Net Profit |")
		fmt.Fprintln(w, "|:---|---:|---:|---:|")
		for _, ap := range a.ByAuction {
			fmt.Fprintf(w, "| %s | %d | %s | %s |\n", cell(ap.Auction), ap.Sold, ap.Revenue, ap.NetProfit.SignedString())
		}
		fmt.Fprintln(w)
		return len(a.ByAuction) > 0
	})

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "## Monthly Trend\n\n")
		fmt.Fprintln(w, "| Month | Sold | Revenue | Net Profit |")
		fmt.Fprintln(w, "|:---|---:|---:|---:|")
		shown := false
		for _, m := range a.Monthly {
			if m.Sold == 0 {
				continue
			}
			shown = true
			fmt.Fprintf(w, "| %s | %d | %s | %s |\n", m.Month.Identifier(), m.Sold, m.Revenue, m.NetProfit.SignedString())
		}
		fmt.Fprintln(w)
		return shown
	})

	return b.String()
}
