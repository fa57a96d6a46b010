package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/flip"
)

// SummaryMarkdown renders the portfolio summary.
func SummaryMarkdown(p flip.PortfolioSummary) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Portfolio Summary\n\n")
	fmt.Fprintf(&b, "*As of %s*\n\n", Now().Format("2006-01-02 15:04:05"))

	fmt.Fprint(&b, "## Items\n\n")
	fmt.Fprintln(&b, "| Status | Count |")
	fmt.Fprintln(&b, "|:---|---:|")
	for _, s := range flip.Statuses {
		row(&b, s.String(), p.Count(s))
	}
	fmt.Fprintf(&b, "| **Total** | **%d** |\n\n", p.Items)

	fmt.Fprint(&b, "## Profitability\n\n")
	fmt.Fprintln(&b, "| | Value |")
	fmt.Fprintln(&b, "|:---|---:|")
	row(&b, "Total invested", p.TotalInvested)
	row(&b, "Total sold value", p.TotalSoldValue)
	row(&b, "Fees and shipping", p.TotalFees)
	row(&b, "Gross profit", p.TotalGrossProfit.SignedString())
	row(&b, "Net profit", p.TotalNetProfit.SignedString())
	row(&b, "Average ROI", p.AverageROI.SignedString())
	row(&b, "Overall ROI", p.OverallROI.SignedString())
	row(&b, "Average profit per sale", p.AverageProfitPerSale.SignedString())

	return b.String()
}
