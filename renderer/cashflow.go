package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/flip"
)

// CashFlowMarkdown renders the cash movements of a period, newest first.
func CashFlowMarkdown(c *flip.CashFlow) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Cash Flow %s\n\n", c.Range)
	fmt.Fprintln(&b, "| | Amount |")
	fmt.Fprintln(&b, "|:---|---:|")
	row(&b, "Income", c.Income)
	row(&b, "Expenses", c.Expenses)
	row(&b, "**Net**", "**"+c.Net().SignedString()+"**")
	fmt.Fprintln(&b)

	if len(c.Entries) == 0 {
		fmt.Fprint(&b, "No cash movement.\n")
		return b.String()
	}
	fmt.Fprint(&b, "## Movements\n\n")
	fmt.Fprintln(&b, "| Date | Category | Item | Description | Amount |")
	fmt.Fprintln(&b, "|:---|:---|:---|:---|---:|")
	for _, e := range c.Entries {
		desc := e.Description
		if desc == "" {
			desc = e.Title
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", e.Date, e.Category, cell(e.Item), cell(desc), e.Amount.SignedString())
	}
	return b.String()
}
