package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/flip"
)

// ItemsMarkdown renders a one line per item table.
func ItemsMarkdown(items []*flip.Item) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Items\n\n")
	if len(items) == 0 {
		fmt.Fprint(&b, "No item.\n")
		return b.String()
	}
	fmt.Fprintln(&b, "| Item | Title | Status | Cost | Revenue | Net Profit | ROI |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|---:|")
	for _, it := range items {
		r, ok := it.ROI()
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			it.ID, cell(it.Title), it.Status, it.CostBasis(), it.Revenue(), it.NetProfit().SignedString(), roi(r, ok))
	}
	return b.String()
}
