package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/flip"
)

// PartnersMarkdown renders the partners' earnings.
func PartnersMarkdown(r *flip.PartnerReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Partner Earnings on %s\n\n", r.On)
	if len(r.Partners) == 0 {
		fmt.Fprint(&b, "No partner declared.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Partner | Items | Sold | Earnings | Pending |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|")
	for _, p := range r.Partners {
		fmt.Fprintf(&b, "| %s | %d | %d | %s | %s |\n", p.Partner, p.Items, p.SoldItems, p.Earnings.SignedString(), p.Pending)
	}
	fmt.Fprintln(&b)

	for _, p := range r.Partners {
		ConditionalBlock(&b, func(w io.Writer) bool {
			fmt.Fprintf(w, "## %s\n\n", p.Partner)
			fmt.Fprintln(w, "| Sold | Item | Share | Amount |")
			fmt.Fprintln(w, "|:---|:---|---:|---:|")
			for _, s := range p.Recent {
				fmt.Fprintf(w, "| %s | %s | %s | %s |\n", s.Item.SaleDate, cell(s.Item.Title), s.Pct, s.Amount.SignedString())
			}
			fmt.Fprintln(w)
			for _, id := range p.Overallocated {
				fmt.Fprintf(w, "> Item `%s` is allocated over 100%%.\n\n", id)
			}
			return len(p.Recent) > 0 || len(p.Overallocated) > 0
		})
	}

	return b.String()
}
