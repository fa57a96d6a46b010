package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/flip"
)

// TargetsMarkdown renders the resale prices to aim for when bidding up to maxBid.
func TargetsMarkdown(maxBid, refurb flip.Amount, feeRate flip.Rate, targets []flip.Target) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Bid Targets\n\n")
	fmt.Fprintf(&b, "Bidding up to %s with %s of refurbishment and %s fees.\n\n", maxBid, refurb, feeRate)
	if len(targets) == 0 {
		fmt.Fprint(&b, "No break-even price: the bid is unknown or fees take the whole sale.\n")
		return b.String()
	}
	fmt.Fprintln(&b, "| Target | Sale Price |")
	fmt.Fprintln(&b, "|:---|---:|")
	for _, t := range targets {
		label := "Break-even"
		if t.Profit != 0 {
			label = t.Profit.SignedString() + " profit"
		}
		row(&b, label, t.Price)
	}
	return b.String()
}
