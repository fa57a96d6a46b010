package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/flip"
)

// ItemMarkdown renders the detail of an item, its valuation at feeRate,
// its expenses, piece sales and partner shares.
func ItemMarkdown(it *flip.Item, feeRate flip.Rate) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", it.Title)
	fmt.Fprintf(&b, "Item `%s` is **%s**", it.ID, it.Status)
	if it.Auction != "" {
		fmt.Fprintf(&b, ", bought at auction %s", it.Auction)
		if it.LotNumber != "" {
			fmt.Fprintf(&b, " (lot %s)", it.LotNumber)
		}
	}
	fmt.Fprint(&b, ".\n\n")

	fmt.Fprint(&b, "## Prices\n\n")
	fmt.Fprintln(&b, "| | Amount |")
	fmt.Fprintln(&b, "|:---|---:|")
	row(&b, "Planned max bid", it.PlannedMaxBid)
	row(&b, "Target price", it.TargetPrice)
	if it.SuggestedPrice.Known() {
		row(&b, "Suggested price", it.SuggestedPrice)
	}
	row(&b, "Purchase price", it.PurchasePrice)
	row(&b, "Refurbishment", it.RefurbCost)
	if it.MultiPiece {
		row(&b, "Pieces", fmt.Sprintf("%d sold of %d", it.PiecesSold(), it.PiecesTotal))
		row(&b, "Cost per piece", it.CostPerPiece())
	} else {
		row(&b, "Sale price", it.SalePrice)
	}
	row(&b, "Fees", it.SaleFees)
	row(&b, "Shipping", it.ShippingCost)
	fmt.Fprintln(&b)

	v := it.Valuation(feeRate)
	fmt.Fprint(&b, "## Valuation\n\n")
	fmt.Fprintln(&b, "| | Value |")
	fmt.Fprintln(&b, "|:---|---:|")
	row(&b, "Cost basis", v.CostBasis)
	row(&b, "Revenue", v.Revenue)
	row(&b, "Gross profit", v.GrossProfit.SignedString())
	row(&b, "Net profit", v.NetProfit.SignedString())
	row(&b, "ROI", roi(v.ROI, v.HasROI))
	row(&b, "Margin", roi(v.Margin, v.HasMargin))
	row(&b, fmt.Sprintf("Break-even at %s fees", feeRate), v.BreakEven)
	fmt.Fprintln(&b)

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "## Expenses\n\n")
		fmt.Fprintln(w, "| Date | Category | Description | Amount |")
		fmt.Fprintln(w, "|:---|:---|:---|---:|")
		for _, e := range it.Expenses {
			fmt.Fprintf(w, "| %s | %s | %s | %s |\n", e.Date, e.Category, cell(e.Description), e.Amount)
		}
		fmt.Fprintf(w, "| **Total** | | | **%s** |\n\n", it.TotalExpenses())
		return len(it.Expenses) > 0
	})

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "## Piece Sales\n\n")
		fmt.Fprintln(w, "| Date | Pieces | Price | Total | Fees | Shipping | Channel |")
		fmt.Fprintln(w, "|:---|---:|---:|---:|---:|---:|:---|")
		for _, s := range it.PieceSales {
			fmt.Fprintf(w, "| %s | %d | %s | %s | %s | %s | %s |\n",
				s.Date, s.Pieces, s.Price, s.Total(), s.Fees, s.Shipping, cell(s.Channel))
		}
		fmt.Fprintln(w)
		return len(it.PieceSales) > 0
	})

	ConditionalBlock(&b, func(w io.Writer) bool {
		alloc, err := flip.Allocate(it)
		if err != nil {
			fmt.Fprintf(w, "## Partners\n\n%v\n\n", err)
			return true
		}
		fmt.Fprint(w, "## Partners\n\n")
		fmt.Fprintln(w, "| Partner | Share | Amount |")
		fmt.Fprintln(w, "|:---|---:|---:|")
		for _, s := range alloc.Shares {
			fmt.Fprintf(w, "| %s | %s | %s |\n", s.Partner, s.Pct, s.Amount)
		}
		fmt.Fprintln(w)
		if alloc.Overallocated() {
			fmt.Fprintf(w, "> Shares add up to %s, more than 100%%.\n\n", alloc.Total)
		}
		return len(alloc.Shares) > 0
	})

	return b.String()
}
