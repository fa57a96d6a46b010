package flip

import (
	"cmp"
	"slices"

	"github.com/etnz/flip/date"
)

const (
	topPerformers = 10
	trendMonths   = 12
)

// ProfitAnalysis analyses the profitability of sold items.
type ProfitAnalysis struct {
	On         date.Date
	Sold       int
	Revenue    Money
	Investment Money
	NetProfit  Money
	AverageROI Percent

	Top       []*Item         // best net profit first
	ByAuction []AuctionProfit // sorted by auction
	Monthly   []MonthlyProfit // the last twelve months, oldest first
}

// AuctionProfit is the profit of the sold items bought at one auction.
type AuctionProfit struct {
	Auction   string // empty for items bought outside a declared auction
	Sold      int
	Revenue   Money
	NetProfit Money
}

// MonthlyProfit is the profit of items sold during one month.
type MonthlyProfit struct {
	Month     date.Range
	Sold      int
	Revenue   Money
	NetProfit Money
}

// NewProfitAnalysis analyses the sold items, with monthly trends over the
// twelve months ending on on.
func NewProfitAnalysis(items []*Item, on date.Date) *ProfitAnalysis {
	a := &ProfitAnalysis{On: on}
	var sold []*Item
	for _, it := range items {
		if it.Status == Sold {
			sold = append(sold, it)
		}
	}
	a.Sold = len(sold)

	byAuction := make(map[string]*AuctionProfit)
	months := date.LastMonths(on, trendMonths)
	for _, m := range months {
		a.Monthly = append(a.Monthly, MonthlyProfit{Month: m})
	}

	var rois Percent
	nroi := 0
	for _, it := range sold {
		revenue := it.Revenue().OrZero()
		net := it.NetProfit().OrZero()
		a.Revenue = a.Revenue.Add(revenue)
		a.Investment = a.Investment.Add(it.CostBasis().OrZero())
		a.NetProfit = a.NetProfit.Add(net)
		if roi, ok := it.ROI(); ok {
			rois += roi
			nroi++
		}

		ap, ok := byAuction[it.Auction]
		if !ok {
			ap = &AuctionProfit{Auction: it.Auction}
			byAuction[it.Auction] = ap
		}
		ap.Sold++
		ap.Revenue = ap.Revenue.Add(revenue)
		ap.NetProfit = ap.NetProfit.Add(net)

		for i := range a.Monthly {
			if a.Monthly[i].Month.Contains(it.SaleDate) {
				a.Monthly[i].Sold++
				a.Monthly[i].Revenue = a.Monthly[i].Revenue.Add(revenue)
				a.Monthly[i].NetProfit = a.Monthly[i].NetProfit.Add(net)
			}
		}
	}
	if nroi > 0 {
		a.AverageROI = rois / Percent(nroi)
	}

	a.Top = slices.Clone(sold)
	slices.SortStableFunc(a.Top, func(x, y *Item) int {
		return y.NetProfit().OrZero().value.Cmp(x.NetProfit().OrZero().value)
	})
	if len(a.Top) > topPerformers {
		a.Top = a.Top[:topPerformers]
	}

	for _, ap := range byAuction {
		a.ByAuction = append(a.ByAuction, *ap)
	}
	slices.SortFunc(a.ByAuction, func(x, y AuctionProfit) int { return cmp.Compare(x.Auction, y.Auction) })
	return a
}
