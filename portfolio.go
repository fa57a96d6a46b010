package flip

// PortfolioSummary aggregates a collection of items.
type PortfolioSummary struct {
	Items  int
	Counts map[Status]int

	TotalInvested    Money // cost basis of every item with a known purchase price
	TotalSoldValue   Money // revenue of sold items
	TotalGrossProfit Money // over items with a known gross profit
	TotalNetProfit   Money // over items with a known net profit
	TotalFees        Money // fees and shipping of sold items

	// AverageROI is the simple mean of the items' ROI, each deal weighing the
	// same whatever its size. OverallROI is the capital weighted return of
	// sold items.
	AverageROI Percent
	OverallROI Percent

	AverageProfitPerSale Money
}

// Count returns the number of items in status s.
func (p PortfolioSummary) Count(s Status) int { return p.Counts[s] }

// Summarize folds items into a PortfolioSummary. An empty collection gives a
// zero summary. Unknown values contribute nothing to the totals.
func Summarize(items []*Item) PortfolioSummary {
	p := PortfolioSummary{
		Items:  len(items),
		Counts: make(map[Status]int, len(Statuses)),
	}
	var (
		rois         Percent
		nroi         int
		soldNet      Money
		soldInvested Money
	)
	for _, it := range items {
		switch it.Status {
		case Watch, Won, Listed:
			p.Counts[it.Status]++
		case Sold:
			p.Counts[Sold]++
			p.TotalSoldValue = p.TotalSoldValue.Add(it.Revenue().OrZero())
			p.TotalFees = p.TotalFees.Add(it.SaleFees.OrZero()).Add(it.ShippingCost.OrZero())
			if net, ok := it.NetProfit().Get(); ok {
				soldNet = soldNet.Add(net)
				soldInvested = soldInvested.Add(it.CostBasis().OrZero())
			}
		default:
			panic("unknown item status " + it.Status.String())
		}

		if basis, ok := it.CostBasis().Get(); ok {
			p.TotalInvested = p.TotalInvested.Add(basis)
		}
		if gross, ok := it.GrossProfit().Get(); ok {
			p.TotalGrossProfit = p.TotalGrossProfit.Add(gross)
		}
		if net, ok := it.NetProfit().Get(); ok {
			p.TotalNetProfit = p.TotalNetProfit.Add(net)
		}
		if roi, ok := it.ROI(); ok {
			rois += roi
			nroi++
		}
	}
	if nroi > 0 {
		p.AverageROI = rois / Percent(nroi)
	}
	if roi, ok := soldNet.Ratio(soldInvested); ok {
		p.OverallROI = roi
	}
	if sold := p.Counts[Sold]; sold > 0 {
		p.AverageProfitPerSale = soldNet.Div(Q(sold))
	}
	return p
}
