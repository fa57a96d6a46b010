package flip

import (
	"fmt"
	"slices"

	"github.com/etnz/flip/date"
)

// recentSales is the number of recent sales listed per partner.
const recentSales = 5

// PartnerReport lists the earnings of every declared partner, best earner first.
type PartnerReport struct {
	On       date.Date
	Partners []PartnerEarnings
}

// PartnerEarnings holds a partner's share of sold and pending items.
type PartnerEarnings struct {
	Partner   string
	Items     int   // items the partner has a share in
	SoldItems int   // of which sold
	Earnings  Money // share of the net profit of sold items
	Pending   Money // estimated share of won and listed items
	Recent    []PartnerSale
	// Overallocated lists the items in which partner shares add up to more than 100%.
	Overallocated []string
}

// PartnerSale is a partner's share of one sold item.
type PartnerSale struct {
	Item   *Item
	Pct    Percent
	Amount Amount
}

// NewPartnerReport computes the partners' earnings from the ledger.
func NewPartnerReport(ledger *Ledger) (*PartnerReport, error) {
	items, err := ledger.Items()
	if err != nil {
		return nil, fmt.Errorf("could not replay ledger: %w", err)
	}
	report := &PartnerReport{On: ledger.NewestTransactionDate()}
	index := make(map[string]*PartnerEarnings)
	zero := M(0, ledger.Currency())
	for _, id := range ledger.Partners() {
		report.Partners = append(report.Partners, PartnerEarnings{Partner: id, Earnings: zero, Pending: zero})
	}
	for i := range report.Partners {
		index[report.Partners[i].Partner] = &report.Partners[i]
	}

	for _, it := range items {
		alloc, err := Allocate(it)
		if err != nil {
			return nil, err
		}
		for _, s := range alloc.Shares {
			pe, ok := index[s.Partner]
			if !ok {
				continue
			}
			pe.Items++
			if alloc.Overallocated() && !slices.Contains(pe.Overallocated, it.ID) {
				pe.Overallocated = append(pe.Overallocated, it.ID)
			}
			switch it.Status {
			case Sold:
				pe.SoldItems++
				pe.Earnings = pe.Earnings.Add(s.Amount.OrZero())
				pe.Recent = append(pe.Recent, PartnerSale{Item: it, Pct: s.Pct, Amount: s.Amount})
			case Won, Listed:
				if est, ok := EstimatedShare(it, s.Pct); ok {
					pe.Pending = pe.Pending.Add(est)
				}
			case Watch:
			}
		}
	}

	for i := range report.Partners {
		pe := &report.Partners[i]
		slices.SortStableFunc(pe.Recent, func(a, b PartnerSale) int { return b.Item.SaleDate.Compare(a.Item.SaleDate) })
		if len(pe.Recent) > recentSales {
			pe.Recent = pe.Recent[:recentSales]
		}
	}
	slices.SortStableFunc(report.Partners, func(a, b PartnerEarnings) int {
		return b.Earnings.value.Cmp(a.Earnings.value)
	})
	return report, nil
}

// Partner returns the earnings of one partner.
func (r *PartnerReport) Partner(id string) (PartnerEarnings, bool) {
	i := slices.IndexFunc(r.Partners, func(p PartnerEarnings) bool { return p.Partner == id })
	if i < 0 {
		return PartnerEarnings{}, false
	}
	return r.Partners[i], true
}
