package flip

import "fmt"

// Allocation is the split of an item's net profit across its partners.
type Allocation struct {
	Item   *Item
	Total  Percent       // sum of the share percentages
	Shares []ShareAmount // in the order of the item's shares
}

// ShareAmount is a partner's share and the money it represents, unknown
// while the item's net profit is unknown.
type ShareAmount struct {
	Share
	Amount Amount
}

// Overallocated reports whether the shares add up to more than 100%.
// Such an allocation is computed as is: it is reported, not capped.
func (a Allocation) Overallocated() bool { return a.Total > 100 && !a.Total.Equal(100) }

// Allocate distributes the net profit of it across its shares. Each share
// percentage must be within [0, 100].
func Allocate(it *Item) (Allocation, error) {
	a := Allocation{Item: it, Shares: make([]ShareAmount, 0, len(it.Shares))}
	net := it.NetProfit()
	for _, s := range it.Shares {
		amount, err := PartnerShare(net, s.Pct)
		if err != nil {
			return Allocation{}, fmt.Errorf("partner %q on item %q: %w", s.Partner, it.ID, err)
		}
		a.Total += s.Pct
		a.Shares = append(a.Shares, ShareAmount{Share: s, Amount: amount})
	}
	return a, nil
}

// For returns the amount allocated to partner, summing multiple shares, and
// whether the partner has any share in the item.
func (a Allocation) For(partner string) (Amount, bool) {
	var total Amount
	found := false
	for _, s := range a.Shares {
		if s.Partner != partner {
			continue
		}
		if !found {
			total = s.Amount
			found = true
			continue
		}
		total = total.Add(s.Amount)
	}
	return total, found
}

// EstimatedShare returns the partner's expected share of a pending item,
// from its target price less PendingFeeRate of fees. ok is false unless the
// estimated profit is positive.
func EstimatedShare(it *Item, pct Percent) (Money, bool) {
	target, ok := it.TargetPrice.Get()
	if !ok {
		return Money{}, false
	}
	cost, ok := it.PurchasePrice.Get()
	if !ok {
		return Money{}, false
	}
	profit := target.Sub(cost).Sub(it.RefurbCost.OrZero())
	profit = profit.Sub(profit.MulRate(PendingFeeRate))
	if !profit.IsPositive() {
		return Money{}, false
	}
	return share(profit, pct), true
}
