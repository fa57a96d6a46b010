package flip

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// The financial model. Every function is pure: unknown inputs give unknown
// results, and absent refurbishment, fees or shipping count as zero.

// GrossProfit returns sale - purchase - refurb, unknown if sale or purchase is unknown.
func GrossProfit(sale, purchase, refurb Amount) Amount {
	s, ok := sale.Get()
	if !ok {
		return Amount{}
	}
	p, ok := purchase.Get()
	if !ok {
		return Amount{}
	}
	return Some(s.Sub(p).Sub(refurb.OrZero()))
}

// NetProfit returns the gross profit minus sale fees and shipping.
func NetProfit(sale, purchase, refurb, fees, shipping Amount) Amount {
	gross, ok := GrossProfit(sale, purchase, refurb).Get()
	if !ok {
		return Amount{}
	}
	return Some(gross.Sub(fees.OrZero()).Sub(shipping.OrZero()))
}

// ROIPercentage returns the net profit over the investment (purchase +
// refurb), in percent. ok is false when the net profit is unknown or the
// investment is not positive.
func ROIPercentage(sale, purchase, refurb, fees, shipping Amount) (roi Percent, ok bool) {
	net, ok := NetProfit(sale, purchase, refurb, fees, shipping).Get()
	if !ok {
		return 0, false
	}
	return net.Ratio(purchase.OrZero().Add(refurb.OrZero()))
}

// BreakEvenPrice returns the sale price that recovers purchase, refurb and
// shipping once the marketplace takes feeRate of the sale, rounded to cents.
// It is unknown when purchase is unknown or feeRate is 100% or more.
func BreakEvenPrice(purchase, refurb Amount, feeRate Rate, shipping Amount) Amount {
	p, ok := purchase.Get()
	if !ok {
		return Amount{}
	}
	keep := decimal.NewFromInt(1).Sub(feeRate.value)
	if !keep.IsPositive() {
		return Amount{}
	}
	cost := p.Add(refurb.OrZero()).Add(shipping.OrZero())
	return Some(Money{value: cost.value.Div(keep).Round(2), cur: cost.cur})
}

// PartnerShare returns pct percent of the net profit. A negative profit gives
// a negative share. pct outside [0, 100] is an error wrapping ErrInvalid.
// pct is checked before net: an invalid pct is an error even when net is
// unknown, instead of an unknown share.
func PartnerShare(net Amount, pct Percent) (Amount, error) {
	if !pct.Valid() {
		return Amount{}, fmt.Errorf("%w: share percentage %v must be between 0 and 100", ErrInvalid, pct)
	}
	n, ok := net.Get()
	if !ok {
		return Amount{}, nil
	}
	return Some(share(n, pct)), nil
}

// share returns pct percent of m, without validation.
func share(m Money, pct Percent) Money {
	return Money{value: m.value.Mul(decimal.NewFromFloat(float64(pct))).Div(hundred), cur: m.cur}
}

// ProfitMargin returns the net profit over the sale price, in percent. ok is
// false when either is unknown or the sale price is not positive.
func ProfitMargin(net, sale Amount) (Percent, bool) {
	n, ok := net.Get()
	if !ok {
		return 0, false
	}
	s, ok := sale.Get()
	if !ok {
		return 0, false
	}
	return n.Ratio(s)
}

// Target is a resale price reaching a given profit over break-even.
type Target struct {
	Profit Percent // markup over the break-even price, 0 for break-even itself
	Price  Money
}

// targetMarkups are the markups reported by BidTargets.
var targetMarkups = []Percent{0, 20, 50, 100}

// BidTargets returns the sale prices to aim for when bidding up to maxBid:
// break-even, then 20%, 50% and 100% above it. It returns nil when maxBid is
// unknown or feeRate is 100% or more.
func BidTargets(maxBid, refurbEstimate Amount, feeRate Rate) []Target {
	be, ok := BreakEvenPrice(maxBid, refurbEstimate, feeRate, Amount{}).Get()
	if !ok {
		return nil
	}
	targets := make([]Target, 0, len(targetMarkups))
	for _, markup := range targetMarkups {
		price := be.Add(share(be, markup)).Round(2)
		targets = append(targets, Target{Profit: markup, Price: price})
	}
	return targets
}
