package flip

import (
	"fmt"

	"github.com/etnz/flip/date"
)

// Expense is an itemized cost attached to an item, such as storage or a repair part.
type Expense struct {
	Date        date.Date
	Category    string // e.g. "repair", "storage", "transport"
	Description string
	Amount      Money
}

// PieceSale records the sale of some pieces of a multi-piece item.
type PieceSale struct {
	Date     date.Date
	Pieces   int
	Price    Money // per piece
	Fees     Money
	Shipping Money
	Channel  string
}

// Total returns the revenue of the sale, price per piece times pieces.
func (s PieceSale) Total() Money { return s.Price.Mul(Q(s.Pieces)) }

// Share is a partner's percentage of an item's net profit.
type Share struct {
	Partner string
	Pct     Percent
}

// Item is a lot bought at auction and resold, either whole or piece by piece.
type Item struct {
	ID        string
	Title     string
	Auction   string
	LotNumber string
	Status    Status

	PlannedMaxBid  Amount
	TargetPrice    Amount
	SuggestedPrice Amount

	PurchasePrice Amount
	RefurbCost    Amount
	SalePrice     Amount
	SaleFees      Amount
	ShippingCost  Amount

	WonDate     date.Date
	ListDate    date.Date
	ListChannel string
	SaleDate    date.Date

	MultiPiece      bool
	PiecesTotal     int
	PiecesRemaining int

	Expenses   []Expense
	PieceSales []PieceSale
	Shares     []Share
}

// TotalExpenses returns the sum of the itemized expenses.
func (it *Item) TotalExpenses() Money {
	var total Money
	for _, e := range it.Expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// CostBasis returns purchase price + refurbishment + itemized expenses, unknown
// until the purchase price is known.
func (it *Item) CostBasis() Amount {
	p, ok := it.PurchasePrice.Get()
	if !ok {
		return Amount{}
	}
	return Some(p.Add(it.RefurbCost.OrZero()).Add(it.TotalExpenses()))
}

// CostPerPiece returns the cost basis spread evenly over the lot. It is
// unknown for single items, lots without a piece count, and unknown cost.
//
// It is computed from the current cost basis: an expense added after some
// pieces were sold changes the profit of those past sales too.
func (it *Item) CostPerPiece() Amount {
	if !it.MultiPiece || it.PiecesTotal <= 0 {
		return Amount{}
	}
	basis, ok := it.CostBasis().Get()
	if !ok {
		return Amount{}
	}
	return Some(basis.Div(Q(it.PiecesTotal)))
}

// PiecesSold returns the number of pieces sold so far.
func (it *Item) PiecesSold() int {
	n := 0
	for _, s := range it.PieceSales {
		n += s.Pieces
	}
	return n
}

// PieceRevenue returns the total revenue of piece sales.
func (it *Item) PieceRevenue() Money {
	var total Money
	for _, s := range it.PieceSales {
		total = total.Add(s.Total())
	}
	return total
}

// Revenue returns the sale price, or the piece revenue of a multi-piece item.
// It is unknown until something is sold.
func (it *Item) Revenue() Amount {
	if it.MultiPiece {
		if it.PiecesSold() == 0 {
			return Amount{}
		}
		return Some(it.PieceRevenue())
	}
	return it.SalePrice
}

// GrossProfit returns revenue minus cost. For a multi-piece item only the
// cost of the pieces sold is deducted, so a partly sold lot shows its interim profit.
func (it *Item) GrossProfit() Amount {
	if it.MultiPiece {
		sold := it.PiecesSold()
		cpp, ok := it.CostPerPiece().Get()
		if sold == 0 || !ok {
			return Amount{}
		}
		return Some(it.PieceRevenue().Sub(cpp.Mul(Q(sold))))
	}
	extra := it.RefurbCost.OrZero().Add(it.TotalExpenses())
	return GrossProfit(it.SalePrice, it.PurchasePrice, Some(extra))
}

// NetProfit returns the gross profit minus sale fees and shipping.
func (it *Item) NetProfit() Amount {
	gross, ok := it.GrossProfit().Get()
	if !ok {
		return Amount{}
	}
	return Some(gross.Sub(it.SaleFees.OrZero()).Sub(it.ShippingCost.OrZero()))
}

// investment returns the capital the net profit is measured against: the
// cost basis, or the prorated cost of the pieces sold.
func (it *Item) investment() Amount {
	if it.MultiPiece {
		cpp, ok := it.CostPerPiece().Get()
		if !ok {
			return Amount{}
		}
		return Some(cpp.Mul(Q(it.PiecesSold())))
	}
	return it.CostBasis()
}

// ROI returns the net profit over the investment in percent. ok is false when
// either is unknown or the investment is zero.
func (it *Item) ROI() (Percent, bool) {
	net, ok := it.NetProfit().Get()
	if !ok {
		return 0, false
	}
	inv, ok := it.investment().Get()
	if !ok {
		return 0, false
	}
	return net.Ratio(inv)
}

// BreakEvenPrice returns the sale price covering the cost basis and shipping
// after marketplace fees. For a multi-piece item it is the price per piece.
func (it *Item) BreakEvenPrice(feeRate Rate) Amount {
	if it.MultiPiece {
		return BreakEvenPrice(it.CostPerPiece(), Amount{}, feeRate, Amount{})
	}
	return BreakEvenPrice(it.CostBasis(), Amount{}, feeRate, it.ShippingCost)
}

// SellPieces records a piece sale. It rejects single items, non positive
// counts, and selling more pieces than remain. The item becomes Sold when
// no piece remains.
func (it *Item) SellPieces(s PieceSale) error {
	if !it.MultiPiece {
		return fmt.Errorf("%w: item %q is not sold by the piece", ErrInvalid, it.ID)
	}
	if s.Pieces <= 0 {
		return fmt.Errorf("%w: piece count must be positive, got %d", ErrInvalid, s.Pieces)
	}
	if s.Pieces > it.PiecesRemaining {
		return fmt.Errorf("%w: cannot sell %d pieces of %q, only %d remaining", ErrInvalid, s.Pieces, it.ID, it.PiecesRemaining)
	}
	it.PieceSales = append(it.PieceSales, s)
	it.PiecesRemaining -= s.Pieces
	if !s.Fees.IsZero() {
		it.SaleFees = Some(it.SaleFees.OrZero().Add(s.Fees))
	}
	if !s.Shipping.IsZero() {
		it.ShippingCost = Some(it.ShippingCost.OrZero().Add(s.Shipping))
	}
	if it.PiecesRemaining == 0 {
		it.Status = Sold
		it.SaleDate = s.Date
	}
	return nil
}

// Valuation is the profitability summary of an item.
type Valuation struct {
	CostBasis   Amount
	Revenue     Amount
	GrossProfit Amount
	NetProfit   Amount
	BreakEven   Amount
	ROI         Percent
	HasROI      bool
	Margin      Percent
	HasMargin   bool
}

// Valuation computes the profitability summary, with break-even at feeRate.
func (it *Item) Valuation(feeRate Rate) Valuation {
	v := Valuation{
		CostBasis:   it.CostBasis(),
		Revenue:     it.Revenue(),
		GrossProfit: it.GrossProfit(),
		NetProfit:   it.NetProfit(),
		BreakEven:   it.BreakEvenPrice(feeRate),
	}
	v.ROI, v.HasROI = it.ROI()
	v.Margin, v.HasMargin = ProfitMargin(v.NetProfit, v.Revenue)
	return v
}
