package flip

import (
	"fmt"
	"slices"

	"github.com/etnz/flip/date"
)

// Flow categories.
const (
	FlowPurchase = "purchase"
	FlowRefurb   = "refurbishment"
	FlowExpense  = "expense"
	FlowSale     = "sale"
	FlowFees     = "fees"
	FlowShipping = "shipping"
)

// CashFlow lists money in and out over a period, newest first.
type CashFlow struct {
	Range    date.Range
	Entries  []FlowEntry
	Income   Money
	Expenses Money // positive
}

// Net returns income minus expenses.
func (c *CashFlow) Net() Money { return c.Income.Sub(c.Expenses) }

// FlowEntry is a single cash movement. Amount is negative for expenses.
type FlowEntry struct {
	Date        date.Date
	Category    string
	Item        string
	Title       string
	Description string
	Amount      Money
}

// Income reports whether the entry is money in.
func (e FlowEntry) Income() bool { return e.Amount.IsPositive() }

// NewCashFlow lists the cash movements of the transactions dated within r.
func NewCashFlow(ledger *Ledger, r date.Range) (*CashFlow, error) {
	items, err := ledger.Items()
	if err != nil {
		return nil, fmt.Errorf("could not replay ledger: %w", err)
	}
	titles := make(map[string]string, len(items))
	for _, it := range items {
		titles[it.ID] = it.Title
	}
	cur := ledger.Currency()
	c := &CashFlow{Range: r}
	add := func(tx Transaction, item, category, description string, amount Money) {
		if amount.IsZero() {
			return
		}
		c.Entries = append(c.Entries, FlowEntry{
			Date:        tx.When(),
			Category:    category,
			Item:        item,
			Title:       titles[item],
			Description: description,
			Amount:      amount,
		})
		if amount.IsPositive() {
			c.Income = c.Income.Add(amount)
		} else {
			c.Expenses = c.Expenses.Sub(amount)
		}
	}

	for _, tx := range ledger.Transactions(InRange(r)) {
		switch v := tx.(type) {
		case Win:
			add(v, v.Item, FlowPurchase, "", M(v.Price, cur).Neg())
		case Refurb:
			add(v, v.Item, FlowRefurb, v.Memo, M(v.Amount, cur).Neg())
		case ExpenseTx:
			add(v, v.Item, FlowExpense, v.Category, M(v.Amount, cur).Neg())
		case Sell:
			add(v, v.Item, FlowSale, "", M(v.Price, cur))
			add(v, v.Item, FlowFees, "", M(v.Fees, cur).Neg())
			add(v, v.Item, FlowShipping, "", M(v.Shipping, cur).Neg())
		case SellPieces:
			add(v, v.Item, FlowSale, fmt.Sprintf("%d pieces", v.Pieces), M(v.Price, cur).Mul(Q(v.Pieces)))
			add(v, v.Item, FlowFees, "", M(v.Fees, cur).Neg())
			add(v, v.Item, FlowShipping, "", M(v.Shipping, cur).Neg())
		}
	}
	slices.SortStableFunc(c.Entries, func(a, b FlowEntry) int { return b.Date.Compare(a.Date) })
	return c, nil
}
