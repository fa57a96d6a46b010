package flip

import (
	"encoding/csv"
	"fmt"
	"io"
)

var profitHeader = []string{
	"Sale Date", "Auction", "Lot", "Item", "Title",
	"Purchase Price", "Refurb Cost", "Expenses", "Revenue",
	"Sale Fees", "Shipping Cost", "Gross Profit", "Net Profit", "ROI %", "Channel",
}

// plain formats an amount for CSV, empty when unknown.
func plain(a Amount) string {
	m, ok := a.Get()
	if !ok {
		return ""
	}
	return m.Plain()
}

// WriteProfitCSV writes one row per sold item.
func WriteProfitCSV(w io.Writer, items []*Item) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(profitHeader); err != nil {
		return err
	}
	for _, it := range items {
		if it.Status != Sold {
			continue
		}
		roi := ""
		if r, ok := it.ROI(); ok {
			roi = fmt.Sprintf("%.1f", float64(r))
		}
		row := []string{
			it.SaleDate.String(), it.Auction, it.LotNumber, it.ID, it.Title,
			plain(it.PurchasePrice), it.RefurbCost.OrZero().Plain(), it.TotalExpenses().Plain(), plain(it.Revenue()),
			it.SaleFees.OrZero().Plain(), it.ShippingCost.OrZero().Plain(),
			plain(it.GrossProfit()), plain(it.NetProfit()), roi, it.ListChannel,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCashFlowCSV writes the cash flow entries followed by a total row.
func WriteCashFlowCSV(w io.Writer, c *CashFlow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Type", "Category", "Item", "Title", "Description", "Amount"}); err != nil {
		return err
	}
	for _, e := range c.Entries {
		kind := "Expense"
		if e.Income() {
			kind = "Income"
		}
		row := []string{e.Date.String(), kind, e.Category, e.Item, e.Title, e.Description, e.Amount.Plain()}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	if err := cw.Write([]string{"", "", "", "", "", "Net", c.Net().Plain()}); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
