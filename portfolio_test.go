package flip

import "testing"

func portfolioItems() []*Item {
	return []*Item{
		{Status: Sold, PurchasePrice: usd(100), SalePrice: usd(150), RefurbCost: usd(10), SaleFees: usd(15), ShippingCost: usd(5)},
		{Status: Sold, PurchasePrice: usd(200), SalePrice: usd(250), RefurbCost: usd(20), SaleFees: usd(25), ShippingCost: usd(10)},
		{Status: Won, PurchasePrice: usd(50)},
		{Status: Listed, PurchasePrice: usd(75)},
		{Status: Watch},
	}
}

func TestSummarize(t *testing.T) {
	p := Summarize(portfolioItems())

	if p.Items != 5 {
		t.Errorf("Items = %d, want 5", p.Items)
	}
	for status, want := range map[Status]int{Sold: 2, Won: 1, Listed: 1, Watch: 1} {
		if got := p.Count(status); got != want {
			t.Errorf("Count(%v) = %d, want %d", status, got, want)
		}
	}
	testCases := []struct {
		name string
		got  Money
		want float64
	}{
		{"TotalInvested", p.TotalInvested, 455},
		{"TotalSoldValue", p.TotalSoldValue, 400},
		{"TotalGrossProfit", p.TotalGrossProfit, 70},
		{"TotalNetProfit", p.TotalNetProfit, 15},
		{"TotalFees", p.TotalFees, 55},
		{"AverageProfitPerSale", p.AverageProfitPerSale, 7.5},
	}
	for _, tc := range testCases {
		if !tc.got.value.Equal(dec(tc.want)) {
			t.Errorf("%s = %v, want %v", tc.name, tc.got, tc.want)
		}
	}
	if !p.AverageROI.Equal(7.9545) {
		t.Errorf("AverageROI = %v, want 7.95%%", p.AverageROI)
	}
	if !p.OverallROI.Equal(4.5455) {
		t.Errorf("OverallROI = %v, want 4.55%%", p.OverallROI)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	p := Summarize(nil)
	if p.Items != 0 || p.Count(Sold) != 0 || p.AverageROI != 0 || p.OverallROI != 0 {
		t.Errorf("Summarize(nil) = %+v, want zero", p)
	}
	if !p.TotalInvested.IsZero() || !p.TotalNetProfit.IsZero() || !p.TotalSoldValue.IsZero() {
		t.Errorf("Summarize(nil) totals are not zero: %+v", p)
	}
}

func TestSummarizeNoSales(t *testing.T) {
	p := Summarize([]*Item{{Status: Watch}, {Status: Won, PurchasePrice: usd(100)}})
	if p.Count(Sold) != 0 || !p.TotalNetProfit.IsZero() || p.AverageROI != 0 {
		t.Errorf("Summarize() = %+v, want no profit", p)
	}
	if !p.TotalInvested.value.Equal(dec(100)) {
		t.Errorf("TotalInvested = %v, want 100", p.TotalInvested)
	}
}

func TestSummarizeIncludesPartlySoldLots(t *testing.T) {
	it := lot(10, 50)
	if err := it.SellPieces(PieceSale{Date: day2, Pieces: 4, Price: USD(10)}); err != nil {
		t.Fatal(err)
	}
	p := Summarize([]*Item{it})
	if !p.TotalNetProfit.value.Equal(dec(20)) {
		t.Errorf("TotalNetProfit = %v, want 20", p.TotalNetProfit)
	}
	if !p.AverageROI.Equal(100) {
		t.Errorf("AverageROI = %v, want 100%%", p.AverageROI)
	}
	if !p.TotalSoldValue.IsZero() {
		t.Errorf("TotalSoldValue = %v, want 0 while the lot is not sold", p.TotalSoldValue)
	}
}
