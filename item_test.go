package flip

import (
	"errors"
	"testing"
)

func lot(pieces int, purchase float64) *Item {
	return &Item{
		ID:              "lot",
		Status:          Won,
		PurchasePrice:   usd(purchase),
		MultiPiece:      true,
		PiecesTotal:     pieces,
		PiecesRemaining: pieces,
	}
}

func TestItemScenario(t *testing.T) {
	it := &Item{
		Status:        Sold,
		PurchasePrice: usd(100),
		RefurbCost:    usd(20),
		SalePrice:     usd(200),
		SaleFees:      usd(15),
		ShippingCost:  usd(5),
	}
	assertAmount(t, "CostBasis()", it.CostBasis(), 120)
	assertAmount(t, "GrossProfit()", it.GrossProfit(), 80)
	assertAmount(t, "NetProfit()", it.NetProfit(), 60)
	if roi, ok := it.ROI(); !ok || !roi.Equal(50) {
		t.Errorf("ROI() = %v, %v, want 50%%", roi, ok)
	}
}

func TestItemExpensesFeedCostBasis(t *testing.T) {
	it := &Item{
		PurchasePrice: usd(100),
		RefurbCost:    usd(10),
		SalePrice:     usd(200),
		Expenses: []Expense{
			{Category: "storage", Amount: USD(15)},
			{Category: "transport", Amount: USD(25)},
		},
	}
	if got := it.TotalExpenses(); !got.Equal(USD(40)) {
		t.Errorf("TotalExpenses() = %v, want %v", got, USD(40))
	}
	assertAmount(t, "CostBasis()", it.CostBasis(), 150)
	assertAmount(t, "NetProfit()", it.NetProfit(), 50)
	if roi, ok := it.ROI(); !ok || !roi.Equal(33.3333) {
		t.Errorf("ROI() = %v, %v, want 33.33%%", roi, ok)
	}
}

func TestItemUnknownValues(t *testing.T) {
	watched := &Item{Status: Watch}
	assertUnknown(t, "CostBasis()", watched.CostBasis())
	assertUnknown(t, "NetProfit()", watched.NetProfit())
	if _, ok := watched.ROI(); ok {
		t.Errorf("ROI() of a watched item want not ok")
	}

	unsold := &Item{Status: Listed, PurchasePrice: usd(30)}
	assertAmount(t, "CostBasis()", unsold.CostBasis(), 30)
	assertUnknown(t, "GrossProfit()", unsold.GrossProfit())

	free := &Item{Status: Sold, PurchasePrice: usd(0), SalePrice: usd(10)}
	assertAmount(t, "NetProfit()", free.NetProfit(), 10)
	if _, ok := free.ROI(); ok {
		t.Errorf("ROI() with zero investment want not ok")
	}
}

func TestMultiPieceProration(t *testing.T) {
	it := lot(50, 100)
	assertAmount(t, "CostPerPiece()", it.CostPerPiece(), 2)
	assertUnknown(t, "GrossProfit() before any sale", it.GrossProfit())

	if err := it.SellPieces(PieceSale{Date: day2, Pieces: 10, Price: USD(5)}); err != nil {
		t.Fatalf("SellPieces() error = %v", err)
	}
	if got := it.PiecesSold(); got != 10 {
		t.Errorf("PiecesSold() = %d, want 10", got)
	}
	assertAmount(t, "Revenue()", it.Revenue(), 50)
	assertAmount(t, "GrossProfit()", it.GrossProfit(), 30)
	if roi, ok := it.ROI(); !ok || !roi.Equal(150) {
		t.Errorf("ROI() = %v, %v, want 150%% of the 20 invested in sold pieces", roi, ok)
	}
	if it.Status != Won {
		t.Errorf("Status = %v, want won while pieces remain", it.Status)
	}
}

func TestSellPieces(t *testing.T) {
	it := lot(50, 100)
	err := it.SellPieces(PieceSale{Date: day2, Pieces: 51, Price: USD(1)})
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("SellPieces(51 of 50) error = %v, want ErrInvalid", err)
	}
	if it.PiecesRemaining != 50 || len(it.PieceSales) != 0 {
		t.Errorf("rejected sale changed the item: remaining %d, sales %d", it.PiecesRemaining, len(it.PieceSales))
	}

	for _, n := range []int{0, -3} {
		if err := it.SellPieces(PieceSale{Pieces: n, Price: USD(1)}); !errors.Is(err, ErrInvalid) {
			t.Errorf("SellPieces(%d) error = %v, want ErrInvalid", n, err)
		}
	}

	if err := it.SellPieces(PieceSale{Date: day2, Pieces: 30, Price: USD(3), Fees: USD(2)}); err != nil {
		t.Fatalf("SellPieces(30) error = %v", err)
	}
	if err := it.SellPieces(PieceSale{Date: day3, Pieces: 20, Price: USD(4), Shipping: USD(1)}); err != nil {
		t.Fatalf("SellPieces(20) error = %v", err)
	}
	if it.PiecesRemaining != 0 || it.Status != Sold || it.SaleDate != day3 {
		t.Errorf("after selling every piece: remaining %d, status %v, sold on %v", it.PiecesRemaining, it.Status, it.SaleDate)
	}
	assertAmount(t, "NetProfit()", it.NetProfit(), 170-100-3)

	single := &Item{ID: "single", PurchasePrice: usd(10)}
	if err := single.SellPieces(PieceSale{Pieces: 1, Price: USD(20)}); !errors.Is(err, ErrInvalid) {
		t.Errorf("SellPieces on a single item error = %v, want ErrInvalid", err)
	}
}

func TestCostPerPieceUnknown(t *testing.T) {
	noCount := lot(0, 100)
	assertUnknown(t, "CostPerPiece() without pieces", noCount.CostPerPiece())
	single := &Item{PurchasePrice: usd(100)}
	assertUnknown(t, "CostPerPiece() of a single item", single.CostPerPiece())
}

func TestItemBreakEvenPrice(t *testing.T) {
	it := &Item{PurchasePrice: usd(80), RefurbCost: usd(10), ShippingCost: usd(9)}
	assertAmount(t, "BreakEvenPrice()", it.BreakEvenPrice(R(0.10)), 110)
	assertAmount(t, "BreakEvenPrice() per piece", lot(10, 90).BreakEvenPrice(R(0.10)), 10)
}

func TestValuation(t *testing.T) {
	it := &Item{PurchasePrice: usd(100), SalePrice: usd(200), SaleFees: usd(20)}
	v := it.Valuation(DefaultFeeRate)
	assertAmount(t, "Revenue", v.Revenue, 200)
	assertAmount(t, "NetProfit", v.NetProfit, 80)
	if !v.HasROI || !v.ROI.Equal(80) {
		t.Errorf("ROI = %v, %v, want 80%%", v.ROI, v.HasROI)
	}
	if !v.HasMargin || !v.Margin.Equal(40) {
		t.Errorf("Margin = %v, %v, want 40%%", v.Margin, v.HasMargin)
	}
}
