package flip

import (
	"errors"
	"testing"
)

func TestGrossProfit(t *testing.T) {
	testCases := []struct {
		name                   string
		sale, purchase, refurb Amount
		want                   Amount
	}{
		{"basic", usd(100), usd(50), none, usd(50)},
		{"with refurb", usd(100), usd(50), usd(10), usd(40)},
		{"loss", usd(50), usd(100), none, usd(-50)},
		{"zero sale", usd(0), usd(50), none, usd(-50)},
		{"all zero", usd(0), usd(0), none, usd(0)},
		{"unknown sale", none, usd(50), none, none},
		{"unknown purchase", usd(100), none, usd(10), none},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := GrossProfit(tc.sale, tc.purchase, tc.refurb); !got.Equal(tc.want) {
				t.Errorf("GrossProfit() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestGrossProfitIsSaleMinusPurchase(t *testing.T) {
	for _, s := range []float64{0, 1, 49.99, 1000} {
		for _, p := range []float64{0, 0.01, 50, 999.5} {
			got, _ := GrossProfit(usd(s), usd(p), usd(0)).Get()
			if want := dec(s).Sub(dec(p)); !got.value.Equal(want) {
				t.Errorf("GrossProfit(%v, %v, 0) = %v, want %v", s, p, got.value, want)
			}
		}
	}
}

func TestNetProfit(t *testing.T) {
	assertAmount(t, "NetProfit(100, 50, 10, 5, 3)", NetProfit(usd(100), usd(50), usd(10), usd(5), usd(3)), 32)
	assertAmount(t, "NetProfit(100, 60)", NetProfit(usd(100), usd(60), none, none, none), 40)
	assertAmount(t, "NetProfit(50, 100, 10, 5, 3)", NetProfit(usd(50), usd(100), usd(10), usd(5), usd(3)), -68)
	assertUnknown(t, "NetProfit(none, 50)", NetProfit(none, usd(50), none, none, none))
	assertUnknown(t, "NetProfit(100, none)", NetProfit(usd(100), none, none, none, none))
}

func TestNetProfitDecreasesWithCosts(t *testing.T) {
	prev, _ := NetProfit(usd(200), usd(100), none, usd(0), usd(0)).Get()
	for _, fee := range []float64{1, 5, 20, 150} {
		net, _ := NetProfit(usd(200), usd(100), none, usd(fee), usd(fee/2)).Get()
		if net.GreaterThan(prev) {
			t.Errorf("NetProfit with fee %v = %v, more than %v", fee, net, prev)
		}
		prev = net
	}
}

func TestROIPercentage(t *testing.T) {
	testCases := []struct {
		name                                   string
		sale, purchase, refurb, fees, shipping Amount
		want                                   Percent
		wantOK                                 bool
	}{
		{"scenario", usd(200), usd(100), usd(20), usd(15), usd(5), 50, true},
		{"break even", usd(100), usd(100), none, none, none, 0, true},
		{"summary", usd(150), usd(100), usd(10), usd(15), usd(5), 18.1818, true},
		{"loss", usd(250), usd(200), usd(20), usd(25), usd(10), -2.2727, true},
		{"zero purchase", usd(100), usd(0), none, none, none, 0, false},
		{"unknown sale", none, usd(100), none, none, none, 0, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ROIPercentage(tc.sale, tc.purchase, tc.refurb, tc.fees, tc.shipping)
			if ok != tc.wantOK {
				t.Fatalf("ROIPercentage() ok = %v, want %v", ok, tc.wantOK)
			}
			if !got.Equal(tc.want) {
				t.Errorf("ROIPercentage() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBreakEvenPrice(t *testing.T) {
	assertAmount(t, "BreakEvenPrice(100, 0, 10%, 0)", BreakEvenPrice(usd(100), none, R(0.10), none), 111.11)
	assertAmount(t, "BreakEvenPrice(100, 20, 10%, 10)", BreakEvenPrice(usd(100), usd(20), R(0.10), usd(10)), 144.44)
	assertAmount(t, "BreakEvenPrice(90, 0, 0%, 0)", BreakEvenPrice(usd(90), none, R(0), none), 90)
	assertUnknown(t, "BreakEvenPrice(none)", BreakEvenPrice(none, usd(20), R(0.10), none))
	assertUnknown(t, "BreakEvenPrice(fee 100%)", BreakEvenPrice(usd(100), none, R(1), none))
	assertUnknown(t, "BreakEvenPrice(fee 150%)", BreakEvenPrice(usd(100), none, R(1.5), none))
}

func TestPartnerShare(t *testing.T) {
	got, err := PartnerShare(none, 50)
	if err != nil || got.Known() {
		t.Errorf("PartnerShare(none, 50) = %v, %v, want unknown", got, err)
	}
	got, err = PartnerShare(usd(100), 50)
	if err != nil {
		t.Fatalf("PartnerShare(100, 50) error = %v", err)
	}
	assertAmount(t, "PartnerShare(100, 50)", got, 50)

	got, err = PartnerShare(usd(-40), 25)
	if err != nil {
		t.Fatalf("PartnerShare(-40, 25) error = %v", err)
	}
	assertAmount(t, "PartnerShare(-40, 25)", got, -10)

	for _, pct := range []Percent{-1, 100.5, 200} {
		if _, err := PartnerShare(usd(100), pct); !errors.Is(err, ErrInvalid) {
			t.Errorf("PartnerShare(100, %v) error = %v, want ErrInvalid", pct, err)
		}
	}
	if _, err := PartnerShare(none, -1); !errors.Is(err, ErrInvalid) {
		t.Errorf("PartnerShare(none, -1) error = %v, want ErrInvalid", err)
	}
}

func TestProfitMargin(t *testing.T) {
	if got, ok := ProfitMargin(usd(20), usd(200)); !ok || !got.Equal(10) {
		t.Errorf("ProfitMargin(20, 200) = %v, %v, want 10%%", got, ok)
	}
	if _, ok := ProfitMargin(usd(20), usd(0)); ok {
		t.Errorf("ProfitMargin(20, 0) want not ok")
	}
}

func TestBidTargets(t *testing.T) {
	targets := BidTargets(usd(90), usd(0), R(0.10))
	want := []float64{100, 120, 150, 200}
	if len(targets) != len(want) {
		t.Fatalf("BidTargets() returned %d targets, want %d", len(targets), len(want))
	}
	for i, target := range targets {
		if !target.Price.value.Equal(dec(want[i])) {
			t.Errorf("BidTargets()[%d] = %v, want %v", i, target.Price, want[i])
		}
	}
	if BidTargets(none, none, R(0.10)) != nil {
		t.Errorf("BidTargets(unknown bid) want nil")
	}
}
