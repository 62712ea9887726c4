package loan

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func defaultTiers() Tiers {
	return NewTiers(
		Tier{Threshold: d("0"), Amount: d("0")},
		Tier{Threshold: d("1000"), Amount: d("500")},
		Tier{Threshold: d("5000"), Amount: d("2000")},
	)
}

func TestTiers_MaxLoan(t *testing.T) {
	tiers := defaultTiers()
	testCases := []struct {
		balance string
		want    string
	}{
		{"1500", "500"},
		{"5000", "2000"},
		{"999", "0"},
		{"999.99", "0"},
		{"1000", "500"},
		{"0", "0"},
		{"1000000", "2000"},
		{"-20", "0"},
	}
	for _, tc := range testCases {
		got := tiers.MaxLoan(d(tc.balance))
		if !got.Equal(d(tc.want)) {
			t.Errorf("MaxLoan(%s) = %s, want %s", tc.balance, got, tc.want)
		}
	}
}

func TestTiers_UnsortedInputPicksHighestThreshold(t *testing.T) {
	tiers := NewTiers(
		Tier{Threshold: d("5000"), Amount: d("2000")},
		Tier{Threshold: d("0"), Amount: d("0")},
		Tier{Threshold: d("1000"), Amount: d("500")},
	)
	if got := tiers.MaxLoan(d("6000")); !got.Equal(d("2000")) {
		t.Errorf("MaxLoan(6000) = %s, want 2000", got)
	}
	if got := tiers.MaxLoan(d("1500")); !got.Equal(d("500")) {
		t.Errorf("MaxLoan(1500) = %s, want 500", got)
	}
}

func TestTiers_MaxLoanMonotonic(t *testing.T) {
	tiers := defaultTiers()
	prev := decimal.Zero
	for b := int64(0); b <= 7000; b += 50 {
		got := tiers.MaxLoan(decimal.NewFromInt(b))
		if got.LessThan(prev) {
			t.Fatalf("MaxLoan(%d) = %s is below MaxLoan at a lower balance (%s)", b, got, prev)
		}
		prev = got
	}
}

func TestTiers_Empty(t *testing.T) {
	var tiers Tiers
	if got := tiers.MaxLoan(d("10000")); !got.IsZero() {
		t.Errorf("empty tiers MaxLoan = %s, want 0", got)
	}
}

func TestNewTiers_DoesNotMutateInput(t *testing.T) {
	in := []Tier{
		{Threshold: d("5000"), Amount: d("2000")},
		{Threshold: d("0"), Amount: d("0")},
	}
	_ = NewTiers(in...)
	if !in[0].Threshold.Equal(d("5000")) {
		t.Error("NewTiers reordered its input")
	}
}

func TestParseTiers(t *testing.T) {
	tiers, err := ParseTiers(" 5000:2000, 0:0 ,1000:500,")
	if err != nil {
		t.Fatalf("ParseTiers: %v", err)
	}
	if len(tiers) != 3 {
		t.Fatalf("len = %d, want 3", len(tiers))
	}
	if !tiers[0].Threshold.IsZero() || !tiers[2].Threshold.Equal(d("5000")) {
		t.Errorf("tiers not sorted ascending: %+v", tiers)
	}

	empty, err := ParseTiers("")
	if err != nil {
		t.Fatalf("ParseTiers empty: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("empty input yielded %d tiers", len(empty))
	}
}

func TestParseTiers_Invalid(t *testing.T) {
	for _, s := range []string{"1000", "x:1", "1:x", "-1:5", "5:-1"} {
		if _, err := ParseTiers(s); !errors.Is(err, ErrInvalidTiers) {
			t.Errorf("ParseTiers(%q) err = %v, want ErrInvalidTiers", s, err)
		}
	}
}
