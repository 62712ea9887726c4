// Package loan computes loan eligibility from an M-Pesa balance and a list of balance tiers.
package loan

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidTiers is returned when a tier list cannot be parsed or contains negative values.
var ErrInvalidTiers = errors.New("invalid loan tiers")

// Tier unlocks Amount once a balance reaches Threshold.
type Tier struct {
	Threshold decimal.Decimal
	Amount    decimal.Decimal
}

// Tiers is a tier list kept in ascending Threshold order.
type Tiers []Tier

// NewTiers returns a copy of tiers sorted ascending by threshold. Equal thresholds keep their
// input order, so the later one wins in MaxLoan.
func NewTiers(tiers ...Tier) Tiers {
	out := make(Tiers, len(tiers))
	copy(out, tiers)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Threshold.LessThan(out[j].Threshold)
	})
	return out
}

// ParseTiers parses "threshold:amount" pairs separated by commas, e.g. "0:0,1000:500,5000:2000".
// An empty string yields no tiers.
func ParseTiers(s string) (Tiers, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Tiers{}, nil
	}
	parts := strings.Split(s, ",")
	tiers := make([]Tier, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		threshold, amount, ok := strings.Cut(p, ":")
		if !ok {
			return nil, fmt.Errorf("%w: %q is not threshold:amount", ErrInvalidTiers, p)
		}
		th, err := decimal.NewFromString(strings.TrimSpace(threshold))
		if err != nil {
			return nil, fmt.Errorf("%w: threshold %q: %v", ErrInvalidTiers, threshold, err)
		}
		amt, err := decimal.NewFromString(strings.TrimSpace(amount))
		if err != nil {
			return nil, fmt.Errorf("%w: amount %q: %v", ErrInvalidTiers, amount, err)
		}
		if th.IsNegative() || amt.IsNegative() {
			return nil, fmt.Errorf("%w: %q has a negative value", ErrInvalidTiers, p)
		}
		tiers = append(tiers, Tier{Threshold: th, Amount: amt})
	}
	return NewTiers(tiers...), nil
}

// MaxLoan returns the amount of the highest tier whose threshold is at or below balance.
// It returns zero when balance is below every threshold.
func (t Tiers) MaxLoan(balance decimal.Decimal) decimal.Decimal {
	eligible := decimal.Zero
	for _, tier := range t {
		if balance.LessThan(tier.Threshold) {
			break
		}
		eligible = tier.Amount
	}
	return eligible
}
