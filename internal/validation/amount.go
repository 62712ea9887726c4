package validation

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// AmountPlaces is the number of fractional digits kept on money amounts.
	AmountPlaces = 2
	// AmountMaxDigits is the total number of digits a normalized amount may carry.
	AmountMaxDigits = 10
)

const (
	MsgAmountNumber    = "Enter a number."
	MsgAmountMaxDigits = "Ensure that there are no more than 10 digits in total."
)

// ParseAmount parses a decimal amount. Surrounding whitespace is ignored. Amounts whose integer
// part already exceeds AmountMaxDigits are rejected before any rounding, and amounts too small to
// survive rounding come back as zero, so exponent notation never expands into a huge coefficient.
func ParseAmount(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, Errorf(KindFormat, MsgAmountNumber)
	}
	if d.IsZero() {
		return decimal.Zero, nil
	}
	magnitude := d.NumDigits() + int(d.Exponent())
	if magnitude > AmountMaxDigits {
		return decimal.Decimal{}, Errorf(KindFormat, MsgAmountMaxDigits)
	}
	if magnitude < -AmountPlaces {
		return decimal.Zero, nil
	}
	return d, nil
}

// NormalizeAmount rounds d to AmountPlaces fractional digits, half away from zero. It is
// idempotent. Use FormatAmount to print the result with both decimals.
func NormalizeAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(AmountPlaces)
}

// Bound is a lower limit on an amount. Message is reported when the limit is not met.
type Bound struct {
	Min       decimal.Decimal
	Inclusive bool
	Message   string
}

// Check reports whether d satisfies the bound.
func (b Bound) Check(d decimal.Decimal) error {
	if b.Inclusive {
		if d.LessThan(b.Min) {
			return Errorf(KindRange, "%s", b.Message)
		}
		return nil
	}
	if !d.GreaterThan(b.Min) {
		return Errorf(KindRange, "%s", b.Message)
	}
	return nil
}

// Amount parses raw, normalizes it to two decimal places, enforces the total digit limit and
// then every bound in order. The first failing bound is reported.
func Amount(raw string, bounds ...Bound) (decimal.Decimal, error) {
	d, err := ParseAmount(raw)
	if err != nil {
		return decimal.Decimal{}, err
	}
	d = NormalizeAmount(d)
	if digits(d) > AmountMaxDigits {
		return decimal.Decimal{}, Errorf(KindFormat, MsgAmountMaxDigits)
	}
	for _, b := range bounds {
		if err := b.Check(d); err != nil {
			return decimal.Decimal{}, err
		}
	}
	return d, nil
}

// FormatAmount prints d with exactly AmountPlaces fractional digits.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(AmountPlaces)
}

// digits counts integer plus fractional digits of a normalized amount.
func digits(d decimal.Decimal) int {
	s := d.Abs().StringFixed(AmountPlaces)
	return len(s) - 1
}
