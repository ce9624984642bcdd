package invoice

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places kept for VAT and totals.
const MoneyPlaces = 2

// Breakdown is the result of Compute.
type Breakdown struct {
	Net   decimal.Decimal
	Rate  decimal.Decimal // Effective rate, 0 when VAT is not applied
	VAT   decimal.Decimal
	Total decimal.Decimal
}

// Compute returns the VAT and total for a net amount.
//
// VAT is rounded half-up to two places once, and the total is the rounded
// sum of the net amount and that rounded VAT. Without applyVAT the rate is
// treated as 0 whatever the profile says.
func Compute(net, ratePercent decimal.Decimal, applyVAT bool) Breakdown {
	rate := ratePercent
	if !applyVAT {
		rate = decimal.Zero
	}
	vat := net.Mul(rate).Shift(-2).Round(MoneyPlaces)
	return Breakdown{
		Net:   net,
		Rate:  rate,
		VAT:   vat,
		Total: net.Add(vat).Round(MoneyPlaces),
	}
}

// ParseAmount parses user-entered money text. It reports false for empty,
// non-numeric or non-finite input; callers treat that as 0.
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Money formats a stored amount with exactly two decimal places.
func Money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(MoneyPlaces)
}
