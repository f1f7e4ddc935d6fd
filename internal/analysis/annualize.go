package analysis

import "github.com/shopspring/decimal"

var weeksPerYear = decimal.NewFromInt(52)

// annualize scales a payment amount to a yearly rate and its
// weekly-equivalent. The normalized value is derived from the unrounded
// annualized figure so rounding error is not compounded across the two
// fields.
//
//	annualized = round(amount * frequency, 2)
//	normalized = round(amount * frequency / 52, 6)
func annualize(amount float64, frequency int) (annualized, normalized float64) {
	annual := decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(int64(frequency)))
	annualized = annual.Round(2).InexactFloat64()
	normalized = annual.Div(weeksPerYear).Round(6).InexactFloat64()
	return annualized, normalized
}
