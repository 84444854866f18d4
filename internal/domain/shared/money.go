package shared

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// RoundMoney rounds an amount to cents using half-up rounding
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// RoundQuantity rounds a stock quantity to three decimals
func RoundQuantity(d decimal.Decimal) decimal.Decimal {
	return d.Round(3)
}

// SplitInclusive splits a tax-inclusive amount (PVP) into its net base and
// tax portions. ratePercent is expressed in percent, e.g. 15 for 15%.
// net + tax always equals the rounded amount.
func SplitInclusive(amount, ratePercent decimal.Decimal) (net, tax decimal.Decimal) {
	gross := RoundMoney(amount)
	if ratePercent.IsZero() {
		return gross, decimal.Zero
	}
	divisor := one.Add(ratePercent.Div(hundred))
	net = RoundMoney(gross.Div(divisor))
	return net, gross.Sub(net)
}

// Percent returns part/whole*100 rounded to two decimals, or zero when whole is zero
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return RoundMoney(part.Div(whole).Mul(hundred))
}

// ValidTaxRate reports whether a percentage rate lies in [0, 100]
func ValidTaxRate(rate decimal.Decimal) bool {
	return !rate.IsNegative() && rate.LessThanOrEqual(hundred)
}
