// Package money holds the decimal helpers shared by the ledger services.
package money

import "github.com/shopspring/decimal"

// ReportPlaces is the number of decimal places used when figures leave the engine.
const ReportPlaces int32 = 2

var hundred = decimal.NewFromInt(100)

// Round rounds an amount to reporting precision (half away from zero).
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(ReportPlaces)
}

// SafeDiv divides numerator by denominator and yields zero for a zero denominator.
func SafeDiv(numerator, denominator decimal.Decimal) decimal.Decimal {
	if denominator.IsZero() {
		return decimal.Zero
	}
	return numerator.Div(denominator)
}

// Percent converts a percentage (8 for 8%) into its fraction.
func Percent(rate decimal.Decimal) decimal.Decimal {
	return rate.Div(hundred)
}

// ZeroWithin normalizes amounts whose magnitude is strictly below tolerance to exactly zero.
func ZeroWithin(amount, tolerance decimal.Decimal) decimal.Decimal {
	if amount.Abs().LessThan(tolerance) {
		return decimal.Zero
	}
	return amount
}

// Sum adds amounts at full precision.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(amount)
	}
	return total
}
