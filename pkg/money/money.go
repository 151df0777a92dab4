// Package money formats and combines whole-unit (USD, not cents) amounts.
package money

import "github.com/shopspring/decimal"

// Format renders a whole-unit amount with two decimals, e.g. 800 -> "800.00".
func Format(amount int64) string {
	return decimal.NewFromInt(amount).StringFixed(2)
}

// Multiply returns unit*qty.
func Multiply(unit int64, qty int) decimal.Decimal {
	return decimal.NewFromInt(unit).Mul(decimal.NewFromInt(int64(qty)))
}

// Sum adds whole-unit amounts.
func Sum(amounts ...int64) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(decimal.NewFromInt(amount))
	}
	return total
}
