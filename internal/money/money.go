// Package money holds the fixed-precision arithmetic shared by invoices, purchases,
// internal sales and the dashboard. Amounts are rounded to two places, matching the
// DECIMAL(10,2) columns they are stored in.
package money

import "github.com/shopspring/decimal"

const places = 2

func Round(v decimal.Decimal) decimal.Decimal {
	return v.Round(places)
}

// LineTotal is quantity × unit price.
func LineTotal(qty int, unitPrice decimal.Decimal) decimal.Decimal {
	return Round(unitPrice.Mul(decimal.NewFromInt(int64(qty))))
}

func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return Round(total)
}

func IsNegative(v decimal.Decimal) bool {
	return v.Sign() < 0
}

// Profit is what a sale line earned over the product's current purchase price.
func Profit(lineTotal decimal.Decimal, qty int, purchasePrice decimal.Decimal) decimal.Decimal {
	return Round(lineTotal.Sub(LineTotal(qty, purchasePrice)))
}
