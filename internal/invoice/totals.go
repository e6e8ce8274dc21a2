package invoice

import (
	"fmt"

	"gymdesk/internal/apperr"
	"gymdesk/internal/money"

	"github.com/shopspring/decimal"
)

// Build validates req and prices it. Every line total is quantity × unit price,
// the subtotal is their sum and the total is the subtotal less the discount.
func Build(req CreateRequest) (*Invoice, error) {
	if err := apperr.ValidateStruct(req); err != nil {
		return nil, err
	}
	if money.IsNegative(req.Discount) {
		return nil, apperr.Invalid("discount", "must not be negative")
	}
	if money.IsNegative(req.PaidAmount) {
		return nil, apperr.Invalid("paid_amount", "must not be negative")
	}

	items := make([]Item, 0, len(req.Items))
	lineTotals := make([]decimal.Decimal, 0, len(req.Items))
	for i, it := range req.Items {
		if money.IsNegative(it.UnitPrice) {
			return nil, apperr.Invalid(fmt.Sprintf("items[%d].unit_price", i), "must not be negative")
		}
		unitPrice := money.Round(it.UnitPrice)
		total := money.LineTotal(it.Quantity, unitPrice)
		items = append(items, Item{
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			UnitPrice:  unitPrice,
			TotalPrice: total,
		})
		lineTotals = append(lineTotals, total)
	}

	subtotal := money.Sum(lineTotals...)
	discount := money.Round(req.Discount)
	if discount.GreaterThan(subtotal) {
		return nil, apperr.Invalid("discount", "must not exceed the subtotal")
	}

	return &Invoice{
		CustomerName:  optional(req.CustomerName),
		CustomerPhone: optional(req.CustomerPhone),
		Subtotal:      subtotal,
		Discount:      discount,
		Total:         money.Round(subtotal.Sub(discount)),
		PaidAmount:    money.Round(req.PaidAmount),
		IsCredit:      req.IsCredit,
		Items:         items,
	}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
