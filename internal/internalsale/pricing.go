package internalsale

import (
	"gymdesk/internal/apperr"
	"gymdesk/internal/inventory"
	"gymdesk/internal/money"

	"github.com/shopspring/decimal"
)

// Validate checks req before any row is locked.
func Validate(req CreateRequest) error {
	if err := apperr.ValidateStruct(req); err != nil {
		return err
	}
	if req.PriceType == PriceTypeManual {
		if req.ManualPrice == nil {
			return apperr.Invalid("manual_price", "is required for manual pricing")
		}
		if money.IsNegative(*req.ManualPrice) {
			return apperr.Invalid("manual_price", "must not be negative")
		}
	}
	return nil
}

// UnitPrice resolves the charged price from the locked product row.
func UnitPrice(p inventory.Product, priceType PriceType, manual *decimal.Decimal) decimal.Decimal {
	if priceType == PriceTypePurchase || manual == nil {
		return money.Round(p.PurchasePrice)
	}
	return money.Round(*manual)
}
