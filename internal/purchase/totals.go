package purchase

import (
	"fmt"

	"gymdesk/internal/apperr"
	"gymdesk/internal/money"

	"github.com/shopspring/decimal"
)

// Build validates req and prices every line; the total amount is the sum of
// quantity × unit cost.
func Build(req CreateRequest) (*Purchase, error) {
	if err := apperr.ValidateStruct(req); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(req.Items))
	costs := make([]decimal.Decimal, 0, len(req.Items))
	for i, it := range req.Items {
		if money.IsNegative(it.UnitCost) {
			return nil, apperr.Invalid(fmt.Sprintf("items[%d].unit_cost", i), "must not be negative")
		}
		unitCost := money.Round(it.UnitCost)
		total := money.LineTotal(it.Quantity, unitCost)
		items = append(items, Item{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitCost:  unitCost,
			TotalCost: total,
		})
		costs = append(costs, total)
	}

	p := &Purchase{
		TotalAmount: money.Sum(costs...),
		Items:       items,
	}
	if req.SupplierName != "" {
		p.SupplierName = &req.SupplierName
	}
	return p, nil
}
