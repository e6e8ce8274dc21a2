package internalsale

import (
	"context"

	"gymdesk/internal/api"
	"gymdesk/internal/gym"
	"gymdesk/internal/inventory"

	"github.com/shopspring/decimal"
)

type Repository interface {
	// Create prices the sale from the locked product, withdraws the stock and
	// inserts the row in one transaction.
	Create(ctx context.Context, sale *InternalSale, branch gym.Branch, manualPrice *decimal.Decimal) (*InternalSale, *inventory.Product, error)
	List(ctx context.Context, gymID int, period api.DateRange) ([]InternalSale, error)
}
