package invoice

import (
	"context"

	"gymdesk/internal/api"
	"gymdesk/internal/gym"
	"gymdesk/internal/inventory"
)

type Repository interface {
	// Create writes the header, its lines and the stock withdrawals in one
	// transaction and returns the products as they stand after the sale.
	Create(ctx context.Context, inv *Invoice, branch gym.Branch) (*Invoice, []inventory.Product, error)
	List(ctx context.Context, gymID int, period api.DateRange) ([]Invoice, error)
	Get(ctx context.Context, id, gymID int) (*Invoice, error)
}
