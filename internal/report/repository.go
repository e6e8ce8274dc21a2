package report

import (
	"context"
	"fmt"

	"gymdesk/internal/apperr"
	"gymdesk/internal/gym"
	"gymdesk/internal/inventory"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ProductStats(ctx context.Context, branch gym.Branch) (ProductStats, error) {
	column, ok := inventory.QuantityColumn(branch)
	if !ok {
		return ProductStats{}, apperr.Invalid("branch", fmt.Sprintf("unknown branch %q", branch))
	}

	query := fmt.Sprintf(`
		SELECT COUNT(*) AS total,
			COUNT(*) FILTER (WHERE %s < $1) AS low_stock
		FROM products
	`, column)

	var stats ProductStats
	err := r.db.GetContext(ctx, &stats, query, inventory.LowStockThreshold)
	return stats, err
}

func (r *repository) SalesStats(ctx context.Context, gymID int, p Period) (SalesStats, error) {
	query := `
		SELECT COUNT(*) AS count, COALESCE(SUM(total), 0) AS revenue
		FROM invoices
		WHERE gym_id = $1 AND created_at >= $2 AND created_at < $3
	`

	var stats SalesStats
	err := r.db.GetContext(ctx, &stats, query, gymID, p.From, p.To)
	return stats, err
}

func (r *repository) SubscriptionRevenue(ctx context.Context, gymID int, p Period) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(price_paid), 0)
		FROM subscribers
		WHERE gym_id = $1 AND created_at >= $2 AND created_at < $3
	`

	var revenue decimal.Decimal
	err := r.db.GetContext(ctx, &revenue, query, gymID, p.From, p.To)
	return revenue, err
}

func (r *repository) ProfitLines(ctx context.Context, gymID int, p Period) ([]ProfitLine, error) {
	query := `
		SELECT ii.quantity, ii.total_price, pr.purchase_price
		FROM invoice_items ii
		JOIN invoices i ON i.id = ii.invoice_id
		JOIN products pr ON pr.id = ii.product_id
		WHERE i.gym_id = $1 AND i.created_at >= $2 AND i.created_at < $3
	`

	var lines []ProfitLine
	err := r.db.SelectContext(ctx, &lines, query, gymID, p.From, p.To)
	if err != nil {
		return nil, err
	}

	return lines, nil
}
