package inventory

import (
	"context"
	"fmt"

	"gymdesk/internal/apperr"
	"gymdesk/internal/gym"
	"gymdesk/internal/money"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const LowStockThreshold = 5

const productColumns = `id, barcode, name, category_id, purchase_price, sale_price,
	male_gym_quantity, female_gym_quantity, image_path, notes, created_at`

// ApplyPurchase adds qty to branch's stock and makes unitCost the product's
// purchase price. The last cost paid replaces any earlier one.
func ApplyPurchase(p *Product, branch gym.Branch, qty int, unitCost decimal.Decimal) error {
	if qty <= 0 {
		return apperr.Invalid("quantity", "must be greater than 0")
	}
	if money.IsNegative(unitCost) {
		return apperr.Invalid("unit_cost", "must not be negative")
	}
	if !p.Stock.Adjust(branch, qty) {
		return invalidBranch(branch)
	}
	p.PurchasePrice = money.Round(unitCost)
	return nil
}

func ApplySale(p *Product, branch gym.Branch, qty int) error {
	return withdraw(p, branch, qty)
}

// ApplyInternalSale follows the sale rule; only the recorded price differs.
func ApplyInternalSale(p *Product, branch gym.Branch, qty int) error {
	return withdraw(p, branch, qty)
}

func IsLowStock(p Product, branch gym.Branch) bool {
	return p.Stock.Of(branch) < LowStockThreshold
}

// withdraw leaves p unchanged on any error.
func withdraw(p *Product, branch gym.Branch, qty int) error {
	if qty <= 0 {
		return apperr.Invalid("quantity", "must be greater than 0")
	}
	if !branch.Valid() {
		return invalidBranch(branch)
	}

	available := p.Stock.Of(branch)
	if available-qty < 0 {
		return &apperr.InsufficientStockError{
			ProductID: p.ID,
			Branch:    string(branch),
			Available: available,
			Requested: qty,
		}
	}

	p.Stock.Adjust(branch, -qty)
	return nil
}

func invalidBranch(branch gym.Branch) error {
	return apperr.Invalid("branch", fmt.Sprintf("unknown branch %q", branch))
}

// LockProduct reads the product row inside a transaction and holds it until commit.
func LockProduct(ctx context.Context, q sqlx.QueryerContext, id int) (*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`

	var row productRow
	if err := sqlx.GetContext(ctx, q, &row, query, id); err != nil {
		return nil, err
	}
	return row.product(), nil
}

// SaveStock writes branch's quantity back. The other branch's column is not
// part of the statement.
func SaveStock(ctx context.Context, e sqlx.ExecerContext, p *Product, branch gym.Branch) error {
	column, ok := QuantityColumn(branch)
	if !ok {
		return invalidBranch(branch)
	}

	query := fmt.Sprintf(`UPDATE products SET %s = $1 WHERE id = $2`, column)
	_, err := e.ExecContext(ctx, query, p.Stock.Of(branch), p.ID)
	return err
}

// Sell locks the product, applies the sale rule and persists the branch quantity.
func Sell(ctx context.Context, ext sqlx.ExtContext, productID int, branch gym.Branch, qty int) (*Product, error) {
	p, err := LockProduct(ctx, ext, productID)
	if err != nil {
		return nil, err
	}
	if err := ApplySale(p, branch, qty); err != nil {
		return nil, err
	}
	if err := SaveStock(ctx, ext, p, branch); err != nil {
		return nil, err
	}
	return p, nil
}

// Restock locks the product, applies the purchase rule and persists both the
// branch quantity and the new purchase price.
func Restock(ctx context.Context, ext sqlx.ExtContext, productID int, branch gym.Branch, qty int, unitCost decimal.Decimal) (*Product, error) {
	p, err := LockProduct(ctx, ext, productID)
	if err != nil {
		return nil, err
	}
	if err := ApplyPurchase(p, branch, qty, unitCost); err != nil {
		return nil, err
	}

	column, _ := QuantityColumn(branch)
	query := fmt.Sprintf(`UPDATE products SET %s = $1, purchase_price = $2 WHERE id = $3`, column)
	if _, err := ext.ExecContext(ctx, query, p.Stock.Of(branch), p.PurchasePrice, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}
