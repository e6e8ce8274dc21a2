package internalsale

import (
	"context"

	"gymdesk/internal/api"
	"gymdesk/internal/db"
	"gymdesk/internal/gym"
	"gymdesk/internal/inventory"
	"gymdesk/internal/money"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, sale *InternalSale, branch gym.Branch, manualPrice *decimal.Decimal) (*InternalSale, *inventory.Product, error) {
	created := *sale
	var product *inventory.Product

	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		p, err := inventory.LockProduct(ctx, tx, sale.ProductID)
		if err != nil {
			return err
		}

		created.UnitPrice = UnitPrice(*p, sale.PriceType, manualPrice)
		created.TotalPrice = money.LineTotal(sale.Quantity, created.UnitPrice)

		if err := inventory.ApplyInternalSale(p, branch, sale.Quantity); err != nil {
			return err
		}
		if err := inventory.SaveStock(ctx, tx, p, branch); err != nil {
			return err
		}

		err = tx.QueryRowxContext(ctx, `
			INSERT INTO internal_sales (admin_name, product_id, quantity, price_type, unit_price,
				total_price, gym_id, user_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, created_at
		`, created.AdminName, created.ProductID, created.Quantity, created.PriceType, created.UnitPrice,
			created.TotalPrice, created.GymID, created.UserID,
		).Scan(&created.ID, &created.CreatedAt)
		if err != nil {
			return err
		}

		created.ProductName = &p.Name
		product = p
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &created, product, nil
}

func (r *repository) List(ctx context.Context, gymID int, period api.DateRange) ([]InternalSale, error) {
	query := `
		SELECT s.id, s.admin_name, s.product_id, s.quantity, s.price_type, s.unit_price,
			s.total_price, s.gym_id, s.user_id, s.created_at, p.name AS product_name
		FROM internal_sales s
		LEFT JOIN products p ON p.id = s.product_id
		WHERE s.gym_id = $1
			AND ($2::timestamp IS NULL OR s.created_at >= $2)
			AND ($3::timestamp IS NULL OR s.created_at < $3)
		ORDER BY s.created_at DESC
	`

	sales := []InternalSale{}
	err := r.db.SelectContext(ctx, &sales, query, gymID, period.From, period.To)
	if err != nil {
		return nil, err
	}

	return sales, nil
}
