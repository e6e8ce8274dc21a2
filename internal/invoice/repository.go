package invoice

import (
	"context"

	"gymdesk/internal/api"
	"gymdesk/internal/db"
	"gymdesk/internal/gym"
	"gymdesk/internal/inventory"

	"github.com/jmoiron/sqlx"
)

const invoiceSelect = `
		SELECT i.id, i.invoice_number, i.customer_name, i.customer_phone, i.subtotal, i.discount,
			i.total, i.paid_amount, i.is_credit, i.gym_id, i.user_id, i.created_at,
			u.full_name AS user_name
		FROM invoices i
		LEFT JOIN users u ON u.id = i.user_id`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, inv *Invoice, branch gym.Branch) (*Invoice, []inventory.Product, error) {
	created := *inv
	created.Items = make([]Item, 0, len(inv.Items))
	var products []inventory.Product

	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, `
			INSERT INTO invoices (invoice_number, customer_name, customer_phone, subtotal, discount,
				total, paid_amount, is_credit, gym_id, user_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id, created_at
		`, inv.InvoiceNumber, inv.CustomerName, inv.CustomerPhone, inv.Subtotal, inv.Discount,
			inv.Total, inv.PaidAmount, inv.IsCredit, inv.GymID, inv.UserID,
		).Scan(&created.ID, &created.CreatedAt)
		if err != nil {
			return err
		}

		for _, it := range inv.Items {
			p, err := inventory.Sell(ctx, tx, it.ProductID, branch, it.Quantity)
			if err != nil {
				return err
			}
			products = append(products, *p)

			it.InvoiceID = created.ID
			err = tx.QueryRowxContext(ctx, `
				INSERT INTO invoice_items (invoice_id, product_id, quantity, unit_price, total_price)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id
			`, it.InvoiceID, it.ProductID, it.Quantity, it.UnitPrice, it.TotalPrice).Scan(&it.ID)
			if err != nil {
				return err
			}
			it.ProductName = &p.Name
			created.Items = append(created.Items, it)
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &created, products, nil
}

func (r *repository) List(ctx context.Context, gymID int, period api.DateRange) ([]Invoice, error) {
	query := invoiceSelect + `
		WHERE i.gym_id = $1
			AND ($2::timestamp IS NULL OR i.created_at >= $2)
			AND ($3::timestamp IS NULL OR i.created_at < $3)
		ORDER BY i.created_at DESC
	`

	invoices := []Invoice{}
	err := r.db.SelectContext(ctx, &invoices, query, gymID, period.From, period.To)
	if err != nil {
		return nil, err
	}

	return invoices, nil
}

func (r *repository) Get(ctx context.Context, id, gymID int) (*Invoice, error) {
	var inv Invoice
	err := r.db.GetContext(ctx, &inv, invoiceSelect+`
		WHERE i.id = $1 AND i.gym_id = $2
	`, id, gymID)
	if err != nil {
		return nil, err
	}

	inv.Items = []Item{}
	err = r.db.SelectContext(ctx, &inv.Items, `
		SELECT ii.id, ii.invoice_id, ii.product_id, ii.quantity, ii.unit_price, ii.total_price,
			p.name AS product_name
		FROM invoice_items ii
		LEFT JOIN products p ON p.id = ii.product_id
		WHERE ii.invoice_id = $1
		ORDER BY ii.id
	`, id)
	if err != nil {
		return nil, err
	}

	return &inv, nil
}
