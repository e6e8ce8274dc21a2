package purchase

import (
	"context"

	"gymdesk/internal/api"
	"gymdesk/internal/db"
	"gymdesk/internal/gym"
	"gymdesk/internal/inventory"

	"github.com/jmoiron/sqlx"
)

const purchaseSelect = `
		SELECT pu.id, pu.supplier_name, pu.total_amount, pu.gym_id, pu.user_id, pu.created_at,
			u.full_name AS user_name
		FROM purchases pu
		LEFT JOIN users u ON u.id = pu.user_id`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Purchase, branch gym.Branch) (*Purchase, error) {
	created := *p
	created.Items = make([]Item, 0, len(p.Items))

	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, `
			INSERT INTO purchases (supplier_name, total_amount, gym_id, user_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		`, p.SupplierName, p.TotalAmount, p.GymID, p.UserID).Scan(&created.ID, &created.CreatedAt)
		if err != nil {
			return err
		}

		for _, it := range p.Items {
			product, err := inventory.Restock(ctx, tx, it.ProductID, branch, it.Quantity, it.UnitCost)
			if err != nil {
				return err
			}

			it.PurchaseID = created.ID
			err = tx.QueryRowxContext(ctx, `
				INSERT INTO purchase_items (purchase_id, product_id, quantity, unit_cost, total_cost)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id
			`, it.PurchaseID, it.ProductID, it.Quantity, it.UnitCost, it.TotalCost).Scan(&it.ID)
			if err != nil {
				return err
			}
			it.ProductName = &product.Name
			created.Items = append(created.Items, it)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) List(ctx context.Context, gymID int, period api.DateRange) ([]Purchase, error) {
	query := purchaseSelect + `
		WHERE pu.gym_id = $1
			AND ($2::timestamp IS NULL OR pu.created_at >= $2)
			AND ($3::timestamp IS NULL OR pu.created_at < $3)
		ORDER BY pu.created_at DESC
	`

	purchases := []Purchase{}
	err := r.db.SelectContext(ctx, &purchases, query, gymID, period.From, period.To)
	if err != nil {
		return nil, err
	}

	return purchases, nil
}

func (r *repository) Get(ctx context.Context, id, gymID int) (*Purchase, error) {
	var p Purchase
	err := r.db.GetContext(ctx, &p, purchaseSelect+`
		WHERE pu.id = $1 AND pu.gym_id = $2
	`, id, gymID)
	if err != nil {
		return nil, err
	}

	p.Items = []Item{}
	err = r.db.SelectContext(ctx, &p.Items, `
		SELECT pi.id, pi.purchase_id, pi.product_id, pi.quantity, pi.unit_cost, pi.total_cost,
			pr.name AS product_name
		FROM purchase_items pi
		LEFT JOIN products pr ON pr.id = pi.product_id
		WHERE pi.purchase_id = $1
		ORDER BY pi.id
	`, id)
	if err != nil {
		return nil, err
	}

	return &p, nil
}
