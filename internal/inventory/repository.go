package inventory

import (
	"context"
	"database/sql"
	"fmt"

	"gymdesk/internal/gym"

	"github.com/jmoiron/sqlx"
)

const productSelect = `
		SELECT p.id, p.barcode, p.name, p.category_id, p.purchase_price, p.sale_price,
			p.male_gym_quantity, p.female_gym_quantity, p.image_path, p.notes, p.created_at,
			c.name AS category_name
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateCategory(ctx context.Context, name string, description *string) (*Category, error) {
	query := `
		INSERT INTO categories (name, description)
		VALUES ($1, $2)
		RETURNING id, name, description, created_at
	`

	var c Category
	err := r.db.GetContext(ctx, &c, query, name, description)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repository) UpdateCategory(ctx context.Context, id int, name string, description *string) (*Category, error) {
	query := `
		UPDATE categories SET name = $1, description = $2
		WHERE id = $3
		RETURNING id, name, description, created_at
	`

	var c Category
	err := r.db.GetContext(ctx, &c, query, name, description, id)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repository) GetCategory(ctx context.Context, id int) (*Category, error) {
	var c Category
	err := r.db.GetContext(ctx, &c,
		`SELECT id, name, description, created_at FROM categories WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repository) ListCategories(ctx context.Context) ([]Category, error) {
	categories := []Category{}
	err := r.db.SelectContext(ctx, &categories,
		`SELECT id, name, description, created_at FROM categories ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *repository) DeleteCategory(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	return expectOneRow(result, err)
}

func (r *repository) CreateProduct(ctx context.Context, p *Product) (*Product, error) {
	query := `
		INSERT INTO products (barcode, name, category_id, purchase_price, sale_price,
			male_gym_quantity, female_gym_quantity, image_path, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	created := *p
	err := r.db.QueryRowxContext(ctx, query,
		p.Barcode, p.Name, p.CategoryID, p.PurchasePrice, p.SalePrice,
		p.Stock.Of(gym.BranchMale), p.Stock.Of(gym.BranchFemale), p.ImagePath, p.Notes,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// UpdateProduct saves the shared fields and branch's quantity. The other
// branch's quantity is read back, never written.
func (r *repository) UpdateProduct(ctx context.Context, p *Product, branch gym.Branch) (*Product, error) {
	column, ok := QuantityColumn(branch)
	if !ok {
		return nil, invalidBranch(branch)
	}

	query := fmt.Sprintf(`
		UPDATE products
		SET barcode = $1, name = $2, category_id = $3, purchase_price = $4, sale_price = $5,
			%s = $6, image_path = $7, notes = $8
		WHERE id = $9
		RETURNING `+productColumns, column)

	var row productRow
	err := r.db.GetContext(ctx, &row, query,
		p.Barcode, p.Name, p.CategoryID, p.PurchasePrice, p.SalePrice,
		p.Stock.Of(branch), p.ImagePath, p.Notes, p.ID,
	)
	if err != nil {
		return nil, err
	}

	return row.product(), nil
}

func (r *repository) GetProduct(ctx context.Context, id int) (*Product, error) {
	var row productRow
	err := r.db.GetContext(ctx, &row, productSelect+` WHERE p.id = $1`, id)
	if err != nil {
		return nil, err
	}

	return row.product(), nil
}

func (r *repository) GetProductByBarcode(ctx context.Context, barcode string) (*Product, error) {
	var row productRow
	err := r.db.GetContext(ctx, &row, productSelect+` WHERE p.barcode = $1`, barcode)
	if err != nil {
		return nil, err
	}

	return row.product(), nil
}

func (r *repository) ListProducts(ctx context.Context, search string) ([]Product, error) {
	query := productSelect + `
		WHERE $1 = '' OR p.name ILIKE '%' || $1 || '%' OR p.barcode = $1
		ORDER BY p.created_at DESC
	`

	var rows []productRow
	err := r.db.SelectContext(ctx, &rows, query, search)
	if err != nil {
		return nil, err
	}

	return toProducts(rows), nil
}

func (r *repository) ListLowStock(ctx context.Context, branch gym.Branch) ([]Product, error) {
	column, ok := QuantityColumn(branch)
	if !ok {
		return nil, invalidBranch(branch)
	}

	query := productSelect + fmt.Sprintf(`
		WHERE p.%s < $1
		ORDER BY p.%s ASC, p.name ASC
	`, column, column)

	var rows []productRow
	err := r.db.SelectContext(ctx, &rows, query, LowStockThreshold)
	if err != nil {
		return nil, err
	}

	return toProducts(rows), nil
}

func (r *repository) DeleteProduct(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	return expectOneRow(result, err)
}

func toProducts(rows []productRow) []Product {
	products := make([]Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, *row.product())
	}
	return products
}

func expectOneRow(result sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
