package inventory

import (
	"context"

	"gymdesk/internal/gym"
)

type Repository interface {
	CreateCategory(ctx context.Context, name string, description *string) (*Category, error)
	UpdateCategory(ctx context.Context, id int, name string, description *string) (*Category, error)
	GetCategory(ctx context.Context, id int) (*Category, error)
	ListCategories(ctx context.Context) ([]Category, error)
	DeleteCategory(ctx context.Context, id int) error

	CreateProduct(ctx context.Context, p *Product) (*Product, error)
	UpdateProduct(ctx context.Context, p *Product, branch gym.Branch) (*Product, error)
	GetProduct(ctx context.Context, id int) (*Product, error)
	GetProductByBarcode(ctx context.Context, barcode string) (*Product, error)
	ListProducts(ctx context.Context, search string) ([]Product, error)
	ListLowStock(ctx context.Context, branch gym.Branch) ([]Product, error)
	DeleteProduct(ctx context.Context, id int) error
}
