package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID          int       `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Product is shared by both branches; only Stock is branch specific.
type Product struct {
	ID            int             `db:"id" json:"id"`
	Barcode       *string         `db:"barcode" json:"barcode"`
	Name          string          `db:"name" json:"name"`
	CategoryID    *int            `db:"category_id" json:"category_id"`
	PurchasePrice decimal.Decimal `db:"purchase_price" json:"purchase_price"`
	SalePrice     decimal.Decimal `db:"sale_price" json:"sale_price"`
	Stock         Stock           `db:"-" json:"stock"`
	ImagePath     *string         `db:"image_path" json:"image_path"`
	Notes         *string         `db:"notes" json:"notes"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`

	CategoryName *string `db:"category_name" json:"category_name,omitempty"`
}

// productRow carries the two quantity columns that Product only exposes through Stock.
type productRow struct {
	Product
	MaleQuantity   int `db:"male_gym_quantity"`
	FemaleQuantity int `db:"female_gym_quantity"`
}

func (r productRow) product() *Product {
	p := r.Product
	p.Stock = NewStock(r.MaleQuantity, r.FemaleQuantity)
	return &p
}

type CategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description *string `json:"description"`
}

// ProductRequest sets the stock of the caller's branch only.
type ProductRequest struct {
	Barcode       string          `json:"barcode" validate:"max=64"`
	Name          string          `json:"name" validate:"required,max=200"`
	CategoryID    *int            `json:"category_id"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	Quantity      int             `json:"quantity" validate:"gte=0"`
	ImagePath     *string         `json:"image_path"`
	Notes         *string         `json:"notes"`
}
