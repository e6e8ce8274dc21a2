package purchase

import (
	"time"

	"github.com/shopspring/decimal"
)

type Purchase struct {
	ID           int             `db:"id" json:"id"`
	SupplierName *string         `db:"supplier_name" json:"supplier_name"`
	TotalAmount  decimal.Decimal `db:"total_amount" json:"total_amount"`
	GymID        int             `db:"gym_id" json:"gym_id"`
	UserID       int             `db:"user_id" json:"user_id"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`

	UserName *string `db:"user_name" json:"user_name,omitempty"`
	Items    []Item  `db:"-" json:"items,omitempty"`
}

type Item struct {
	ID         int             `db:"id" json:"id"`
	PurchaseID int             `db:"purchase_id" json:"purchase_id"`
	ProductID  int             `db:"product_id" json:"product_id"`
	Quantity   int             `db:"quantity" json:"quantity"`
	UnitCost   decimal.Decimal `db:"unit_cost" json:"unit_cost"`
	TotalCost  decimal.Decimal `db:"total_cost" json:"total_cost"`

	ProductName *string `db:"product_name" json:"product_name,omitempty"`
}

type ItemRequest struct {
	ProductID int             `json:"product_id" validate:"required,gt=0"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

type CreateRequest struct {
	SupplierName string        `json:"supplier_name" validate:"max=200"`
	Items        []ItemRequest `json:"items" validate:"required,min=1,dive"`
}
