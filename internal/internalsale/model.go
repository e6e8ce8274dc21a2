package internalsale

import (
	"time"

	"github.com/shopspring/decimal"
)

type PriceType string

const (
	// PriceTypePurchase charges the product's purchase price at the time of sale.
	PriceTypePurchase PriceType = "purchase"
	PriceTypeManual   PriceType = "manual"
)

// InternalSale is a stock withdrawal for staff or management, charged at cost
// or at a price typed in by the operator.
type InternalSale struct {
	ID         int             `db:"id" json:"id"`
	AdminName  string          `db:"admin_name" json:"admin_name"`
	ProductID  int             `db:"product_id" json:"product_id"`
	Quantity   int             `db:"quantity" json:"quantity"`
	PriceType  PriceType       `db:"price_type" json:"price_type"`
	UnitPrice  decimal.Decimal `db:"unit_price" json:"unit_price"`
	TotalPrice decimal.Decimal `db:"total_price" json:"total_price"`
	GymID      int             `db:"gym_id" json:"gym_id"`
	UserID     int             `db:"user_id" json:"user_id"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`

	ProductName *string `db:"product_name" json:"product_name,omitempty"`
}

type CreateRequest struct {
	AdminName   string           `json:"admin_name" validate:"required,max=200"`
	ProductID   int              `json:"product_id" validate:"required,gt=0"`
	Quantity    int              `json:"quantity" validate:"gt=0"`
	PriceType   PriceType        `json:"price_type" validate:"required,oneof=purchase manual"`
	ManualPrice *decimal.Decimal `json:"manual_price"`
}
