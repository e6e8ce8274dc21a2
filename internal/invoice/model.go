package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

type Invoice struct {
	ID            int             `db:"id" json:"id"`
	InvoiceNumber string          `db:"invoice_number" json:"invoice_number"`
	CustomerName  *string         `db:"customer_name" json:"customer_name"`
	CustomerPhone *string         `db:"customer_phone" json:"customer_phone"`
	Subtotal      decimal.Decimal `db:"subtotal" json:"subtotal"`
	Discount      decimal.Decimal `db:"discount" json:"discount"`
	Total         decimal.Decimal `db:"total" json:"total"`
	PaidAmount    decimal.Decimal `db:"paid_amount" json:"paid_amount"`
	IsCredit      bool            `db:"is_credit" json:"is_credit"`
	GymID         int             `db:"gym_id" json:"gym_id"`
	UserID        int             `db:"user_id" json:"user_id"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`

	UserName *string `db:"user_name" json:"user_name,omitempty"`
	Items    []Item  `db:"-" json:"items,omitempty"`
}

type Item struct {
	ID         int             `db:"id" json:"id"`
	InvoiceID  int             `db:"invoice_id" json:"invoice_id"`
	ProductID  int             `db:"product_id" json:"product_id"`
	Quantity   int             `db:"quantity" json:"quantity"`
	UnitPrice  decimal.Decimal `db:"unit_price" json:"unit_price"`
	TotalPrice decimal.Decimal `db:"total_price" json:"total_price"`

	ProductName *string `db:"product_name" json:"product_name,omitempty"`
}

type ItemRequest struct {
	ProductID int             `json:"product_id" validate:"required,gt=0"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type CreateRequest struct {
	CustomerName  string          `json:"customer_name" validate:"max=200"`
	CustomerPhone string          `json:"customer_phone" validate:"max=50"`
	Items         []ItemRequest   `json:"items" validate:"required,min=1,dive"`
	Discount      decimal.Decimal `json:"discount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	IsCredit      bool            `json:"is_credit"`
}
