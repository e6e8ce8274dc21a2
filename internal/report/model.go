package report

import (
	"time"

	"gymdesk/internal/gym"
	"gymdesk/internal/subscription"

	"github.com/shopspring/decimal"
)

// Dashboard is the front-desk summary for one branch and calendar month.
type Dashboard struct {
	Year   int        `json:"year"`
	Month  int        `json:"month"`
	Branch gym.Branch `json:"branch"`

	Subscribers subscription.StatusCounts `json:"subscribers"`
	// Percentage of the roster that is active, one decimal place.
	ActiveRate decimal.Decimal `json:"active_rate"`

	TotalProducts    int `json:"total_products"`
	LowStockProducts int `json:"low_stock_products"`

	SalesCount          int             `json:"sales_count"`
	SalesRevenue        decimal.Decimal `json:"sales_revenue"`
	SubscriptionRevenue decimal.Decimal `json:"subscription_revenue"`
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	Profit              decimal.Decimal `json:"profit"`
	// Profit as a percentage of total revenue, one decimal place.
	ProfitMargin decimal.Decimal `json:"profit_margin"`
}

type ProductStats struct {
	Total    int `db:"total"`
	LowStock int `db:"low_stock"`
}

type SalesStats struct {
	Count   int             `db:"count"`
	Revenue decimal.Decimal `db:"revenue"`
}

// ProfitLine is one sold invoice line priced against the product's current cost.
type ProfitLine struct {
	Quantity      int             `db:"quantity"`
	TotalPrice    decimal.Decimal `db:"total_price"`
	PurchasePrice decimal.Decimal `db:"purchase_price"`
}

// Period is the half-open [From, To) month window.
type Period struct {
	From time.Time
	To   time.Time
}

func MonthPeriod(year, month int) Period {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return Period{From: from, To: from.AddDate(0, 1, 0)}
}
