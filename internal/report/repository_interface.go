package report

import (
	"context"

	"gymdesk/internal/gym"

	"github.com/shopspring/decimal"
)

type Repository interface {
	ProductStats(ctx context.Context, branch gym.Branch) (ProductStats, error)
	SalesStats(ctx context.Context, gymID int, p Period) (SalesStats, error)
	SubscriptionRevenue(ctx context.Context, gymID int, p Period) (decimal.Decimal, error)
	ProfitLines(ctx context.Context, gymID int, p Period) ([]ProfitLine, error)
}
