package report

import (
	"context"
	"time"

	"gymdesk/internal/apperr"
	"gymdesk/internal/auth"
	"gymdesk/internal/money"
	"gymdesk/internal/subscription"

	"github.com/shopspring/decimal"
)

// RosterRefresher brings stored subscriber statuses up to date and counts them.
type RosterRefresher interface {
	RefreshStatuses(ctx context.Context, gymID int) (subscription.StatusCounts, error)
}

type Service interface {
	Dashboard(ctx context.Context, session auth.Session, year, month int) (*Dashboard, error)
	CurrentMonth() (year, month int)
}

type service struct {
	repo   Repository
	roster RosterRefresher
	now    func() time.Time
}

func NewService(repo Repository, roster RosterRefresher) Service {
	return &service{
		repo:   repo,
		roster: roster,
		now:    time.Now,
	}
}

func (s *service) CurrentMonth() (int, int) {
	t := s.now()
	return t.Year(), int(t.Month())
}

func (s *service) Dashboard(ctx context.Context, session auth.Session, year, month int) (*Dashboard, error) {
	if month < 1 || month > 12 {
		return nil, apperr.Invalid("month", "must be between 1 and 12")
	}
	if year < 2000 || year > 9999 {
		return nil, apperr.Invalid("year", "must be a four-digit year from 2000")
	}

	counts, err := s.roster.RefreshStatuses(ctx, session.GymID)
	if err != nil {
		return nil, err
	}

	products, err := s.repo.ProductStats(ctx, session.GymType)
	if err != nil {
		return nil, apperr.Wrap("product stats", err)
	}

	period := MonthPeriod(year, month)

	sales, err := s.repo.SalesStats(ctx, session.GymID, period)
	if err != nil {
		return nil, apperr.Wrap("sales stats", err)
	}

	subRevenue, err := s.repo.SubscriptionRevenue(ctx, session.GymID, period)
	if err != nil {
		return nil, apperr.Wrap("subscription revenue", err)
	}

	lines, err := s.repo.ProfitLines(ctx, session.GymID, period)
	if err != nil {
		return nil, apperr.Wrap("profit lines", err)
	}

	profit := decimal.Zero
	for _, l := range lines {
		profit = profit.Add(money.Profit(l.TotalPrice, l.Quantity, l.PurchasePrice))
	}

	total := money.Sum(sales.Revenue, subRevenue)

	return &Dashboard{
		Year:                year,
		Month:               month,
		Branch:              session.GymType,
		Subscribers:         counts,
		ActiveRate:          percent(decimal.NewFromInt(int64(counts.Active)), decimal.NewFromInt(int64(counts.Total))),
		TotalProducts:       products.Total,
		LowStockProducts:    products.LowStock,
		SalesCount:          sales.Count,
		SalesRevenue:        money.Round(sales.Revenue),
		SubscriptionRevenue: money.Round(subRevenue),
		TotalRevenue:        total,
		Profit:              money.Round(profit),
		ProfitMargin:        percent(profit, total),
	}, nil
}

// percent is part/whole*100 to one decimal place, zero when whole is zero.
func percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Mul(decimal.NewFromInt(100)).Div(whole).Round(1)
}
