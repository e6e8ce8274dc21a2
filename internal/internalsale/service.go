package internalsale

import (
	"context"
	"database/sql"
	"errors"

	"gymdesk/internal/api"
	"gymdesk/internal/apperr"
	"gymdesk/internal/auth"
	"gymdesk/internal/db"
	"gymdesk/internal/inventory"
	"gymdesk/internal/logger"
	"gymdesk/internal/metrics"
	"gymdesk/internal/notify"
)

type Service interface {
	CreateInternalSale(ctx context.Context, session auth.Session, req CreateRequest) (*InternalSale, error)
	ListInternalSales(ctx context.Context, gymID int, period api.DateRange) ([]InternalSale, error)
}

type service struct {
	repo     Repository
	notifier notify.Notifier
}

func NewService(repo Repository, notifier notify.Notifier) Service {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &service{
		repo:     repo,
		notifier: notifier,
	}
}

func (s *service) CreateInternalSale(ctx context.Context, session auth.Session, req CreateRequest) (*InternalSale, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}

	branch := session.GymType
	sale := &InternalSale{
		AdminName: req.AdminName,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		PriceType: req.PriceType,
		GymID:     session.GymID,
		UserID:    session.ID,
	}

	created, product, err := s.repo.Create(ctx, sale, branch, req.ManualPrice)
	switch {
	case err == nil:
	case apperr.IsInsufficientStock(err):
		metrics.RecordStockRejection(string(branch))
		return nil, err
	case errors.Is(err, sql.ErrNoRows), db.IsForeignKeyViolation(err):
		return nil, apperr.Invalid("product_id", "product not found")
	default:
		return nil, apperr.Wrap("create internal sale", err)
	}

	metrics.RecordInternalSale(string(branch), string(created.PriceType))
	logger.Info("internal sale created",
		"internal_sale_id", created.ID,
		"product_id", created.ProductID,
		"price_type", created.PriceType,
		"total_price", created.TotalPrice.String(),
	)

	inventory.PublishLowStock(ctx, s.notifier, session.GymID, branch, []inventory.Product{*product})
	return created, nil
}

func (s *service) ListInternalSales(ctx context.Context, gymID int, period api.DateRange) ([]InternalSale, error) {
	sales, err := s.repo.List(ctx, gymID, period)
	if err != nil {
		return nil, apperr.Wrap("list internal sales", err)
	}
	return sales, nil
}
