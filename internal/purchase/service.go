package purchase

import (
	"context"
	"database/sql"
	"errors"

	"gymdesk/internal/api"
	"gymdesk/internal/apperr"
	"gymdesk/internal/auth"
	"gymdesk/internal/db"
	"gymdesk/internal/logger"
	"gymdesk/internal/metrics"
)

type Service interface {
	CreatePurchase(ctx context.Context, session auth.Session, req CreateRequest) (*Purchase, error)
	ListPurchases(ctx context.Context, gymID int, period api.DateRange) ([]Purchase, error)
	GetPurchase(ctx context.Context, id, gymID int) (*Purchase, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

// CreatePurchase restocks the session's branch and records each unit cost as
// the product's new purchase price.
func (s *service) CreatePurchase(ctx context.Context, session auth.Session, req CreateRequest) (*Purchase, error) {
	p, err := Build(req)
	if err != nil {
		return nil, err
	}
	p.GymID = session.GymID
	p.UserID = session.ID

	created, err := s.repo.Create(ctx, p, session.GymType)
	if errors.Is(err, sql.ErrNoRows) || db.IsForeignKeyViolation(err) {
		return nil, apperr.Invalid("product_id", "product not found")
	}
	if err != nil {
		return nil, apperr.Wrap("create purchase", err)
	}

	metrics.RecordPurchase(string(session.GymType))
	logger.Info("purchase created",
		"purchase_id", created.ID,
		"gym_id", created.GymID,
		"total_amount", created.TotalAmount.String(),
	)
	return created, nil
}

func (s *service) ListPurchases(ctx context.Context, gymID int, period api.DateRange) ([]Purchase, error) {
	purchases, err := s.repo.List(ctx, gymID, period)
	if err != nil {
		return nil, apperr.Wrap("list purchases", err)
	}
	return purchases, nil
}

func (s *service) GetPurchase(ctx context.Context, id, gymID int) (*Purchase, error) {
	p, err := s.repo.Get(ctx, id, gymID)
	if err != nil {
		return nil, apperr.Wrap("get purchase", err)
	}
	return p, nil
}
