package invoice

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
	"gymdesk/internal/xid"
)

// numberAttempts bounds how often a colliding invoice number is regenerated.
const numberAttempts = 3

type Service interface {
	CreateInvoice(ctx context.Context, session auth.Session, req CreateRequest) (*Invoice, error)
	ListInvoices(ctx context.Context, gymID int, period api.DateRange) ([]Invoice, error)
	GetInvoice(ctx context.Context, id, gymID int) (*Invoice, error)
}

type service struct {
	repo     Repository
	notifier notify.Notifier
	number   func() string
}

func NewService(repo Repository, notifier notify.Notifier) Service {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &service{
		repo:     repo,
		notifier: notifier,
		number:   func() string { return xid.InvoiceNumber(xid.InvoicePrefix) },
	}
}

// CreateInvoice records a sale from the session's branch. A duplicate invoice
// number reruns the whole transaction with a fresh number.
func (s *service) CreateInvoice(ctx context.Context, session auth.Session, req CreateRequest) (*Invoice, error) {
	inv, err := Build(req)
	if err != nil {
		return nil, err
	}
	inv.GymID = session.GymID
	inv.UserID = session.ID
	branch := session.GymType

	var (
		created  *Invoice
		products []inventory.Product
	)
	for attempt := 1; ; attempt++ {
		inv.InvoiceNumber = s.number()
		created, products, err = s.repo.Create(ctx, inv, branch)
		if err == nil {
			break
		}
		if db.IsUniqueViolation(err) && attempt < numberAttempts {
			metrics.RecordInvoiceNumberRetry()
			logger.Info("invoice number collision, retrying", "invoice_number", inv.InvoiceNumber, "attempt", attempt)
			continue
		}
		return nil, s.classify(err, string(branch))
	}

	metrics.RecordInvoice(string(branch), created.IsCredit)
	logger.Info("invoice created",
		"invoice_id", created.ID,
		"invoice_number", created.InvoiceNumber,
		"gym_id", created.GymID,
		"total", created.Total.String(),
	)

	inventory.PublishLowStock(ctx, s.notifier, session.GymID, branch, products)
	return created, nil
}

func (s *service) ListInvoices(ctx context.Context, gymID int, period api.DateRange) ([]Invoice, error) {
	invoices, err := s.repo.List(ctx, gymID, period)
	if err != nil {
		return nil, apperr.Wrap("list invoices", err)
	}
	return invoices, nil
}

func (s *service) GetInvoice(ctx context.Context, id, gymID int) (*Invoice, error) {
	inv, err := s.repo.Get(ctx, id, gymID)
	if err != nil {
		return nil, apperr.Wrap("get invoice", err)
	}
	return inv, nil
}

func (s *service) classify(err error, branch string) error {
	switch {
	case apperr.IsInsufficientStock(err):
		metrics.RecordStockRejection(branch)
		return err
	case errors.Is(err, sql.ErrNoRows), db.IsForeignKeyViolation(err):
		return apperr.Invalid("product_id", "product not found")
	}
	return apperr.Wrap("create invoice", err)
}
