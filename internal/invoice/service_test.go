package invoice

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"gymdesk/internal/api"
	"gymdesk/internal/apperr"
	"gymdesk/internal/auth"
	"gymdesk/internal/gym"
	"gymdesk/internal/inventory"
	"gymdesk/internal/notify"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, inv *Invoice, branch gym.Branch) (*Invoice, []inventory.Product, error) {
	args := m.Called(ctx, inv.InvoiceNumber, branch)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*Invoice), args.Get(1).([]inventory.Product), args.Error(2)
}

func (m *MockRepository) List(ctx context.Context, gymID int, period api.DateRange) ([]Invoice, error) {
	args := m.Called(ctx, gymID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Invoice), args.Error(1)
}

func (m *MockRepository) Get(ctx context.Context, id, gymID int) (*Invoice, error) {
	args := m.Called(ctx, id, gymID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Invoice), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Publish(ctx context.Context, alert notify.Alert) error {
	return m.Called(ctx, alert).Error(0)
}

var maleSession = auth.Session{ID: 1, Username: "admin_male", Role: "admin", GymID: 1, GymType: gym.BranchMale}

func validRequest() CreateRequest {
	return CreateRequest{
		Items:    []ItemRequest{{ProductID: 5, Quantity: 4, UnitPrice: dec("250")}},
		Discount: dec("100"),
	}
}

// newTestService hands out INV-00000001-001, INV-00000002-001, ...
func newTestService(repo *MockRepository, n notify.Notifier) *service {
	svc := NewService(repo, n).(*service)
	seq := 0
	svc.number = func() string {
		seq++
		return fmt.Sprintf("INV-%08d-001", seq)
	}
	return svc
}

func TestService_CreateInvoice(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	notifier := new(MockNotifier)

	repo.On("Create", ctx, "INV-00000001-001", gym.BranchMale).Return(
		&Invoice{ID: 31, InvoiceNumber: "INV-00000001-001", Total: dec("900")},
		[]inventory.Product{{ID: 5, Name: "Whey 1kg", Stock: inventory.NewStock(3, 20)}},
		nil,
	)
	notifier.On("Publish", ctx, notify.LowStockAlert(1, "male", "Whey 1kg", 3)).Return(nil).Once()

	inv, err := newTestService(repo, notifier).CreateInvoice(ctx, maleSession, validRequest())
	require.NoError(t, err)
	assert.Equal(t, 31, inv.ID)
	repo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestService_CreateInvoice_RetriesDuplicateNumber(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	duplicate := &pgconn.PgError{Code: "23505"}

	repo.On("Create", ctx, "INV-00000001-001", gym.BranchMale).Return(nil, nil, duplicate).Once()
	repo.On("Create", ctx, "INV-00000002-001", gym.BranchMale).Return(nil, nil, duplicate).Once()
	repo.On("Create", ctx, "INV-00000003-001", gym.BranchMale).
		Return(&Invoice{ID: 32, InvoiceNumber: "INV-00000003-001"}, []inventory.Product{}, nil).Once()

	inv, err := newTestService(repo, notify.Nop{}).CreateInvoice(ctx, maleSession, validRequest())
	require.NoError(t, err)
	assert.Equal(t, "INV-00000003-001", inv.InvoiceNumber)
	repo.AssertExpectations(t)
}

func TestService_CreateInvoice_GivesUpAfterThreeCollisions(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("Create", ctx, mock.Anything, gym.BranchMale).Return(nil, nil, &pgconn.PgError{Code: "23505"})

	_, err := newTestService(repo, notify.Nop{}).CreateInvoice(ctx, maleSession, validRequest())

	var de *apperr.DataAccessError
	assert.ErrorAs(t, err, &de)
	repo.AssertNumberOfCalls(t, "Create", 3)
}

func TestService_CreateInvoice_InsufficientStock(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	notifier := new(MockNotifier)
	repo.On("Create", ctx, mock.Anything, gym.BranchMale).
		Return(nil, nil, &apperr.InsufficientStockError{ProductID: 5, Branch: "male", Available: 2, Requested: 4})

	_, err := newTestService(repo, notifier).CreateInvoice(ctx, maleSession, validRequest())

	assert.True(t, apperr.IsInsufficientStock(err))
	repo.AssertNumberOfCalls(t, "Create", 1)
	notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestService_CreateInvoice_UnknownProduct(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("Create", ctx, mock.Anything, gym.BranchMale).Return(nil, nil, sql.ErrNoRows)

	_, err := newTestService(repo, notify.Nop{}).CreateInvoice(ctx, maleSession, validRequest())

	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "product_id", ve.Field)
}

func TestService_CreateInvoice_InvalidRequestSkipsRepository(t *testing.T) {
	repo := new(MockRepository)
	req := validRequest()
	req.Discount = dec("1001")

	_, err := newTestService(repo, notify.Nop{}).CreateInvoice(context.Background(), maleSession, req)

	assert.True(t, apperr.IsValidation(err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_GetInvoice_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("Get", ctx, 9, 1).Return(nil, sql.ErrNoRows)

	_, err := newTestService(repo, notify.Nop{}).GetInvoice(ctx, 9, 1)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
