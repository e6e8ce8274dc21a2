package purchase

import (
	"context"
	"database/sql"
	"testing"

	"gymdesk/internal/api"
	"gymdesk/internal/apperr"
	"gymdesk/internal/auth"
	"gymdesk/internal/gym"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, p *Purchase, branch gym.Branch) (*Purchase, error) {
	args := m.Called(ctx, p, branch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Purchase), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, gymID int, period api.DateRange) ([]Purchase, error) {
	args := m.Called(ctx, gymID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Purchase), args.Error(1)
}

func (m *MockRepository) Get(ctx context.Context, id, gymID int) (*Purchase, error) {
	args := m.Called(ctx, id, gymID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Purchase), args.Error(1)
}

var femaleSession = auth.Session{ID: 2, Username: "admin_female", Role: "admin", GymID: 2, GymType: gym.BranchFemale}

func TestBuild(t *testing.T) {
	p, err := Build(CreateRequest{
		SupplierName: "Nutri DZ",
		Items: []ItemRequest{
			{ProductID: 5, Quantity: 10, UnitCost: decimal.RequireFromString("280.25")},
			{ProductID: 6, Quantity: 3, UnitCost: decimal.NewFromInt(50)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "2952.5", p.TotalAmount.String())
	assert.Equal(t, "2802.5", p.Items[0].TotalCost.String())
	assert.Equal(t, "Nutri DZ", *p.SupplierName)
}

func TestBuild_Rejections(t *testing.T) {
	_, err := Build(CreateRequest{})
	assert.True(t, apperr.IsValidation(err))

	_, err = Build(CreateRequest{Items: []ItemRequest{{ProductID: 5, Quantity: 1, UnitCost: decimal.NewFromInt(-1)}}})
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "items[0].unit_cost", ve.Field)
}

func TestService_CreatePurchase(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)

	repo.On("Create", ctx, mock.MatchedBy(func(p *Purchase) bool {
		return p.GymID == 2 && p.UserID == 2 && p.TotalAmount.Equal(decimal.NewFromInt(2800))
	}), gym.BranchFemale).Return(&Purchase{ID: 12, TotalAmount: decimal.NewFromInt(2800)}, nil)

	p, err := NewService(repo).CreatePurchase(ctx, femaleSession, CreateRequest{
		Items: []ItemRequest{{ProductID: 5, Quantity: 10, UnitCost: decimal.NewFromInt(280)}},
	})
	require.NoError(t, err)
	assert.Equal(t, 12, p.ID)
	repo.AssertExpectations(t)
}

func TestService_CreatePurchase_UnknownProduct(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("Create", ctx, mock.Anything, gym.BranchFemale).Return(nil, sql.ErrNoRows)

	_, err := NewService(repo).CreatePurchase(ctx, femaleSession, CreateRequest{
		Items: []ItemRequest{{ProductID: 99, Quantity: 1}},
	})

	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "product_id", ve.Field)
}

func TestService_GetPurchase_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("Get", ctx, 3, 2).Return(nil, sql.ErrNoRows)

	_, err := NewService(repo).GetPurchase(ctx, 3, 2)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
