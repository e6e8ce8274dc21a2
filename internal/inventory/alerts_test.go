package inventory

import (
	"context"
	"errors"
	"testing"

	"gymdesk/internal/gym"
	"gymdesk/internal/notify"

	"github.com/stretchr/testify/mock"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Publish(ctx context.Context, alert notify.Alert) error {
	return m.Called(ctx, alert).Error(0)
}

func TestPublishLowStock(t *testing.T) {
	ctx := context.Background()
	n := new(MockNotifier)
	n.On("Publish", ctx, notify.LowStockAlert(1, "male", "Water", 2)).Return(errors.New("redis down")).Once()

	PublishLowStock(ctx, n, 1, gym.BranchMale, []Product{
		{ID: 1, Name: "Water", Stock: NewStock(4, 40)},
		{ID: 2, Name: "Whey", Stock: NewStock(9, 0)},
		{ID: 1, Name: "Water", Stock: NewStock(2, 40)},
	})

	n.AssertExpectations(t)
}
