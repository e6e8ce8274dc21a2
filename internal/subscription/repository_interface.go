package subscription

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Repository interface {
	CreateType(ctx context.Context, t *SubscriptionType) (*SubscriptionType, error)
	UpdateType(ctx context.Context, t *SubscriptionType) (*SubscriptionType, error)
	GetTypeByID(ctx context.Context, id int) (*SubscriptionType, error)
	ListTypes(ctx context.Context, gymID int, activeOnly bool) ([]SubscriptionType, error)
	SetTypeActive(ctx context.Context, id, gymID int, active bool) error
	DeleteType(ctx context.Context, id, gymID int) error

	CreateSubscriber(ctx context.Context, s *Subscriber) (*Subscriber, error)
	GetSubscriber(ctx context.Context, id, gymID int) (*Subscriber, error)
	ListSubscribers(ctx context.Context, gymID int, search string) ([]Subscriber, error)
	UpdateSubscriberContact(ctx context.Context, id, gymID int, fullName, phone string) error
	DeleteSubscriber(ctx context.Context, id, gymID int) error
	SaveStatuses(ctx context.Context, changes []StatusChange) error

	UseSession(ctx context.Context, id, gymID int, today time.Time) (*Subscriber, error)
	Renew(ctx context.Context, id, gymID, typeID int, today time.Time, pricePaid *decimal.Decimal) (*Subscriber, error)
}
