package subscription

import (
	"time"

	"github.com/shopspring/decimal"
)

type Kind string
type Status string

const (
	KindMonthly Kind = "monthly"
	KindSession Kind = "session"

	StatusActive   Status = "active"
	StatusExpiring Status = "expiring"
	StatusExpired  Status = "expired"
)

func (k Kind) Valid() bool {
	return k == KindMonthly || k == KindSession
}

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusExpiring || s == StatusExpired
}

// SubscriptionType is the template a subscriber is enrolled from. DurationMonths
// applies to monthly kinds, SessionCount to session kinds.
type SubscriptionType struct {
	ID             int             `db:"id" json:"id"`
	Name           string          `db:"name" json:"name"`
	Kind           Kind            `db:"type" json:"type"`
	DurationMonths *int            `db:"duration_months" json:"duration_months"`
	SessionCount   *int            `db:"session_count" json:"session_count"`
	Price          decimal.Decimal `db:"price" json:"price"`
	GymID          int             `db:"gym_id" json:"gym_id"`
	IsActive       bool            `db:"is_active" json:"is_active"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}

// Subscriber.Status is a memo of DeriveStatus; Kind and TypeName are joined from
// the subscription type.
type Subscriber struct {
	ID                 int             `db:"id" json:"id"`
	FullName           string          `db:"full_name" json:"full_name"`
	Phone              string          `db:"phone" json:"phone"`
	SubscriptionTypeID int             `db:"subscription_type_id" json:"subscription_type_id"`
	StartDate          time.Time       `db:"start_date" json:"start_date"`
	EndDate            time.Time       `db:"end_date" json:"end_date"`
	PricePaid          decimal.Decimal `db:"price_paid" json:"price_paid"`
	RemainingSessions  *int            `db:"remaining_sessions" json:"remaining_sessions"`
	Status             Status          `db:"status" json:"status"`
	GymID              int             `db:"gym_id" json:"gym_id"`
	CreatedAt          time.Time       `db:"created_at" json:"created_at"`

	Kind     Kind   `db:"kind" json:"kind"`
	TypeName string `db:"type_name" json:"type_name"`
}

type StatusChange struct {
	ID     int
	Status Status
}

// StatusCounts is the roster summary after a refresh.
type StatusCounts struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Expiring int `json:"expiring"`
	Expired  int `json:"expired"`
}

type TypeRequest struct {
	Name           string          `json:"name" validate:"required,max=200"`
	Kind           Kind            `json:"type" validate:"required,oneof=monthly session"`
	DurationMonths *int            `json:"duration_months"`
	SessionCount   *int            `json:"session_count"`
	Price          decimal.Decimal `json:"price"`
}

type SetActiveRequest struct {
	IsActive bool `json:"is_active"`
}

type CreateSubscriberRequest struct {
	FullName           string           `json:"full_name" validate:"required,max=200"`
	Phone              string           `json:"phone" validate:"max=50"`
	SubscriptionTypeID int              `json:"subscription_type_id" validate:"required,gt=0"`
	StartDate          string           `json:"start_date"`
	PricePaid          *decimal.Decimal `json:"price_paid"`
}

type UpdateSubscriberRequest struct {
	FullName string `json:"full_name" validate:"required,max=200"`
	Phone    string `json:"phone" validate:"max=50"`
}

// RenewRequest keeps the current subscription type when SubscriptionTypeID is zero.
type RenewRequest struct {
	SubscriptionTypeID int              `json:"subscription_type_id" validate:"gte=0"`
	PricePaid          *decimal.Decimal `json:"price_paid"`
}

type ListFilter struct {
	Status Status
	Search string
}
