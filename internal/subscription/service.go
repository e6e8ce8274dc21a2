package subscription

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gymdesk/internal/apperr"
	"gymdesk/internal/db"
	"gymdesk/internal/logger"
	"gymdesk/internal/metrics"
	"gymdesk/internal/money"
	"gymdesk/internal/notify"

	"github.com/shopspring/decimal"
)

type Service interface {
	CreateType(ctx context.Context, gymID int, req TypeRequest) (*SubscriptionType, error)
	UpdateType(ctx context.Context, id, gymID int, req TypeRequest) (*SubscriptionType, error)
	GetType(ctx context.Context, id, gymID int) (*SubscriptionType, error)
	ListTypes(ctx context.Context, gymID int, activeOnly bool) ([]SubscriptionType, error)
	SetTypeActive(ctx context.Context, id, gymID int, active bool) error
	DeleteType(ctx context.Context, id, gymID int) error

	CreateSubscriber(ctx context.Context, gymID int, req CreateSubscriberRequest) (*Subscriber, error)
	GetSubscriber(ctx context.Context, id, gymID int) (*Subscriber, error)
	ListSubscribers(ctx context.Context, gymID int, filter ListFilter) ([]Subscriber, error)
	UpdateSubscriber(ctx context.Context, id, gymID int, req UpdateSubscriberRequest) (*Subscriber, error)
	DeleteSubscriber(ctx context.Context, id, gymID int) error
	UseSession(ctx context.Context, id, gymID int) (*Subscriber, error)
	Renew(ctx context.Context, id, gymID int, req RenewRequest) (*Subscriber, error)
	RefreshStatuses(ctx context.Context, gymID int) (StatusCounts, error)
}

type service struct {
	repo     Repository
	notifier notify.Notifier
	now      func() time.Time
}

func NewService(repo Repository, notifier notify.Notifier) Service {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &service{
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *service) today() time.Time {
	return Date(s.now())
}

func (s *service) CreateType(ctx context.Context, gymID int, req TypeRequest) (*SubscriptionType, error) {
	if err := ValidateType(req); err != nil {
		return nil, err
	}

	t := typeFromRequest(req)
	t.GymID = gymID

	created, err := s.repo.CreateType(ctx, t)
	if err != nil {
		return nil, apperr.Wrap("create subscription type", err)
	}
	return created, nil
}

func (s *service) UpdateType(ctx context.Context, id, gymID int, req TypeRequest) (*SubscriptionType, error) {
	if err := ValidateType(req); err != nil {
		return nil, err
	}

	t := typeFromRequest(req)
	t.ID = id
	t.GymID = gymID

	updated, err := s.repo.UpdateType(ctx, t)
	if err != nil {
		return nil, apperr.Wrap("update subscription type", err)
	}
	return updated, nil
}

func (s *service) GetType(ctx context.Context, id, gymID int) (*SubscriptionType, error) {
	t, err := s.repo.GetTypeByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap("get subscription type", err)
	}
	if t.GymID != gymID {
		return nil, apperr.ErrNotFound
	}
	return t, nil
}

func (s *service) ListTypes(ctx context.Context, gymID int, activeOnly bool) ([]SubscriptionType, error) {
	types, err := s.repo.ListTypes(ctx, gymID, activeOnly)
	if err != nil {
		return nil, apperr.Wrap("list subscription types", err)
	}
	return types, nil
}

func (s *service) SetTypeActive(ctx context.Context, id, gymID int, active bool) error {
	if err := s.repo.SetTypeActive(ctx, id, gymID, active); err != nil {
		return apperr.Wrap("set subscription type active", err)
	}
	return nil
}

func (s *service) DeleteType(ctx context.Context, id, gymID int) error {
	err := s.repo.DeleteType(ctx, id, gymID)
	if db.IsForeignKeyViolation(err) {
		return &apperr.ReferentialIntegrityError{Entity: "subscription type", ID: id}
	}
	if err != nil {
		return apperr.Wrap("delete subscription type", err)
	}
	return nil
}

func (s *service) CreateSubscriber(ctx context.Context, gymID int, req CreateSubscriberRequest) (*Subscriber, error) {
	if err := apperr.ValidateStruct(req); err != nil {
		return nil, err
	}

	t, err := s.enrollableType(ctx, req.SubscriptionTypeID, gymID)
	if err != nil {
		return nil, err
	}

	today := s.today()
	start := today
	if req.StartDate != "" {
		if start, err = ParseDate(req.StartDate); err != nil {
			return nil, err
		}
	}

	price := t.Price
	if req.PricePaid != nil {
		if money.IsNegative(*req.PricePaid) {
			return nil, apperr.Invalid("price_paid", "must not be negative")
		}
		price = *req.PricePaid
	}

	sub := &Subscriber{
		FullName:           req.FullName,
		Phone:              req.Phone,
		SubscriptionTypeID: t.ID,
		StartDate:          start,
		EndDate:            ComputeEndDate(start, *t),
		PricePaid:          money.Round(price),
		RemainingSessions:  ComputeRemainingSessions(*t),
		GymID:              gymID,
		Kind:               t.Kind,
		TypeName:           t.Name,
	}
	sub.Status = DeriveStatus(sub.Kind, sub.RemainingSessions, sub.EndDate, today)

	created, err := s.repo.CreateSubscriber(ctx, sub)
	if db.IsForeignKeyViolation(err) {
		return nil, apperr.Invalid("subscription_type_id", "subscription type not found")
	}
	if err != nil {
		return nil, apperr.Wrap("create subscriber", err)
	}

	metrics.RecordSubscriber(string(t.Kind))
	logger.Info("subscriber created", "subscriber_id", created.ID, "gym_id", gymID, "kind", t.Kind)
	return created, nil
}

func (s *service) GetSubscriber(ctx context.Context, id, gymID int) (*Subscriber, error) {
	sub, err := s.repo.GetSubscriber(ctx, id, gymID)
	if err != nil {
		return nil, apperr.Wrap("get subscriber", err)
	}

	refreshed, err := s.refresh(ctx, []Subscriber{*sub})
	if err != nil {
		return nil, err
	}
	return &refreshed[0], nil
}

// ListSubscribers filters by status only after every row has been brought up to date.
func (s *service) ListSubscribers(ctx context.Context, gymID int, filter ListFilter) ([]Subscriber, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperr.Invalid("status", "must be one of: active expiring expired")
	}

	subs, err := s.repo.ListSubscribers(ctx, gymID, filter.Search)
	if err != nil {
		return nil, apperr.Wrap("list subscribers", err)
	}

	subs, err = s.refresh(ctx, subs)
	if err != nil {
		return nil, err
	}

	if filter.Status == "" {
		return subs, nil
	}

	filtered := []Subscriber{}
	for _, sub := range subs {
		if sub.Status == filter.Status {
			filtered = append(filtered, sub)
		}
	}
	return filtered, nil
}

func (s *service) UpdateSubscriber(ctx context.Context, id, gymID int, req UpdateSubscriberRequest) (*Subscriber, error) {
	if err := apperr.ValidateStruct(req); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateSubscriberContact(ctx, id, gymID, req.FullName, req.Phone); err != nil {
		return nil, apperr.Wrap("update subscriber", err)
	}
	return s.GetSubscriber(ctx, id, gymID)
}

func (s *service) DeleteSubscriber(ctx context.Context, id, gymID int) error {
	if err := s.repo.DeleteSubscriber(ctx, id, gymID); err != nil {
		return apperr.Wrap("delete subscriber", err)
	}
	return nil
}

func (s *service) UseSession(ctx context.Context, id, gymID int) (*Subscriber, error) {
	sub, err := s.repo.UseSession(ctx, id, gymID, s.today())
	if err != nil {
		return nil, apperr.Wrap("use session", err)
	}

	metrics.RecordSessionUsed()
	return sub, nil
}

func (s *service) Renew(ctx context.Context, id, gymID int, req RenewRequest) (*Subscriber, error) {
	if err := apperr.ValidateStruct(req); err != nil {
		return nil, err
	}
	if req.PricePaid != nil && money.IsNegative(*req.PricePaid) {
		return nil, apperr.Invalid("price_paid", "must not be negative")
	}

	typeID := req.SubscriptionTypeID
	if typeID == 0 {
		current, err := s.repo.GetSubscriber(ctx, id, gymID)
		if err != nil {
			return nil, apperr.Wrap("renew subscriber", err)
		}
		typeID = current.SubscriptionTypeID
	}

	t, err := s.enrollableType(ctx, typeID, gymID)
	if err != nil {
		return nil, err
	}

	var price *decimal.Decimal
	if req.PricePaid != nil {
		rounded := money.Round(*req.PricePaid)
		price = &rounded
	}

	sub, err := s.repo.Renew(ctx, id, gymID, t.ID, s.today(), price)
	if err != nil {
		return nil, apperr.Wrap("renew subscriber", err)
	}

	metrics.RecordRenewal(string(t.Kind))
	logger.Info("subscriber renewed", "subscriber_id", id, "gym_id", gymID, "subscription_type_id", t.ID)
	return sub, nil
}

func (s *service) RefreshStatuses(ctx context.Context, gymID int) (StatusCounts, error) {
	subs, err := s.repo.ListSubscribers(ctx, gymID, "")
	if err != nil {
		return StatusCounts{}, apperr.Wrap("refresh statuses", err)
	}

	subs, err = s.refresh(ctx, subs)
	if err != nil {
		return StatusCounts{}, err
	}

	counts := StatusCounts{Total: len(subs)}
	for _, sub := range subs {
		switch sub.Status {
		case StatusActive:
			counts.Active++
		case StatusExpiring:
			counts.Expiring++
		case StatusExpired:
			counts.Expired++
		}
	}
	return counts, nil
}

// refresh recomputes every status for today and persists the ones that drifted.
// Subscribers that just entered the expiring window raise an alert once the
// write has committed.
func (s *service) refresh(ctx context.Context, subs []Subscriber) ([]Subscriber, error) {
	today := s.today()

	var changes []StatusChange
	var expiring []Subscriber
	for i := range subs {
		status := DeriveStatus(subs[i].Kind, subs[i].RemainingSessions, subs[i].EndDate, today)
		if status == subs[i].Status {
			continue
		}
		subs[i].Status = status
		changes = append(changes, StatusChange{ID: subs[i].ID, Status: status})
		if status == StatusExpiring {
			expiring = append(expiring, subs[i])
		}
	}

	if len(changes) == 0 {
		return subs, nil
	}

	if err := s.repo.SaveStatuses(ctx, changes); err != nil {
		return nil, apperr.Wrap("save statuses", err)
	}

	for _, c := range changes {
		metrics.RecordStatusCorrection(string(c.Status))
	}
	for _, sub := range expiring {
		s.publish(ctx, notify.ExpiringAlert(sub.GymID, sub.FullName, sub.Phone, sub.EndDate))
	}
	return subs, nil
}

func (s *service) publish(ctx context.Context, alert notify.Alert) {
	if err := s.notifier.Publish(ctx, alert); err != nil {
		logger.Error("failed to publish alert", "kind", alert.Kind, "gym_id", alert.GymID, "error", err)
	}
}

// enrollableType resolves a type a subscriber can be put on: it must exist,
// belong to the gym and be active.
func (s *service) enrollableType(ctx context.Context, typeID, gymID int) (*SubscriptionType, error) {
	t, err := s.repo.GetTypeByID(ctx, typeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.Invalid("subscription_type_id", "subscription type not found")
	}
	if err != nil {
		return nil, apperr.Wrap("get subscription type", err)
	}
	if t.GymID != gymID {
		return nil, apperr.Invalid("subscription_type_id", "subscription type not found")
	}
	if !t.IsActive {
		return nil, apperr.Invalid("subscription_type_id", "subscription type is inactive")
	}
	return t, nil
}

func typeFromRequest(req TypeRequest) *SubscriptionType {
	t := &SubscriptionType{
		Name:  req.Name,
		Kind:  req.Kind,
		Price: money.Round(req.Price),
	}
	if req.Kind == KindMonthly {
		t.DurationMonths = req.DurationMonths
	} else {
		t.SessionCount = req.SessionCount
	}
	return t
}
