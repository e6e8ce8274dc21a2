package subscription

import (
	"time"

	"gymdesk/internal/apperr"
)

const (
	// Session subscriptions are valid for this many months whatever their session count.
	SessionValidityMonths = 3
	ExpiringWithinDays    = 7

	dateLayout = "2006-01-02"
)

// Date truncates t to its calendar day. All lifecycle comparisons are on days.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddMonths moves t forward by n calendar months keeping the day of month,
// clamped to the last day of the target month (Jan 31 + 1 → Feb 28/29).
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}

// DaysUntil is the number of calendar days from today to end; negative once end has passed.
func DaysUntil(end, today time.Time) int {
	return int(Date(end).Sub(Date(today)).Hours() / 24)
}

func ComputeEndDate(start time.Time, t SubscriptionType) time.Time {
	if t.Kind == KindSession {
		return AddMonths(start, SessionValidityMonths)
	}
	return AddMonths(start, intOrZero(t.DurationMonths))
}

func ComputeRemainingSessions(t SubscriptionType) *int {
	if t.Kind != KindSession {
		return nil
	}
	n := intOrZero(t.SessionCount)
	return &n
}

// DeriveStatus depends only on its arguments. Session exhaustion is checked
// before any date rule, so a session subscriber with no credits left is expired
// even when end is still in the future.
func DeriveStatus(kind Kind, remaining *int, end, today time.Time) Status {
	if kind == KindSession && intOrZero(remaining) <= 0 {
		return StatusExpired
	}
	if kind == KindMonthly && Date(today).After(Date(end)) {
		return StatusExpired
	}
	if days := DaysUntil(end, today); days >= 0 && days <= ExpiringWithinDays {
		return StatusExpiring
	}
	return StatusActive
}

// UseSession consumes one credit. It leaves sub untouched and returns a
// ValidationError when the subscriber is not session based or has no credits.
func UseSession(sub *Subscriber, today time.Time) error {
	if sub.Kind != KindSession {
		return apperr.Invalid("remaining_sessions", "subscription is not session based")
	}
	if intOrZero(sub.RemainingSessions) <= 0 {
		return apperr.Invalid("remaining_sessions", "no sessions remaining")
	}

	n := *sub.RemainingSessions - 1
	sub.RemainingSessions = &n
	sub.Status = DeriveStatus(sub.Kind, sub.RemainingSessions, sub.EndDate, today)
	return nil
}

// Renew starts a fresh window from today. PricePaid is left alone; recording a
// new payment is the caller's decision.
func Renew(sub *Subscriber, t SubscriptionType, today time.Time) {
	start := Date(today)
	sub.SubscriptionTypeID = t.ID
	sub.Kind = t.Kind
	sub.TypeName = t.Name
	sub.StartDate = start
	sub.EndDate = ComputeEndDate(start, t)
	sub.RemainingSessions = ComputeRemainingSessions(t)
	sub.Status = StatusActive
}

// ValidateType checks the kind-specific fields of a subscription type.
func ValidateType(req TypeRequest) error {
	if err := apperr.ValidateStruct(req); err != nil {
		return err
	}
	switch req.Kind {
	case KindMonthly:
		if intOrZero(req.DurationMonths) <= 0 {
			return apperr.Invalid("duration_months", "must be greater than 0 for monthly subscriptions")
		}
	case KindSession:
		if intOrZero(req.SessionCount) <= 0 {
			return apperr.Invalid("session_count", "must be greater than 0 for session subscriptions")
		}
	}
	if req.Price.Sign() < 0 {
		return apperr.Invalid("price", "must not be negative")
	}
	return nil
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, apperr.Invalid("start_date", "must be a date formatted YYYY-MM-DD")
	}
	return t, nil
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
