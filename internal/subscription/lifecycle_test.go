package subscription

import (
	"testing"
	"time"

	"gymdesk/internal/apperr"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(n int) *int { return &n }

func monthlyType(months int) SubscriptionType {
	return SubscriptionType{ID: 1, Name: "Monthly", Kind: KindMonthly, DurationMonths: intPtr(months), Price: decimal.NewFromInt(3000)}
}

func sessionType(count int) SubscriptionType {
	return SubscriptionType{ID: 3, Name: "15 sessions", Kind: KindSession, DurationMonths: intPtr(3), SessionCount: intPtr(count), Price: decimal.NewFromInt(4500)}
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		n     int
		want  time.Time
	}{
		{"same day next month", day(2026, 3, 15), 1, day(2026, 4, 15)},
		{"jan 31 to feb 28", day(2026, 1, 31), 1, day(2026, 2, 28)},
		{"jan 31 to feb 29 in leap year", day(2028, 1, 31), 1, day(2028, 2, 29)},
		{"aug 31 to nov 30", day(2026, 8, 31), 3, day(2026, 11, 30)},
		{"crosses year end", day(2026, 11, 30), 3, day(2027, 2, 28)},
		{"twelve months", day(2026, 2, 28), 12, day(2027, 2, 28)},
		{"zero months", day(2026, 5, 5), 0, day(2026, 5, 5)},
		{"drops time of day", time.Date(2026, 5, 5, 18, 30, 0, 0, time.UTC), 1, day(2026, 6, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddMonths(tt.start, tt.n))
		})
	}
}

func TestComputeEndDate(t *testing.T) {
	t.Run("monthly adds duration months", func(t *testing.T) {
		for months := 1; months <= 24; months++ {
			start := day(2026, 1, 31)
			end := ComputeEndDate(start, monthlyType(months))

			assert.Equal(t, AddMonths(start, months), end)
			assert.LessOrEqual(t, end.Day(), 31)
		}
	})

	t.Run("session window is three months regardless of count", func(t *testing.T) {
		start := day(2026, 10, 15)
		assert.Equal(t, day(2027, 1, 15), ComputeEndDate(start, sessionType(15)))
		assert.Equal(t, day(2027, 1, 15), ComputeEndDate(start, sessionType(100)))
	})

	t.Run("session window clamps like monthly", func(t *testing.T) {
		assert.Equal(t, day(2027, 2, 28), ComputeEndDate(day(2026, 11, 30), sessionType(12)))
	})
}

func TestComputeRemainingSessions(t *testing.T) {
	assert.Nil(t, ComputeRemainingSessions(monthlyType(1)))

	got := ComputeRemainingSessions(sessionType(12))
	require.NotNil(t, got)
	assert.Equal(t, 12, *got)
}

func TestDeriveStatus(t *testing.T) {
	today := day(2026, 10, 15)

	tests := []struct {
		name      string
		kind      Kind
		remaining *int
		end       time.Time
		want      Status
	}{
		{"monthly far from end", KindMonthly, nil, day(2026, 11, 15), StatusActive},
		{"monthly 8 days left", KindMonthly, nil, day(2026, 10, 23), StatusActive},
		{"monthly 7 days left", KindMonthly, nil, day(2026, 10, 22), StatusExpiring},
		{"monthly ends today", KindMonthly, nil, today, StatusExpiring},
		{"monthly ended yesterday", KindMonthly, nil, day(2026, 10, 14), StatusExpired},
		{"session exhausted but window open", KindSession, intPtr(0), today.AddDate(0, 0, 30), StatusExpired},
		{"session nil remaining counts as zero", KindSession, nil, today.AddDate(0, 0, 30), StatusExpired},
		{"session negative remaining", KindSession, intPtr(-1), today.AddDate(0, 0, 30), StatusExpired},
		{"session credits and window open", KindSession, intPtr(5), today.AddDate(0, 0, 30), StatusActive},
		{"session credits and window closing", KindSession, intPtr(5), today.AddDate(0, 0, 3), StatusExpiring},
		{"session credits past window stays active", KindSession, intPtr(5), today.AddDate(0, 0, -1), StatusActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.kind, tt.remaining, tt.end, today))
		})
	}
}

func TestDeriveStatus_IgnoresTimeOfDay(t *testing.T) {
	end := day(2026, 10, 15)
	lateToday := time.Date(2026, 10, 15, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, StatusExpiring, DeriveStatus(KindMonthly, nil, end, lateToday))
}

func TestDeriveStatus_IsPure(t *testing.T) {
	today := day(2026, 10, 15)
	end := day(2026, 10, 20)
	remaining := intPtr(3)

	first := DeriveStatus(KindSession, remaining, end, today)
	for _, stored := range []Status{StatusActive, StatusExpired, StatusExpiring} {
		sub := Subscriber{Kind: KindSession, RemainingSessions: remaining, EndDate: end, Status: stored}
		assert.Equal(t, first, DeriveStatus(sub.Kind, sub.RemainingSessions, sub.EndDate, today))
	}
	assert.Equal(t, 3, *remaining)
}

func TestUseSession(t *testing.T) {
	today := day(2026, 10, 15)

	t.Run("decrements", func(t *testing.T) {
		sub := &Subscriber{Kind: KindSession, RemainingSessions: intPtr(12), EndDate: day(2027, 1, 15), Status: StatusActive}

		require.NoError(t, UseSession(sub, today))
		assert.Equal(t, 11, *sub.RemainingSessions)
		assert.Equal(t, StatusActive, sub.Status)
	})

	t.Run("last credit expires the subscriber", func(t *testing.T) {
		sub := &Subscriber{Kind: KindSession, RemainingSessions: intPtr(1), EndDate: day(2027, 1, 15), Status: StatusActive}

		require.NoError(t, UseSession(sub, today))
		assert.Equal(t, 0, *sub.RemainingSessions)
		assert.Equal(t, StatusExpired, sub.Status)
	})

	t.Run("rejected at zero and never negative", func(t *testing.T) {
		sub := &Subscriber{Kind: KindSession, RemainingSessions: intPtr(0), EndDate: day(2027, 1, 15), Status: StatusExpired}

		err := UseSession(sub, today)
		assert.True(t, apperr.IsValidation(err))
		assert.Equal(t, 0, *sub.RemainingSessions)
	})

	t.Run("rejected for monthly", func(t *testing.T) {
		sub := &Subscriber{Kind: KindMonthly, EndDate: day(2026, 11, 15), Status: StatusActive}

		err := UseSession(sub, today)
		assert.True(t, apperr.IsValidation(err))
		assert.Nil(t, sub.RemainingSessions)
	})
}

func TestRenew(t *testing.T) {
	today := time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)
	paid := decimal.NewFromInt(4500)

	sub := &Subscriber{
		ID:                7,
		Kind:              KindSession,
		StartDate:         day(2026, 5, 1),
		EndDate:           day(2026, 8, 1),
		RemainingSessions: intPtr(0),
		Status:            StatusExpired,
		PricePaid:         paid,
	}

	Renew(sub, sessionType(15), today)

	assert.Equal(t, day(2026, 10, 15), sub.StartDate)
	assert.Equal(t, day(2027, 1, 15), sub.EndDate)
	require.NotNil(t, sub.RemainingSessions)
	assert.Equal(t, 15, *sub.RemainingSessions)
	assert.Equal(t, StatusActive, sub.Status)
	assert.True(t, paid.Equal(sub.PricePaid))
}

func TestRenew_SwitchesToMonthly(t *testing.T) {
	sub := &Subscriber{Kind: KindSession, RemainingSessions: intPtr(2)}

	Renew(sub, monthlyType(3), day(2026, 11, 30))

	assert.Equal(t, KindMonthly, sub.Kind)
	assert.Nil(t, sub.RemainingSessions)
	assert.Equal(t, day(2027, 2, 28), sub.EndDate)
}

func TestValidateType(t *testing.T) {
	tests := []struct {
		name  string
		req   TypeRequest
		field string
	}{
		{"valid monthly", TypeRequest{Name: "Monthly", Kind: KindMonthly, DurationMonths: intPtr(1), Price: decimal.NewFromInt(3000)}, ""},
		{"valid session", TypeRequest{Name: "12 sessions", Kind: KindSession, SessionCount: intPtr(12), Price: decimal.NewFromInt(3600)}, ""},
		{"missing name", TypeRequest{Kind: KindMonthly, DurationMonths: intPtr(1)}, "name"},
		{"unknown kind", TypeRequest{Name: "Yearly", Kind: "yearly"}, "kind"},
		{"monthly without duration", TypeRequest{Name: "Monthly", Kind: KindMonthly}, "duration_months"},
		{"session without count", TypeRequest{Name: "Sessions", Kind: KindSession, SessionCount: intPtr(0)}, "session_count"},
		{"negative price", TypeRequest{Name: "Monthly", Kind: KindMonthly, DurationMonths: intPtr(1), Price: decimal.NewFromInt(-1)}, "price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateType(tt.req)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var ve *apperr.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-01-31")
	require.NoError(t, err)
	assert.Equal(t, day(2026, 1, 31), got)

	_, err = ParseDate("31/01/2026")
	assert.True(t, apperr.IsValidation(err))
}
