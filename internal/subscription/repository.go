package subscription

import (
	"context"
	"database/sql"
	"time"

	"gymdesk/internal/apperr"
	"gymdesk/internal/db"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const typeColumns = `id, name, type, duration_months, session_count, price, gym_id, is_active, created_at`

const subscriberSelect = `
		SELECT s.id, s.full_name, COALESCE(s.phone, '') AS phone, s.subscription_type_id,
			s.start_date, s.end_date, s.price_paid, s.remaining_sessions, s.status, s.gym_id,
			s.created_at, st.type AS kind, st.name AS type_name
		FROM subscribers s
		JOIN subscription_types st ON st.id = s.subscription_type_id`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateType(ctx context.Context, t *SubscriptionType) (*SubscriptionType, error) {
	query := `
		INSERT INTO subscription_types (name, type, duration_months, session_count, price, gym_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		RETURNING ` + typeColumns

	var created SubscriptionType
	err := r.db.GetContext(ctx, &created, query,
		t.Name, t.Kind, t.DurationMonths, t.SessionCount, t.Price, t.GymID)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) UpdateType(ctx context.Context, t *SubscriptionType) (*SubscriptionType, error) {
	query := `
		UPDATE subscription_types
		SET name = $1, type = $2, duration_months = $3, session_count = $4, price = $5
		WHERE id = $6 AND gym_id = $7
		RETURNING ` + typeColumns

	var updated SubscriptionType
	err := r.db.GetContext(ctx, &updated, query,
		t.Name, t.Kind, t.DurationMonths, t.SessionCount, t.Price, t.ID, t.GymID)
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *repository) GetTypeByID(ctx context.Context, id int) (*SubscriptionType, error) {
	query := `SELECT ` + typeColumns + ` FROM subscription_types WHERE id = $1`

	var t SubscriptionType
	err := r.db.GetContext(ctx, &t, query, id)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *repository) ListTypes(ctx context.Context, gymID int, activeOnly bool) ([]SubscriptionType, error) {
	query := `
		SELECT ` + typeColumns + `
		FROM subscription_types
		WHERE gym_id = $1 AND ($2 = FALSE OR is_active = TRUE)
		ORDER BY created_at DESC
	`

	types := []SubscriptionType{}
	err := r.db.SelectContext(ctx, &types, query, gymID, activeOnly)
	if err != nil {
		return nil, err
	}

	return types, nil
}

func (r *repository) SetTypeActive(ctx context.Context, id, gymID int, active bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE subscription_types SET is_active = $1 WHERE id = $2 AND gym_id = $3`,
		active, id, gymID,
	)
	return expectOneRow(result, err)
}

func (r *repository) DeleteType(ctx context.Context, id, gymID int) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM subscription_types WHERE id = $1 AND gym_id = $2`,
		id, gymID,
	)
	return expectOneRow(result, err)
}

func (r *repository) CreateSubscriber(ctx context.Context, s *Subscriber) (*Subscriber, error) {
	query := `
		INSERT INTO subscribers (full_name, phone, subscription_type_id, start_date, end_date,
			price_paid, remaining_sessions, status, gym_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	created := *s
	err := r.db.QueryRowxContext(ctx, query,
		s.FullName, s.Phone, s.SubscriptionTypeID, s.StartDate, s.EndDate,
		s.PricePaid, s.RemainingSessions, s.Status, s.GymID,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetSubscriber(ctx context.Context, id, gymID int) (*Subscriber, error) {
	query := subscriberSelect + `
		WHERE s.id = $1 AND s.gym_id = $2
	`

	var s Subscriber
	err := r.db.GetContext(ctx, &s, query, id, gymID)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *repository) ListSubscribers(ctx context.Context, gymID int, search string) ([]Subscriber, error) {
	query := subscriberSelect + `
		WHERE s.gym_id = $1
			AND ($2 = '' OR s.full_name ILIKE '%' || $2 || '%' OR s.phone ILIKE '%' || $2 || '%')
		ORDER BY s.created_at DESC
	`

	subs := []Subscriber{}
	err := r.db.SelectContext(ctx, &subs, query, gymID, search)
	if err != nil {
		return nil, err
	}

	return subs, nil
}

func (r *repository) UpdateSubscriberContact(ctx context.Context, id, gymID int, fullName, phone string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE subscribers SET full_name = $1, phone = $2 WHERE id = $3 AND gym_id = $4`,
		fullName, phone, id, gymID,
	)
	return expectOneRow(result, err)
}

func (r *repository) DeleteSubscriber(ctx context.Context, id, gymID int) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM subscribers WHERE id = $1 AND gym_id = $2`,
		id, gymID,
	)
	return expectOneRow(result, err)
}

// SaveStatuses writes back recomputed statuses in one transaction.
func (r *repository) SaveStatuses(ctx context.Context, changes []StatusChange) error {
	if len(changes) == 0 {
		return nil
	}

	return db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, c := range changes {
			if _, err := tx.ExecContext(ctx,
				`UPDATE subscribers SET status = $1 WHERE id = $2`,
				c.Status, c.ID,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repository) UseSession(ctx context.Context, id, gymID int, today time.Time) (*Subscriber, error) {
	var sub *Subscriber

	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		locked, err := lockSubscriber(ctx, tx, id, gymID)
		if err != nil {
			return err
		}

		if err := UseSession(locked, today); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE subscribers SET remaining_sessions = $1, status = $2 WHERE id = $3`,
			locked.RemainingSessions, locked.Status, locked.ID,
		)
		if err != nil {
			return err
		}

		sub = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	return sub, nil
}

// Renew re-enrolls the subscriber on typeID from today. price_paid changes only
// when the caller records a new payment.
func (r *repository) Renew(ctx context.Context, id, gymID, typeID int, today time.Time, pricePaid *decimal.Decimal) (*Subscriber, error) {
	var sub *Subscriber

	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		locked, err := lockSubscriber(ctx, tx, id, gymID)
		if err != nil {
			return err
		}

		var t SubscriptionType
		err = tx.GetContext(ctx, &t, `SELECT `+typeColumns+` FROM subscription_types WHERE id = $1`, typeID)
		if err != nil {
			return err
		}
		if t.GymID != gymID {
			return apperr.Invalid("subscription_type_id", "subscription type belongs to another gym")
		}

		Renew(locked, t, today)
		if pricePaid != nil {
			locked.PricePaid = *pricePaid
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE subscribers
			SET subscription_type_id = $1, start_date = $2, end_date = $3,
				remaining_sessions = $4, status = $5, price_paid = $6
			WHERE id = $7
		`, locked.SubscriptionTypeID, locked.StartDate, locked.EndDate,
			locked.RemainingSessions, locked.Status, locked.PricePaid, locked.ID)
		if err != nil {
			return err
		}

		sub = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	return sub, nil
}

func lockSubscriber(ctx context.Context, tx *sqlx.Tx, id, gymID int) (*Subscriber, error) {
	query := subscriberSelect + `
		WHERE s.id = $1 AND s.gym_id = $2
		FOR UPDATE OF s
	`

	var s Subscriber
	if err := tx.GetContext(ctx, &s, query, id, gymID); err != nil {
		return nil, err
	}
	return &s, nil
}

func expectOneRow(result sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
