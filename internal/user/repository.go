package user

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

const userColumns = `u.id, u.username, u.password_hash, u.full_name, u.role, u.gym_id,
		COALESCE(g.name, '') AS gym_name, COALESCE(g.type, '') AS gym_type, u.is_active, u.created_at`

const userSelect = `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN gyms g ON g.id = u.gym_id`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, userSelect+` WHERE u.username = $1`, username)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, userSelect+` WHERE u.id = $1`, id)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *repository) List(ctx context.Context) ([]User, error) {
	var users []User
	err := r.db.SelectContext(ctx, &users, userSelect+` ORDER BY u.created_at DESC`)
	if err != nil {
		return nil, err
	}

	return users, nil
}

func (r *repository) Create(ctx context.Context, u *User) (*User, error) {
	query := `
		WITH u AS (
			INSERT INTO users (username, password_hash, full_name, role, gym_id, is_active)
			VALUES ($1, $2, $3, $4, $5, TRUE)
			RETURNING *
		)
		SELECT ` + userColumns + `
		FROM u
		LEFT JOIN gyms g ON g.id = u.gym_id`

	var created User
	err := r.db.GetContext(ctx, &created, query,
		u.Username, u.PasswordHash, u.FullName, u.Role, u.GymID)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) Update(ctx context.Context, u *User, passwordHash *string) (*User, error) {
	query := `
		WITH u AS (
			UPDATE users
			SET username = $1, full_name = $2, role = $3, gym_id = $4,
				password_hash = COALESCE($5, password_hash)
			WHERE id = $6
			RETURNING *
		)
		SELECT ` + userColumns + `
		FROM u
		LEFT JOIN gyms g ON g.id = u.gym_id`

	var updated User
	err := r.db.GetContext(ctx, &updated, query,
		u.Username, u.FullName, u.Role, u.GymID, passwordHash, u.ID)
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *repository) SetActive(ctx context.Context, id int, active bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET is_active = $1 WHERE id = $2`, active, id)
	return expectOneRow(result, err)
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	return expectOneRow(result, err)
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
