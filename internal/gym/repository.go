package gym

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetAllGyms(ctx context.Context) ([]Gym, error) {
	query := `
		SELECT id, name, type, logo, settings, created_at
		FROM gyms
		ORDER BY id
	`

	var gyms []Gym
	err := r.db.SelectContext(ctx, &gyms, query)
	if err != nil {
		return nil, err
	}

	return gyms, nil
}

func (r *repository) GetGymByID(ctx context.Context, id int) (*Gym, error) {
	query := `
		SELECT id, name, type, logo, settings, created_at
		FROM gyms
		WHERE id = $1
	`

	var gym Gym
	err := r.db.GetContext(ctx, &gym, query, id)
	if err != nil {
		return nil, err
	}

	return &gym, nil
}

// UpdateGym never touches type: the branch kind of a gym is fixed at creation.
func (r *repository) UpdateGym(ctx context.Context, id int, name string, logo *string, settings Settings) (*Gym, error) {
	query := `
		UPDATE gyms
		SET name = $1, logo = $2, settings = $3
		WHERE id = $4
		RETURNING id, name, type, logo, settings, created_at
	`

	var gym Gym
	err := r.db.GetContext(ctx, &gym, query, name, logo, settings, id)
	if err != nil {
		return nil, err
	}

	return &gym, nil
}
