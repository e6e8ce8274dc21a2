package gym

import "context"

type Repository interface {
	GetAllGyms(ctx context.Context) ([]Gym, error)
	GetGymByID(ctx context.Context, id int) (*Gym, error)
	UpdateGym(ctx context.Context, id int, name string, logo *string, settings Settings) (*Gym, error)
}
