package user

import "context"

type Repository interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id int) (*User, error)
	List(ctx context.Context) ([]User, error)
	Create(ctx context.Context, u *User) (*User, error)
	Update(ctx context.Context, u *User, passwordHash *string) (*User, error)
	SetActive(ctx context.Context, id int, active bool) error
	Delete(ctx context.Context, id int) error
}
