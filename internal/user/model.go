package user

import (
	"time"

	"gymdesk/internal/auth"
	"gymdesk/internal/gym"
)

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

type User struct {
	ID           int        `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FullName     string     `db:"full_name" json:"full_name"`
	Role         string     `db:"role" json:"role"`
	GymID        *int       `db:"gym_id" json:"gym_id"`
	GymName      string     `db:"gym_name" json:"gym_name,omitempty"`
	GymType      gym.Branch `db:"gym_type" json:"gym_type,omitempty"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// Session builds the token payload for u. Callers must check GymID first.
func (u *User) Session() auth.Session {
	s := auth.Session{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Role:     u.Role,
		GymName:  u.GymName,
		GymType:  u.GymType,
	}
	if u.GymID != nil {
		s.GymID = *u.GymID
	}
	return s
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse keeps the desktop client's {success, session, message} shape;
// tokens are only set on success.
type LoginResponse struct {
	Success      bool          `json:"success"`
	Session      *auth.Session `json:"session,omitempty"`
	Message      string        `json:"message,omitempty"`
	AccessToken  string        `json:"access_token,omitempty"`
	RefreshToken string        `json:"refresh_token,omitempty"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=admin staff"`
	GymID    int    `json:"gym_id" validate:"required,gt=0"`
}

// UpdateUserRequest leaves the password untouched when Password is empty.
type UpdateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"omitempty,min=6"`
	FullName string `json:"full_name" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=admin staff"`
	GymID    int    `json:"gym_id" validate:"required,gt=0"`
}

type SetActiveRequest struct {
	IsActive bool `json:"is_active"`
}
