package user

import (
	"context"
	"database/sql"
	"errors"

	"gymdesk/internal/apperr"
	"gymdesk/internal/auth"
	"gymdesk/internal/db"
	"gymdesk/internal/logger"
)

// ErrInvalidRefreshToken covers expired, malformed and wrong-type tokens as well as
// tokens whose user no longer exists or was deactivated.
var ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")

const (
	msgInvalidCredentials = "Invalid username or password"
	msgAccountDisabled    = "Account is disabled"
	msgNoGym              = "No gym is assigned to this account"
)

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*LoginResponse, error)
	ListUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, id int) (*User, error)
	CreateUser(ctx context.Context, req CreateUserRequest) (*User, error)
	UpdateUser(ctx context.Context, id int, req UpdateUserRequest) (*User, error)
	SetActive(ctx context.Context, actorID, id int, active bool) error
	DeleteUser(ctx context.Context, actorID, id int) error
}

type service struct {
	repo      Repository
	jwtSecret string
}

func NewService(repo Repository, jwtSecret string) Service {
	return &service{
		repo:      repo,
		jwtSecret: jwtSecret,
	}
}

// Login answers bad credentials with Success=false rather than an error; only
// storage and token failures are returned as errors.
func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := apperr.ValidateStruct(req); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByUsername(ctx, req.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return &LoginResponse{Message: msgInvalidCredentials}, nil
	}
	if err != nil {
		return nil, apperr.Wrap("login", err)
	}

	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		logger.Info("login rejected", "username", req.Username)
		return &LoginResponse{Message: msgInvalidCredentials}, nil
	}
	if msg := loginBlocker(u); msg != "" {
		logger.Info("login rejected", "username", req.Username, "reason", msg)
		return &LoginResponse{Message: msg}, nil
	}

	resp, err := s.issue(u)
	if err != nil {
		return nil, err
	}

	logger.Info("user logged in", "user_id", u.ID, "gym_id", resp.Session.GymID)
	return resp, nil
}

// Refresh reloads the user so that a deactivated account or a renamed gym takes
// effect on the next refresh.
func (s *service) Refresh(ctx context.Context, refreshToken string) (*LoginResponse, error) {
	claims, err := auth.ParseRefreshToken(refreshToken, s.jwtSecret)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	u, err := s.repo.GetByID(ctx, claims.Session.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidRefreshToken
	}
	if err != nil {
		return nil, apperr.Wrap("refresh token", err)
	}
	if loginBlocker(u) != "" {
		return nil, ErrInvalidRefreshToken
	}

	return s.issue(u)
}

func (s *service) issue(u *User) (*LoginResponse, error) {
	session := u.Session()
	accessToken, refreshToken, err := auth.GenerateTokens(session, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Success:      true,
		Session:      &session,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func loginBlocker(u *User) string {
	switch {
	case !u.IsActive:
		return msgAccountDisabled
	case u.GymID == nil:
		return msgNoGym
	}
	return ""
}

func (s *service) ListUsers(ctx context.Context) ([]User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Wrap("list users", err)
	}
	return users, nil
}

func (s *service) GetUser(ctx context.Context, id int) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap("get user", err)
	}
	return u, nil
}

func (s *service) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	if err := apperr.ValidateStruct(req); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	gymID := req.GymID
	u, err := s.repo.Create(ctx, &User{
		Username:     req.Username,
		PasswordHash: hash,
		FullName:     req.FullName,
		Role:         roleOrDefault(req.Role),
		GymID:        &gymID,
	})
	if err != nil {
		return nil, classifyWrite("create user", err)
	}

	logger.Info("user created", "user_id", u.ID, "username", u.Username, "gym_id", gymID)
	return u, nil
}

func (s *service) UpdateUser(ctx context.Context, id int, req UpdateUserRequest) (*User, error) {
	if err := apperr.ValidateStruct(req); err != nil {
		return nil, err
	}

	var hash *string
	if req.Password != "" {
		h, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		hash = &h
	}

	gymID := req.GymID
	u, err := s.repo.Update(ctx, &User{
		ID:       id,
		Username: req.Username,
		FullName: req.FullName,
		Role:     roleOrDefault(req.Role),
		GymID:    &gymID,
	}, hash)
	if err != nil {
		return nil, classifyWrite("update user", err)
	}
	return u, nil
}

func (s *service) SetActive(ctx context.Context, actorID, id int, active bool) error {
	if !active && actorID == id {
		return apperr.Invalid("is_active", "you cannot deactivate your own account")
	}

	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return apperr.Wrap("set user active", err)
	}

	logger.Info("user activation changed", "user_id", id, "is_active", active, "by", actorID)
	return nil
}

func (s *service) DeleteUser(ctx context.Context, actorID, id int) error {
	if actorID == id {
		return apperr.Invalid("id", "you cannot delete your own account")
	}

	err := s.repo.Delete(ctx, id)
	if db.IsForeignKeyViolation(err) {
		return &apperr.ReferentialIntegrityError{Entity: "user", ID: id}
	}
	if err != nil {
		return apperr.Wrap("delete user", err)
	}

	logger.Info("user deleted", "user_id", id, "by", actorID)
	return nil
}

func roleOrDefault(role string) string {
	if role == "" {
		return RoleAdmin
	}
	return role
}

func classifyWrite(op string, err error) error {
	switch {
	case db.IsUniqueViolation(err):
		return apperr.Invalid("username", "already taken")
	case db.IsForeignKeyViolation(err):
		return apperr.Invalid("gym_id", "gym not found")
	}
	return apperr.Wrap(op, err)
}
