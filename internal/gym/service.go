package gym

import (
	"context"

	"gymdesk/internal/apperr"
)

type Service interface {
	GetAllGyms(ctx context.Context) ([]Gym, error)
	GetGymByID(ctx context.Context, id int) (*Gym, error)
	UpdateGym(ctx context.Context, id int, req UpdateGymRequest) (*Gym, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) GetAllGyms(ctx context.Context) ([]Gym, error) {
	gyms, err := s.repo.GetAllGyms(ctx)
	if err != nil {
		return nil, apperr.Wrap("list gyms", err)
	}
	return gyms, nil
}

func (s *service) GetGymByID(ctx context.Context, id int) (*Gym, error) {
	gym, err := s.repo.GetGymByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap("get gym", err)
	}
	return gym, nil
}

func (s *service) UpdateGym(ctx context.Context, id int, req UpdateGymRequest) (*Gym, error) {
	if err := apperr.ValidateStruct(req); err != nil {
		return nil, err
	}
	if req.Settings == nil {
		req.Settings = Settings{}
	}

	gym, err := s.repo.UpdateGym(ctx, id, req.Name, req.Logo, req.Settings)
	if err != nil {
		return nil, apperr.Wrap("update gym", err)
	}
	return gym, nil
}
