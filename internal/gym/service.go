package gym

import (
	"context"
	"errors"
	"strings"

	"github.com/Mateo-Piedra22/IronHub-sub005/internal/db"
)

var (
	ErrGymNotFound     = errors.New("gym not found")
	ErrSubdomainExists = errors.New("subdomain already taken")
)

type Service interface {
	CreateGym(ctx context.Context, req CreateGymRequest) (*Gym, error)
	GetAllGyms(ctx context.Context) ([]Gym, error)
	GetGymByID(ctx context.Context, id int) (*Gym, error)
	Resolve(ctx context.Context, subdomain string) (*Gym, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) CreateGym(ctx context.Context, req CreateGymRequest) (*Gym, error) {
	gym, err := s.repo.CreateGym(ctx, strings.TrimSpace(req.Name), strings.ToLower(req.Subdomain))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrSubdomainExists
		}
		return nil, err
	}
	return gym, nil
}

func (s *service) GetAllGyms(ctx context.Context) ([]Gym, error) {
	return s.repo.GetAllGyms(ctx)
}

func (s *service) GetGymByID(ctx context.Context, id int) (*Gym, error) {
	gym, err := s.repo.GetGymByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrGymNotFound
		}
		return nil, err
	}
	return gym, nil
}

// Resolve finds the tenant behind a subdomain such as "iron" in iron.ironhub.app.
func (s *service) Resolve(ctx context.Context, subdomain string) (*Gym, error) {
	gym, err := s.repo.GetGymBySubdomain(ctx, strings.ToLower(strings.TrimSpace(subdomain)))
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrGymNotFound
		}
		return nil, err
	}
	return gym, nil
}
