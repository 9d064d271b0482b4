package member

import (
	"context"
	"errors"
	"strings"

	"github.com/Mateo-Piedra22/IronHub-sub005/internal/db"
)

var ErrMemberNotFound = errors.New("member not found")

type Service interface {
	Create(ctx context.Context, gymID int, req CreateMemberRequest) (*Member, error)
	List(ctx context.Context, gymID int, search string) ([]Member, error)
	Get(ctx context.Context, gymID, id int) (*Member, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, gymID int, req CreateMemberRequest) (*Member, error) {
	return s.repo.Create(ctx, gymID,
		strings.TrimSpace(req.Name),
		strings.TrimSpace(req.Phone),
		strings.ToLower(strings.TrimSpace(req.Email)),
	)
}

func (s *service) List(ctx context.Context, gymID int, search string) ([]Member, error) {
	return s.repo.List(ctx, gymID, strings.TrimSpace(search))
}

func (s *service) Get(ctx context.Context, gymID, id int) (*Member, error) {
	m, err := s.repo.GetByID(ctx, gymID, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return m, nil
}
