package user

import (
	"context"
	"errors"
	"strings"

	"github.com/Mateo-Piedra22/IronHub-sub005/internal/auth"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/db"
)

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

type Session struct {
	User         *User
	AccessToken  string
	RefreshToken string
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*Session, error)
	CreateStaff(ctx context.Context, req CreateStaffRequest) (*User, error)
	GetByID(ctx context.Context, userID int) (*User, error)
	Refresh(ctx context.Context, refreshToken string) (*Session, error)
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

func (s *service) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *service) CreateStaff(ctx context.Context, req CreateStaffRequest) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	gymID := req.GymID
	user, err := s.repo.Create(ctx, &gymID, strings.TrimSpace(req.Name), email, passwordHash, auth.RoleStaff)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	return user, nil
}

func (s *service) GetByID(ctx context.Context, userID int) (*User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	_, claims, err := auth.RefreshAccessToken(refreshToken, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	return s.issue(user)
}

func (s *service) issue(user *User) (*Session, error) {
	id := auth.Identity{UserID: user.ID, Email: user.Email, Role: user.Role}
	if user.GymID != nil {
		id.GymID = *user.GymID
	}

	accessToken, refreshToken, err := auth.GenerateTokens(id, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &Session{User: user, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
