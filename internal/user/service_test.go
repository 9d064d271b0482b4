package user

import (
	"context"
	"database/sql"
	"testing"

	"github.com/Mateo-Piedra22/IronHub-sub005/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, gymID *int, name, email, passwordHash, role string) (*User, error) {
	args := m.Called(ctx, gymID, name, email, passwordHash, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id int) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func staffUser(t *testing.T, password string) *User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	gymID := 5
	return &User{ID: 10, GymID: &gymID, Name: "Recepción", Email: "recepcion@iron.app", PasswordHash: hash, Role: auth.RoleStaff}
}

func TestService_Login(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmail", mock.Anything, "recepcion@iron.app").Return(staffUser(t, "secreto123"), nil)

		session, err := NewService(repo, testSecret).Login(context.Background(), LoginRequest{Email: " Recepcion@Iron.app ", Password: "secreto123"})

		require.NoError(t, err)
		claims, err := auth.ValidateToken(session.AccessToken, testSecret)
		require.NoError(t, err)
		assert.Equal(t, 5, claims.GymID)
		assert.Equal(t, auth.RoleStaff, claims.Role)
		assert.NotEmpty(t, session.RefreshToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmail", mock.Anything, "recepcion@iron.app").Return(staffUser(t, "secreto123"), nil)

		_, err := NewService(repo, testSecret).Login(context.Background(), LoginRequest{Email: "recepcion@iron.app", Password: "nope"})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmail", mock.Anything, "x@iron.app").Return(nil, sql.ErrNoRows)

		_, err := NewService(repo, testSecret).Login(context.Background(), LoginRequest{Email: "x@iron.app", Password: "nope"})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_CreateStaff(t *testing.T) {
	t.Run("creates staff bound to gym", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("EmailExists", mock.Anything, "nuevo@iron.app").Return(false, nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(g *int) bool { return g != nil && *g == 4 }),
			"Nuevo", "nuevo@iron.app", mock.AnythingOfType("string"), auth.RoleStaff).
			Return(&User{ID: 11, Name: "Nuevo", Role: auth.RoleStaff}, nil)

		u, err := NewService(repo, testSecret).CreateStaff(context.Background(), CreateStaffRequest{
			GymID: 4, Name: "Nuevo", Email: "nuevo@iron.app", Password: "password1",
		})

		require.NoError(t, err)
		assert.Equal(t, 11, u.ID)
		repo.AssertExpectations(t)
	})

	t.Run("email taken", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("EmailExists", mock.Anything, "nuevo@iron.app").Return(true, nil)

		_, err := NewService(repo, testSecret).CreateStaff(context.Background(), CreateStaffRequest{
			GymID: 4, Name: "Nuevo", Email: "nuevo@iron.app", Password: "password1",
		})

		assert.ErrorIs(t, err, ErrEmailExists)
		repo.AssertNotCalled(t, "Create")
	})
}

func TestService_Refresh(t *testing.T) {
	repo := new(MockRepository)
	u := staffUser(t, "secreto123")
	repo.On("FindByID", mock.Anything, 10).Return(u, nil)

	refresh, err := auth.GenerateRefreshToken(auth.Identity{UserID: 10, GymID: 5, Role: auth.RoleStaff}, testSecret)
	require.NoError(t, err)

	session, err := NewService(repo, testSecret).Refresh(context.Background(), refresh)

	require.NoError(t, err)
	assert.Equal(t, u, session.User)
}

func TestService_GetByIDNotFound(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByID", mock.Anything, 1).Return(nil, sql.ErrNoRows)

	_, err := NewService(repo, testSecret).GetByID(context.Background(), 1)

	assert.ErrorIs(t, err, ErrUserNotFound)
}
