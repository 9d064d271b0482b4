package user

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"id", "gym_id", "name", "email", "password_hash", "role", "created_at"}

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMockRepo(t)
	gymID := 3

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(3, "Lucía", "lucia@iron.app", "hash", "staff").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(1, 3, "Lucía", "lucia@iron.app", "hash", "staff", time.Now()))

	u, err := repo.Create(context.Background(), &gymID, "Lucía", "lucia@iron.app", "hash", "staff")

	require.NoError(t, err)
	assert.Equal(t, 1, u.ID)
	require.NotNil(t, u.GymID)
	assert.Equal(t, 3, *u.GymID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByEmail(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
		WithArgs("admin@ironhub.app").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(1, nil, "Admin", "admin@ironhub.app", "hash", "admin", time.Now()))

	u, err := repo.FindByEmail(context.Background(), "admin@ironhub.app")

	require.NoError(t, err)
	assert.Nil(t, u.GymID)
	assert.Equal(t, "admin", u.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_EmailExists(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("a@b.c").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.EmailExists(context.Background(), "a@b.c")

	require.NoError(t, err)
	assert.True(t, exists)
}
