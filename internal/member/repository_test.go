package member

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var memberColumns = []string{"id", "gym_id", "name", "phone", "email", "created_at"}

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestRepository_List(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM members WHERE gym_id = \$1`).
		WithArgs(2, "ana").
		WillReturnRows(sqlmock.NewRows(memberColumns).
			AddRow(1, 2, "Ana", "+5491100000000", "", time.Now()).
			AddRow(5, 2, "Mariana", "", "mariana@mail.com", time.Now()))

	members, err := repo.List(context.Background(), 2, "ana")

	require.NoError(t, err)
	assert.Len(t, members, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByIDsEmpty(t *testing.T) {
	repo, mock := newMockRepo(t)

	members, err := repo.GetByIDs(context.Background(), 2, nil)

	require.NoError(t, err)
	assert.Empty(t, members)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByIDs(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM members WHERE gym_id = \$1 AND id = ANY\(\$2\)`).
		WithArgs(2, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(memberColumns).AddRow(1, 2, "Ana", "", "", time.Now()))

	members, err := repo.GetByIDs(context.Background(), 2, []int{1, 3})

	require.NoError(t, err)
	assert.Len(t, members, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
