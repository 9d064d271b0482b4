package clase

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var slotColumns = []string{"id", "gym_id", "clase_id", "clase_nombre", "dia", "hora_inicio", "hora_fin", "profesor_id", "profesor_nombre", "cupo"}

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestRepository_CreateClass(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO clases`).
		WithArgs(1, "Funcional", "Circuito").
		WillReturnRows(sqlmock.NewRows([]string{"id", "gym_id", "name", "description", "created_at"}).
			AddRow(3, 1, "Funcional", "Circuito", time.Now()))

	class, err := repo.CreateClass(context.Background(), 1, "Funcional", "Circuito")

	require.NoError(t, err)
	assert.Equal(t, 3, class.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListSlots(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT .* FROM horarios h JOIN clases c .* LEFT JOIN professors p .* WHERE h.clase_id = \$1 AND c.gym_id = \$2`).
		WithArgs(3, 1).
		WillReturnRows(sqlmock.NewRows(slotColumns).
			AddRow(1, 1, 3, "Funcional", "Lunes", "18:00", "19:00", 4, "Caro", 10).
			AddRow(2, 1, 3, "Funcional", "Jueves", "08:00", "09:00", nil, nil, nil))

	slots, err := repo.ListSlots(context.Background(), 1, 3)

	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "Caro", *slots[0].ProfessorName)
	assert.Nil(t, slots[1].ProfessorID)
	assert.Nil(t, slots[1].Capacity)
}

func TestRepository_ListAllSlots(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT .* FROM horarios h .* ORDER BY c.gym_id ASC, h.id ASC`).
		WillReturnRows(sqlmock.NewRows(slotColumns).
			AddRow(1, 1, 3, "Funcional", "Lunes", "18:00", "19:00", nil, nil, nil).
			AddRow(7, 2, 5, "Spinning", "Martes", "07:00", "08:00", nil, nil, 20))

	slots, err := repo.ListAllSlots(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, slots[1].GymID)
}

func TestRepository_CreateSlot(t *testing.T) {
	repo, mock := newMockRepo(t)
	capacity := 12

	mock.ExpectQuery(`WITH inserted AS \( INSERT INTO horarios`).
		WithArgs(3, "Lunes", "18:00", "19:00", nil, &capacity).
		WillReturnRows(sqlmock.NewRows(slotColumns).
			AddRow(9, 1, 3, "Funcional", "Lunes", "18:00", "19:00", nil, nil, 12))

	slot, err := repo.CreateSlot(context.Background(), 3, "Lunes", "18:00", "19:00", nil, &capacity)

	require.NoError(t, err)
	assert.Equal(t, 9, slot.ID)
	assert.Equal(t, 12, *slot.Capacity)
}

func TestRepository_DeleteSlotScopedToGym(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`DELETE FROM horarios h USING clases c`).
		WithArgs(9, 3, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteSlot(context.Background(), 2, 3, 9)

	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestRepository_DeleteClass(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`DELETE FROM clases WHERE id = \$1 AND gym_id = \$2`).
		WithArgs(3, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.DeleteClass(context.Background(), 1, 3))
}

func TestRepository_ProfessorInGym(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM professors`).
		WithArgs(4, 1).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	ok, err := repo.ProfessorInGym(context.Background(), 1, 4)

	assert.NoError(t, err)
	assert.False(t, ok)
}
