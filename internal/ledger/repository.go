package ledger

import (
	"context"

	"github.com/Mateo-Piedra22/IronHub-sub005/internal/db"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type repository struct {
	root *sqlx.DB
	q    sqlx.ExtContext
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{root: database, q: database}
}

func (r *repository) InTx(ctx context.Context, fn func(tx Repository) error) error {
	if r.root == nil {
		return fn(r)
	}
	return db.WithTx(ctx, r.root, func(tx *sqlx.Tx) error {
		return fn(&repository{q: tx})
	})
}

const slotColumns = `
	h.id, c.gym_id, h.clase_id, c.name AS clase_nombre, h.dia,
	to_char(h.hora_inicio, 'HH24:MI') AS hora_inicio,
	to_char(h.hora_fin, 'HH24:MI') AS hora_fin,
	h.cupo`

func (r *repository) LockSlot(ctx context.Context, gymID, slotID int) (*SlotState, error) {
	query := `SELECT` + slotColumns + `
		FROM horarios h
		JOIN clases c ON c.id = h.clase_id
		WHERE h.id = $1 AND c.gym_id = $2
		FOR UPDATE OF h
	`

	var s SlotState
	if err := sqlx.GetContext(ctx, r.q, &s, query, slotID, gymID); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) GetSlot(ctx context.Context, gymID, slotID int) (*SlotState, error) {
	query := `SELECT` + slotColumns + `
		FROM horarios h
		JOIN clases c ON c.id = h.clase_id
		WHERE h.id = $1 AND c.gym_id = $2
	`

	var s SlotState
	if err := sqlx.GetContext(ctx, r.q, &s, query, slotID, gymID); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) MemberInGym(ctx context.Context, gymID, memberID int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM members WHERE id = $1 AND gym_id = $2)`

	var exists bool
	if err := sqlx.GetContext(ctx, r.q, &exists, query, memberID, gymID); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *repository) ListEnrollments(ctx context.Context, slotID int) ([]Enrollment, error) {
	query := `
		SELECT i.id, i.horario_id, i.member_id,
			m.name AS member_name, m.phone AS member_phone, m.email AS member_email,
			i.created_at
		FROM inscripciones i
		JOIN members m ON m.id = i.member_id
		WHERE i.horario_id = $1
		ORDER BY i.created_at ASC, i.id ASC
	`

	enrollments := []Enrollment{}
	if err := sqlx.SelectContext(ctx, r.q, &enrollments, query, slotID); err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *repository) ListWaitlist(ctx context.Context, slotID int) ([]WaitlistEntry, error) {
	query := `
		SELECT le.id, le.horario_id, le.member_id,
			m.name AS member_name, m.phone AS member_phone, m.email AS member_email,
			ROW_NUMBER() OVER (ORDER BY le.id) AS position,
			le.created_at
		FROM lista_espera le
		JOIN members m ON m.id = le.member_id
		WHERE le.horario_id = $1
		ORDER BY le.id ASC
	`

	entries := []WaitlistEntry{}
	if err := sqlx.SelectContext(ctx, r.q, &entries, query, slotID); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) CountBySlots(ctx context.Context, slotIDs []int) (map[int]int, error) {
	counts := make(map[int]int, len(slotIDs))
	if len(slotIDs) == 0 {
		return counts, nil
	}

	query := `
		SELECT horario_id, COUNT(*) AS total
		FROM inscripciones
		WHERE horario_id = ANY($1)
		GROUP BY horario_id
	`

	var rows []struct {
		SlotID int `db:"horario_id"`
		Total  int `db:"total"`
	}
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, pq.Array(slotIDs)); err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.SlotID] = row.Total
	}
	return counts, nil
}

func (r *repository) CreateEnrollment(ctx context.Context, slotID, memberID int) error {
	query := `INSERT INTO inscripciones (horario_id, member_id) VALUES ($1, $2)`

	if _, err := r.q.ExecContext(ctx, query, slotID, memberID); err != nil {
		if db.IsUniqueViolation(err) {
			return ErrAlreadyEnrolled
		}
		return err
	}
	return nil
}

func (r *repository) DeleteEnrollment(ctx context.Context, slotID, memberID int) error {
	query := `DELETE FROM inscripciones WHERE horario_id = $1 AND member_id = $2`
	return r.deleteOne(ctx, query, ErrNotEnrolled, slotID, memberID)
}

func (r *repository) CreateWaitlistEntry(ctx context.Context, slotID, memberID int) error {
	query := `INSERT INTO lista_espera (horario_id, member_id) VALUES ($1, $2)`

	if _, err := r.q.ExecContext(ctx, query, slotID, memberID); err != nil {
		if db.IsUniqueViolation(err) {
			return ErrAlreadyWaitlisted
		}
		return err
	}
	return nil
}

func (r *repository) DeleteWaitlistEntry(ctx context.Context, slotID, memberID int) error {
	query := `DELETE FROM lista_espera WHERE horario_id = $1 AND member_id = $2`
	return r.deleteOne(ctx, query, ErrNotWaitlisted, slotID, memberID)
}

func (r *repository) deleteOne(ctx context.Context, query string, notFound error, args ...interface{}) error {
	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}
