package clase

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListClasses(ctx context.Context, gymID int) ([]Class, error) {
	query := `
		SELECT id, gym_id, name, description, created_at
		FROM clases
		WHERE gym_id = $1
		ORDER BY name ASC
	`

	classes := []Class{}
	if err := r.db.SelectContext(ctx, &classes, query, gymID); err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *repository) GetClass(ctx context.Context, gymID, id int) (*Class, error) {
	query := `SELECT id, gym_id, name, description, created_at FROM clases WHERE id = $1 AND gym_id = $2`

	var c Class
	if err := r.db.GetContext(ctx, &c, query, id, gymID); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) CreateClass(ctx context.Context, gymID int, name, description string) (*Class, error) {
	query := `
		INSERT INTO clases (gym_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, gym_id, name, description, created_at
	`

	var c Class
	if err := r.db.GetContext(ctx, &c, query, gymID, name, description); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) UpdateClass(ctx context.Context, gymID, id int, name, description string) (*Class, error) {
	query := `
		UPDATE clases SET name = $1, description = $2
		WHERE id = $3 AND gym_id = $4
		RETURNING id, gym_id, name, description, created_at
	`

	var c Class
	if err := r.db.GetContext(ctx, &c, query, name, description, id, gymID); err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteClass removes the class. Slots, enrollments and waitlist entries go
// with it through ON DELETE CASCADE.
func (r *repository) DeleteClass(ctx context.Context, gymID, id int) error {
	query := `DELETE FROM clases WHERE id = $1 AND gym_id = $2`
	return r.deleteOne(ctx, query, id, gymID)
}

const slotSelect = `
	SELECT h.id, c.gym_id, h.clase_id, c.name AS clase_nombre, h.dia,
		to_char(h.hora_inicio, 'HH24:MI') AS hora_inicio,
		to_char(h.hora_fin, 'HH24:MI') AS hora_fin,
		h.profesor_id, p.name AS profesor_nombre, h.cupo
	FROM horarios h
	JOIN clases c ON c.id = h.clase_id
	LEFT JOIN professors p ON p.id = h.profesor_id
`

func (r *repository) ListSlots(ctx context.Context, gymID, classID int) ([]Slot, error) {
	query := slotSelect + `
		WHERE h.clase_id = $1 AND c.gym_id = $2
		ORDER BY h.id ASC
	`

	slots := []Slot{}
	if err := r.db.SelectContext(ctx, &slots, query, classID, gymID); err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *repository) ListGymSlots(ctx context.Context, gymID int) ([]Slot, error) {
	query := slotSelect + `
		WHERE c.gym_id = $1
		ORDER BY h.id ASC
	`

	slots := []Slot{}
	if err := r.db.SelectContext(ctx, &slots, query, gymID); err != nil {
		return nil, err
	}
	return slots, nil
}

// ListAllSlots spans every gym; only the reminder scheduler uses it.
func (r *repository) ListAllSlots(ctx context.Context) ([]Slot, error) {
	query := slotSelect + `ORDER BY c.gym_id ASC, h.id ASC`

	slots := []Slot{}
	if err := r.db.SelectContext(ctx, &slots, query); err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *repository) CreateSlot(ctx context.Context, classID int, day, start, end string, professorID, capacity *int) (*Slot, error) {
	query := `
		WITH inserted AS (
			INSERT INTO horarios (clase_id, dia, hora_inicio, hora_fin, profesor_id, cupo)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING *
		)
		SELECT h.id, c.gym_id, h.clase_id, c.name AS clase_nombre, h.dia,
			to_char(h.hora_inicio, 'HH24:MI') AS hora_inicio,
			to_char(h.hora_fin, 'HH24:MI') AS hora_fin,
			h.profesor_id, p.name AS profesor_nombre, h.cupo
		FROM inserted h
		JOIN clases c ON c.id = h.clase_id
		LEFT JOIN professors p ON p.id = h.profesor_id
	`

	var s Slot
	if err := r.db.GetContext(ctx, &s, query, classID, day, start, end, professorID, capacity); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) DeleteSlot(ctx context.Context, gymID, classID, slotID int) error {
	query := `
		DELETE FROM horarios h
		USING clases c
		WHERE h.id = $1 AND h.clase_id = $2 AND c.id = h.clase_id AND c.gym_id = $3
	`
	return r.deleteOne(ctx, query, slotID, classID, gymID)
}

func (r *repository) ProfessorInGym(ctx context.Context, gymID, professorID int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM professors WHERE id = $1 AND gym_id = $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, professorID, gymID); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *repository) ListProfessors(ctx context.Context, gymID int) ([]Professor, error) {
	query := `
		SELECT id, gym_id, name, phone, created_at
		FROM professors
		WHERE gym_id = $1
		ORDER BY name ASC
	`

	professors := []Professor{}
	if err := r.db.SelectContext(ctx, &professors, query, gymID); err != nil {
		return nil, err
	}
	return professors, nil
}

func (r *repository) CreateProfessor(ctx context.Context, gymID int, name, phone string) (*Professor, error) {
	query := `
		INSERT INTO professors (gym_id, name, phone)
		VALUES ($1, $2, $3)
		RETURNING id, gym_id, name, phone, created_at
	`

	var p Professor
	if err := r.db.GetContext(ctx, &p, query, gymID, name, phone); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) deleteOne(ctx context.Context, query string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
