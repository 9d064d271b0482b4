package member

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, gymID int, name, phone, email string) (*Member, error) {
	query := `
		INSERT INTO members (gym_id, name, phone, email)
		VALUES ($1, $2, $3, $4)
		RETURNING id, gym_id, name, phone, email, created_at
	`

	var m Member
	if err := r.db.GetContext(ctx, &m, query, gymID, name, phone, email); err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) List(ctx context.Context, gymID int, search string) ([]Member, error) {
	query := `
		SELECT id, gym_id, name, phone, email, created_at
		FROM members
		WHERE gym_id = $1 AND ($2 = '' OR name ILIKE '%' || $2 || '%')
		ORDER BY name ASC
	`

	members := []Member{}
	if err := r.db.SelectContext(ctx, &members, query, gymID, search); err != nil {
		return nil, err
	}

	return members, nil
}

func (r *repository) GetByID(ctx context.Context, gymID, id int) (*Member, error) {
	query := `
		SELECT id, gym_id, name, phone, email, created_at
		FROM members
		WHERE gym_id = $1 AND id = $2
	`

	var m Member
	if err := r.db.GetContext(ctx, &m, query, gymID, id); err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) GetByIDs(ctx context.Context, gymID int, ids []int) ([]Member, error) {
	members := []Member{}
	if len(ids) == 0 {
		return members, nil
	}

	query := `
		SELECT id, gym_id, name, phone, email, created_at
		FROM members
		WHERE gym_id = $1 AND id = ANY($2)
	`

	if err := r.db.SelectContext(ctx, &members, query, gymID, pq.Array(ids)); err != nil {
		return nil, err
	}

	return members, nil
}
