package gym

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateGym(ctx context.Context, name, subdomain string) (*Gym, error) {
	query := `
		INSERT INTO gyms (name, subdomain)
		VALUES ($1, $2)
		RETURNING id, name, subdomain, created_at
	`

	var gym Gym
	if err := r.db.GetContext(ctx, &gym, query, name, subdomain); err != nil {
		return nil, err
	}

	return &gym, nil
}

func (r *repository) GetAllGyms(ctx context.Context) ([]Gym, error) {
	query := `
		SELECT id, name, subdomain, created_at
		FROM gyms
		ORDER BY name ASC
	`

	gyms := []Gym{}
	if err := r.db.SelectContext(ctx, &gyms, query); err != nil {
		return nil, err
	}

	return gyms, nil
}

func (r *repository) GetGymByID(ctx context.Context, id int) (*Gym, error) {
	query := `
		SELECT id, name, subdomain, created_at
		FROM gyms
		WHERE id = $1
	`

	var gym Gym
	if err := r.db.GetContext(ctx, &gym, query, id); err != nil {
		return nil, err
	}

	return &gym, nil
}

func (r *repository) GetGymBySubdomain(ctx context.Context, subdomain string) (*Gym, error) {
	query := `
		SELECT id, name, subdomain, created_at
		FROM gyms
		WHERE subdomain = $1
	`

	var gym Gym
	if err := r.db.GetContext(ctx, &gym, query, subdomain); err != nil {
		return nil, err
	}

	return &gym, nil
}
