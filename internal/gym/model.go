package gym

import "time"

// Gym is one tenant. Every other record carries its gym_id.
type Gym struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Subdomain string    `db:"subdomain" json:"subdomain"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CreateGymRequest struct {
	Name      string `json:"name" binding:"required,max=255"`
	Subdomain string `json:"subdomain" binding:"required,hostname_rfc1123,max=63"`
}
