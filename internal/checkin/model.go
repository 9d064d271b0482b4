package checkin

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusVerified Status = "verified"
	StatusExpired  Status = "expired"
)

// Token is a single use QR check-in code for one member.
type Token struct {
	Token      string     `json:"token"`
	GymID      int        `json:"gym_id"`
	MemberID   int        `json:"member_id"`
	Status     Status     `json:"status"`
	ExpiresAt  time.Time  `json:"expires_at"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
}

type IssueRequest struct {
	MemberID int `json:"member_id" binding:"required,gt=0"`
}

type ScanRequest struct {
	Token string `json:"token" binding:"required,uuid"`
}
