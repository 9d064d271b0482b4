package ledger

import "time"

// SlotState is the locked slot row a ledger operation works against.
type SlotState struct {
	ID        int    `db:"id" json:"id"`
	GymID     int    `db:"gym_id" json:"gym_id"`
	ClassID   int    `db:"clase_id" json:"clase_id"`
	ClassName string `db:"clase_nombre" json:"clase_nombre"`
	Day       string `db:"dia" json:"dia"`
	StartTime string `db:"hora_inicio" json:"hora_inicio"`
	EndTime   string `db:"hora_fin" json:"hora_fin"`
	Capacity  *int   `db:"cupo" json:"cupo,omitempty"`
}

type Enrollment struct {
	ID          int       `db:"id" json:"id"`
	SlotID      int       `db:"horario_id" json:"horario_id"`
	MemberID    int       `db:"member_id" json:"member_id"`
	MemberName  string    `db:"member_name" json:"member_name"`
	MemberPhone string    `db:"member_phone" json:"member_phone"`
	MemberEmail string    `db:"member_email" json:"member_email"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type WaitlistEntry struct {
	ID          int       `db:"id" json:"id"`
	SlotID      int       `db:"horario_id" json:"horario_id"`
	MemberID    int       `db:"member_id" json:"member_id"`
	MemberName  string    `db:"member_name" json:"member_name"`
	MemberPhone string    `db:"member_phone" json:"member_phone"`
	MemberEmail string    `db:"member_email" json:"member_email"`
	Position    int       `db:"position" json:"position"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Snapshot is the state of a slot right after an operation.
type Snapshot struct {
	SlotID    int   `json:"horario_id"`
	Capacity  *int  `json:"cupo,omitempty"`
	Enrolled  int   `json:"inscriptos"`
	Available *int  `json:"disponibles,omitempty"`
	IsFull    bool  `json:"completo"`
	Waitlist  int   `json:"en_espera"`
	Members   []int `json:"socios"`
}

// Roster is the enrollment list of a slot with its derived count.
type Roster struct {
	SlotID      int          `json:"horario_id"`
	Capacity    *int         `json:"cupo,omitempty"`
	Count       int          `json:"inscriptos"`
	Occupancy   string       `json:"ocupacion"`
	Enrollments []Enrollment `json:"inscripciones"`
}

type MemberRequest struct {
	MemberID int `json:"member_id" binding:"required,gt=0"`
}
