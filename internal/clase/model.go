package clase

import (
	"time"

	"github.com/Mateo-Piedra22/IronHub-sub005/internal/ledger"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/schedule"
)

// Class is a class definition ("Funcional", "Spinning") of one gym.
type Class struct {
	ID          int       `db:"id" json:"id"`
	GymID       int       `db:"gym_id" json:"gym_id"`
	Name        string    `db:"name" json:"nombre"`
	Description string    `db:"description" json:"descripcion"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Slot is a weekly recurring time window of a class. Day is stored as the
// canonical Spanish label, times as HH:MM.
type Slot struct {
	ID            int     `db:"id" json:"id"`
	GymID         int     `db:"gym_id" json:"-"`
	ClassID       int     `db:"clase_id" json:"clase_id"`
	ClassName     string  `db:"clase_nombre" json:"clase_nombre"`
	Day           string  `db:"dia" json:"dia"`
	StartTime     string  `db:"hora_inicio" json:"hora_inicio"`
	EndTime       string  `db:"hora_fin" json:"hora_fin"`
	ProfessorID   *int    `db:"profesor_id" json:"profesor_id,omitempty"`
	ProfessorName *string `db:"profesor_nombre" json:"profesor_nombre,omitempty"`
	Capacity      *int    `db:"cupo" json:"cupo,omitempty"`
}

func (s Slot) Schedule() schedule.Slot {
	return schedule.Slot{
		ID:        s.ID,
		ClassID:   s.ClassID,
		ClassName: s.ClassName,
		Day:       s.Day,
		Start:     s.StartTime,
		End:       s.EndTime,
		Professor: s.ProfessorName,
		Capacity:  s.Capacity,
	}
}

type Professor struct {
	ID        int       `db:"id" json:"id"`
	GymID     int       `db:"gym_id" json:"gym_id"`
	Name      string    `db:"name" json:"nombre"`
	Phone     string    `db:"phone" json:"telefono"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type ClassRequest struct {
	Name        string `json:"nombre" binding:"required,max=255"`
	Description string `json:"descripcion" binding:"max=2000"`
}

type CreateSlotRequest struct {
	Day         string `json:"dia" binding:"required"`
	StartTime   string `json:"hora_inicio" binding:"required"`
	EndTime     string `json:"hora_fin" binding:"required"`
	ProfessorID *int   `json:"profesor_id" binding:"omitempty,gt=0"`
	Capacity    *int   `json:"cupo"`
}

type CreateProfessorRequest struct {
	Name  string `json:"nombre" binding:"required,max=255"`
	Phone string `json:"telefono" binding:"omitempty,e164"`
}

// NextOccurrence is the soonest upcoming session of a class together with
// the enrollment snapshot of its slot.
type NextOccurrence struct {
	Slot         Slot                `json:"horario"`
	Day          string              `json:"dia"`
	At           time.Time           `json:"fecha"`
	End          time.Time           `json:"fin,omitempty"`
	DaysAhead    int                 `json:"dias"`
	MinutesUntil int                 `json:"minutos"`
	Enrolled     int                 `json:"inscriptos"`
	Occupancy    string              `json:"ocupacion"`
	Enrollments  []ledger.Enrollment `json:"inscripciones"`
}

type GridResponse struct {
	Days    []schedule.DayColumn `json:"dias"`
	Unknown []schedule.SlotView  `json:"sin_dia,omitempty"`
}
