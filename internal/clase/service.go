package clase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Mateo-Piedra22/IronHub-sub005/internal/db"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/ledger"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/schedule"
)

var (
	ErrClassNotFound     = errors.New("class not found")
	ErrSlotNotFound      = errors.New("slot not found")
	ErrProfessorNotFound = errors.New("professor not found")
	ErrInvalidSlot       = errors.New("invalid slot")
	ErrSlotRange         = errors.New("slot must end after it starts")
	ErrInvalidCapacity   = errors.New("capacity must be at least 1")
)

// Enrollments is the part of the ledger the schedule views read from.
type Enrollments interface {
	Enrollments(ctx context.Context, gymID, slotID int) (*ledger.Roster, error)
	CountBySlots(ctx context.Context, slotIDs []int) (map[int]int, error)
}

type Service interface {
	ListClasses(ctx context.Context, gymID int) ([]Class, error)
	GetClass(ctx context.Context, gymID, id int) (*Class, error)
	CreateClass(ctx context.Context, gymID int, req ClassRequest) (*Class, error)
	UpdateClass(ctx context.Context, gymID, id int, req ClassRequest) (*Class, error)
	DeleteClass(ctx context.Context, gymID, id int) error

	ListSlots(ctx context.Context, gymID, classID int) ([]Slot, error)
	CreateSlot(ctx context.Context, gymID, classID int, req CreateSlotRequest) (*Slot, error)
	DeleteSlot(ctx context.Context, gymID, classID, slotID int) error

	NextOccurrence(ctx context.Context, gymID, classID int) (*NextOccurrence, error)
	Grid(ctx context.Context, gymID int) (*GridResponse, error)

	ListProfessors(ctx context.Context, gymID int) ([]Professor, error)
	CreateProfessor(ctx context.Context, gymID int, req CreateProfessorRequest) (*Professor, error)
}

type service struct {
	repo        Repository
	enrollments Enrollments
	loc         *time.Location
	now         func() time.Time
}

// NewService resolves next occurrences in loc, the gym's wall clock.
func NewService(repo Repository, enrollments Enrollments, loc *time.Location) Service {
	if loc == nil {
		loc = time.Local
	}
	return &service{
		repo:        repo,
		enrollments: enrollments,
		loc:         loc,
		now:         time.Now,
	}
}

func (s *service) ListClasses(ctx context.Context, gymID int) ([]Class, error) {
	return s.repo.ListClasses(ctx, gymID)
}

func (s *service) GetClass(ctx context.Context, gymID, id int) (*Class, error) {
	c, err := s.repo.GetClass(ctx, gymID, id)
	if err != nil {
		return nil, notFound(err, ErrClassNotFound)
	}
	return c, nil
}

func (s *service) CreateClass(ctx context.Context, gymID int, req ClassRequest) (*Class, error) {
	return s.repo.CreateClass(ctx, gymID, strings.TrimSpace(req.Name), strings.TrimSpace(req.Description))
}

func (s *service) UpdateClass(ctx context.Context, gymID, id int, req ClassRequest) (*Class, error) {
	c, err := s.repo.UpdateClass(ctx, gymID, id, strings.TrimSpace(req.Name), strings.TrimSpace(req.Description))
	if err != nil {
		return nil, notFound(err, ErrClassNotFound)
	}
	return c, nil
}

func (s *service) DeleteClass(ctx context.Context, gymID, id int) error {
	return notFound(s.repo.DeleteClass(ctx, gymID, id), ErrClassNotFound)
}

func (s *service) ListSlots(ctx context.Context, gymID, classID int) ([]Slot, error) {
	if _, err := s.GetClass(ctx, gymID, classID); err != nil {
		return nil, err
	}
	return s.repo.ListSlots(ctx, gymID, classID)
}

func (s *service) CreateSlot(ctx context.Context, gymID, classID int, req CreateSlotRequest) (*Slot, error) {
	day, err := schedule.ParseWeekday(req.Day)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSlot, err)
	}
	start, err := schedule.ParseClock(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSlot, err)
	}
	end, err := schedule.ParseClock(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSlot, err)
	}
	if start >= end {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSlot, ErrSlotRange)
	}
	if req.Capacity != nil && *req.Capacity < 1 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSlot, ErrInvalidCapacity)
	}

	if _, err := s.GetClass(ctx, gymID, classID); err != nil {
		return nil, err
	}
	if req.ProfessorID != nil {
		ok, err := s.repo.ProfessorInGym(ctx, gymID, *req.ProfessorID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrProfessorNotFound
		}
	}

	return s.repo.CreateSlot(ctx, classID, day.Label(), start.String(), end.String(), req.ProfessorID, req.Capacity)
}

func (s *service) DeleteSlot(ctx context.Context, gymID, classID, slotID int) error {
	return notFound(s.repo.DeleteSlot(ctx, gymID, classID, slotID), ErrSlotNotFound)
}

// NextOccurrence returns nil without error when the class has no slot that
// can be scheduled.
func (s *service) NextOccurrence(ctx context.Context, gymID, classID int) (*NextOccurrence, error) {
	slots, err := s.ListSlots(ctx, gymID, classID)
	if err != nil {
		return nil, err
	}

	candidates := make([]schedule.Slot, len(slots))
	for i, slot := range slots {
		candidates[i] = slot.Schedule()
	}

	now := s.now().In(s.loc)
	occ, ok := schedule.FindNext(candidates, now)
	if !ok {
		return nil, nil
	}

	var chosen Slot
	for _, slot := range slots {
		if slot.ID == occ.Slot.ID {
			chosen = slot
			break
		}
	}

	roster, err := s.enrollments.Enrollments(ctx, gymID, chosen.ID)
	if err != nil {
		return nil, err
	}

	return &NextOccurrence{
		Slot:         chosen,
		Day:          schedule.Weekday(occ.At.Weekday()).Label(),
		At:           occ.At,
		End:          occ.End,
		DaysAhead:    occ.DayDelta,
		MinutesUntil: occ.MinutesUntil(now),
		Enrolled:     roster.Count,
		Occupancy:    roster.Occupancy,
		Enrollments:  roster.Enrollments,
	}, nil
}

func (s *service) Grid(ctx context.Context, gymID int) (*GridResponse, error) {
	slots, err := s.repo.ListGymSlots(ctx, gymID)
	if err != nil {
		return nil, err
	}

	ids := make([]int, len(slots))
	views := make([]schedule.Slot, len(slots))
	for i, slot := range slots {
		ids[i] = slot.ID
		views[i] = slot.Schedule()
	}

	counts, err := s.enrollments.CountBySlots(ctx, ids)
	if err != nil {
		return nil, err
	}

	grid := schedule.Project(views, counts)
	return &GridResponse{Days: grid.Columns(), Unknown: grid.Unknown}, nil
}

func (s *service) ListProfessors(ctx context.Context, gymID int) ([]Professor, error) {
	return s.repo.ListProfessors(ctx, gymID)
}

func (s *service) CreateProfessor(ctx context.Context, gymID int, req CreateProfessorRequest) (*Professor, error) {
	return s.repo.CreateProfessor(ctx, gymID, strings.TrimSpace(req.Name), strings.TrimSpace(req.Phone))
}

func notFound(err, sentinel error) error {
	if db.IsNotFound(err) {
		return sentinel
	}
	return err
}
