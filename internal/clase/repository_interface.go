package clase

import "context"

type Repository interface {
	ListClasses(ctx context.Context, gymID int) ([]Class, error)
	GetClass(ctx context.Context, gymID, id int) (*Class, error)
	CreateClass(ctx context.Context, gymID int, name, description string) (*Class, error)
	UpdateClass(ctx context.Context, gymID, id int, name, description string) (*Class, error)
	DeleteClass(ctx context.Context, gymID, id int) error

	ListSlots(ctx context.Context, gymID, classID int) ([]Slot, error)
	ListGymSlots(ctx context.Context, gymID int) ([]Slot, error)
	ListAllSlots(ctx context.Context) ([]Slot, error)
	CreateSlot(ctx context.Context, classID int, day, start, end string, professorID, capacity *int) (*Slot, error)
	DeleteSlot(ctx context.Context, gymID, classID, slotID int) error

	ProfessorInGym(ctx context.Context, gymID, professorID int) (bool, error)
	ListProfessors(ctx context.Context, gymID int) ([]Professor, error)
	CreateProfessor(ctx context.Context, gymID int, name, phone string) (*Professor, error)
}
