package ledger

import "context"

type Repository interface {
	// InTx runs fn against a repository bound to one transaction.
	InTx(ctx context.Context, fn func(tx Repository) error) error

	LockSlot(ctx context.Context, gymID, slotID int) (*SlotState, error)
	GetSlot(ctx context.Context, gymID, slotID int) (*SlotState, error)
	MemberInGym(ctx context.Context, gymID, memberID int) (bool, error)

	ListEnrollments(ctx context.Context, slotID int) ([]Enrollment, error)
	ListWaitlist(ctx context.Context, slotID int) ([]WaitlistEntry, error)
	CountBySlots(ctx context.Context, slotIDs []int) (map[int]int, error)

	CreateEnrollment(ctx context.Context, slotID, memberID int) error
	DeleteEnrollment(ctx context.Context, slotID, memberID int) error
	CreateWaitlistEntry(ctx context.Context, slotID, memberID int) error
	DeleteWaitlistEntry(ctx context.Context, slotID, memberID int) error
}
