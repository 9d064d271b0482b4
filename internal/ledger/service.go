package ledger

import (
	"context"
	"errors"

	"github.com/Mateo-Piedra22/IronHub-sub005/internal/db"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/logger"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/metrics"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/notify"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/schedule"
)

var (
	ErrSlotNotFound   = errors.New("slot not found")
	ErrMemberNotFound = errors.New("member not found")
)

// Notifier delivers the "a spot opened up" message to a waitlisted member.
type Notifier interface {
	WaitlistSpot(ctx context.Context, to notify.Recipient, className, when string) error
}

type Service interface {
	Enroll(ctx context.Context, gymID, slotID, memberID int) (*Snapshot, error)
	Unenroll(ctx context.Context, gymID, slotID, memberID int) (*Snapshot, error)
	AddToWaitlist(ctx context.Context, gymID, slotID, memberID int) (*Snapshot, error)
	RemoveFromWaitlist(ctx context.Context, gymID, slotID, memberID int) (*Snapshot, error)
	NotifyNext(ctx context.Context, gymID, slotID int) (*WaitlistEntry, error)
	Enrollments(ctx context.Context, gymID, slotID int) (*Roster, error)
	Waitlist(ctx context.Context, gymID, slotID int) ([]WaitlistEntry, error)
	CountBySlots(ctx context.Context, slotIDs []int) (map[int]int, error)
}

type service struct {
	repo     Repository
	notifier Notifier
}

// NewService wires the ledger rules to storage. notifier may be nil, in
// which case NotifyNext only pops the waitlist.
func NewService(repo Repository, notifier Notifier) Service {
	return &service{
		repo:     repo,
		notifier: notifier,
	}
}

func (s *service) Enroll(ctx context.Context, gymID, slotID, memberID int) (*Snapshot, error) {
	if err := s.checkMember(ctx, gymID, memberID); err != nil {
		return nil, err
	}

	snap, err := s.mutate(ctx, gymID, slotID, func(tx Repository, l *Ledger) error {
		wasWaitlisted := l.IsWaitlisted(memberID)
		if err := l.Enroll(memberID); err != nil {
			return err
		}
		if err := tx.CreateEnrollment(ctx, slotID, memberID); err != nil {
			return err
		}
		if wasWaitlisted {
			return tx.DeleteWaitlistEntry(ctx, slotID, memberID)
		}
		return nil
	})

	metrics.RecordEnrollment("enroll", resultLabel(err))
	return snap, err
}

func (s *service) Unenroll(ctx context.Context, gymID, slotID, memberID int) (*Snapshot, error) {
	snap, err := s.mutate(ctx, gymID, slotID, func(tx Repository, l *Ledger) error {
		if err := l.Unenroll(memberID); err != nil {
			return err
		}
		return tx.DeleteEnrollment(ctx, slotID, memberID)
	})

	metrics.RecordEnrollment("unenroll", resultLabel(err))
	return snap, err
}

func (s *service) AddToWaitlist(ctx context.Context, gymID, slotID, memberID int) (*Snapshot, error) {
	if err := s.checkMember(ctx, gymID, memberID); err != nil {
		return nil, err
	}

	snap, err := s.mutate(ctx, gymID, slotID, func(tx Repository, l *Ledger) error {
		if err := l.AddToWaitlist(memberID); err != nil {
			return err
		}
		return tx.CreateWaitlistEntry(ctx, slotID, memberID)
	})

	metrics.RecordWaitlist("add", resultLabel(err))
	return snap, err
}

func (s *service) RemoveFromWaitlist(ctx context.Context, gymID, slotID, memberID int) (*Snapshot, error) {
	snap, err := s.mutate(ctx, gymID, slotID, func(tx Repository, l *Ledger) error {
		if err := l.RemoveFromWaitlist(memberID); err != nil {
			return err
		}
		return tx.DeleteWaitlistEntry(ctx, slotID, memberID)
	})

	metrics.RecordWaitlist("remove", resultLabel(err))
	return snap, err
}

// NotifyNext pops the head of the waitlist and queues a message for that
// member. It returns nil when the waitlist is empty. The member is not
// enrolled; staff does that explicitly.
func (s *service) NotifyNext(ctx context.Context, gymID, slotID int) (*WaitlistEntry, error) {
	var (
		head *WaitlistEntry
		slot *SlotState
	)

	err := s.repo.InTx(ctx, func(tx Repository) error {
		st, l, entries, err := load(ctx, tx, gymID, slotID)
		if err != nil {
			return err
		}

		memberID, ok := l.NotifyNext()
		if !ok {
			return nil
		}
		for i := range entries {
			if entries[i].MemberID == memberID {
				head = &entries[i]
				break
			}
		}
		slot = st
		return tx.DeleteWaitlistEntry(ctx, slotID, memberID)
	})
	if err != nil {
		metrics.RecordWaitlist("notify", resultLabel(err))
		return nil, err
	}
	if head == nil {
		metrics.RecordWaitlist("notify", "empty")
		return nil, nil
	}

	metrics.RecordWaitlist("notify", "ok")
	logger.Info("Waitlist head notified", "slot_id", slotID, "member_id", head.MemberID)

	if s.notifier != nil {
		to := notify.Recipient{Name: head.MemberName, Phone: head.MemberPhone, Email: head.MemberEmail}
		if err := s.notifier.WaitlistSpot(ctx, to, slot.ClassName, describeSlot(slot)); err != nil {
			logger.Error("Failed to queue waitlist notification", "slot_id", slotID, "member_id", head.MemberID, "error", err)
		}
	}

	return head, nil
}

func (s *service) Enrollments(ctx context.Context, gymID, slotID int) (*Roster, error) {
	slot, err := s.getSlot(ctx, gymID, slotID)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.repo.ListEnrollments(ctx, slotID)
	if err != nil {
		return nil, err
	}

	return &Roster{
		SlotID:      slot.ID,
		Capacity:    slot.Capacity,
		Count:       len(enrollments),
		Occupancy:   schedule.Occupancy(len(enrollments), slot.Capacity),
		Enrollments: enrollments,
	}, nil
}

func (s *service) Waitlist(ctx context.Context, gymID, slotID int) ([]WaitlistEntry, error) {
	if _, err := s.getSlot(ctx, gymID, slotID); err != nil {
		return nil, err
	}
	return s.repo.ListWaitlist(ctx, slotID)
}

func (s *service) CountBySlots(ctx context.Context, slotIDs []int) (map[int]int, error) {
	return s.repo.CountBySlots(ctx, slotIDs)
}

func (s *service) mutate(ctx context.Context, gymID, slotID int, apply func(tx Repository, l *Ledger) error) (*Snapshot, error) {
	var snap *Snapshot

	err := s.repo.InTx(ctx, func(tx Repository) error {
		slot, l, _, err := load(ctx, tx, gymID, slotID)
		if err != nil {
			return err
		}
		if err := apply(tx, l); err != nil {
			return err
		}
		snap = snapshotOf(slot, l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// load locks the slot row and rebuilds its ledger from storage.
func load(ctx context.Context, tx Repository, gymID, slotID int) (*SlotState, *Ledger, []WaitlistEntry, error) {
	slot, err := tx.LockSlot(ctx, gymID, slotID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, nil, nil, ErrSlotNotFound
		}
		return nil, nil, nil, err
	}

	enrollments, err := tx.ListEnrollments(ctx, slotID)
	if err != nil {
		return nil, nil, nil, err
	}
	waitlist, err := tx.ListWaitlist(ctx, slotID)
	if err != nil {
		return nil, nil, nil, err
	}

	enrolled := make([]int, len(enrollments))
	for i, e := range enrollments {
		enrolled[i] = e.MemberID
	}
	waiting := make([]int, len(waitlist))
	for i, w := range waitlist {
		waiting[i] = w.MemberID
	}

	return slot, New(slot.Capacity, enrolled, waiting), waitlist, nil
}

func (s *service) getSlot(ctx context.Context, gymID, slotID int) (*SlotState, error) {
	slot, err := s.repo.GetSlot(ctx, gymID, slotID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	return slot, nil
}

func (s *service) checkMember(ctx context.Context, gymID, memberID int) error {
	ok, err := s.repo.MemberInGym(ctx, gymID, memberID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrMemberNotFound
	}
	return nil
}

func snapshotOf(slot *SlotState, l *Ledger) *Snapshot {
	return &Snapshot{
		SlotID:    slot.ID,
		Capacity:  l.Capacity(),
		Enrolled:  l.EnrolledCount(),
		Available: l.Available(),
		IsFull:    l.IsFull(),
		Waitlist:  len(l.Waitlist()),
		Members:   l.Enrolled(),
	}
}

func describeSlot(slot *SlotState) string {
	if d, err := schedule.ParseWeekday(slot.Day); err == nil {
		return d.Label() + " " + slot.StartTime
	}
	return slot.Day + " " + slot.StartTime
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, ErrAlreadyEnrolled):
		return "already_enrolled"
	case errors.Is(err, ErrAlreadyWaitlisted):
		return "already_waitlisted"
	case errors.Is(err, ErrNotEnrolled):
		return "not_enrolled"
	case errors.Is(err, ErrNotWaitlisted):
		return "not_waitlisted"
	case errors.Is(err, ErrSlotNotFound), errors.Is(err, ErrMemberNotFound):
		return "not_found"
	default:
		return "error"
	}
}
