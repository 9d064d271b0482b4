package ledger

import (
	"errors"
	"slices"
)

var (
	ErrCapacityExceeded  = errors.New("slot is at capacity")
	ErrAlreadyEnrolled   = errors.New("member already enrolled in slot")
	ErrAlreadyWaitlisted = errors.New("member already on the waitlist")
	ErrNotEnrolled       = errors.New("member is not enrolled in slot")
	ErrNotWaitlisted     = errors.New("member is not on the waitlist")
)

// Ledger is the enrollment and waitlist bookkeeping of a single slot.
// Failed operations leave it untouched. The enrolled count is always the
// size of the enrolled set.
type Ledger struct {
	capacity *int
	enrolled []int
	waitlist []int
}

// New builds a ledger from persisted state. Duplicates are dropped and any
// waitlisted member that is also enrolled is removed from the waitlist.
func New(capacity *int, enrolled, waitlist []int) *Ledger {
	l := &Ledger{capacity: capacity}
	for _, m := range enrolled {
		if !l.IsEnrolled(m) {
			l.enrolled = append(l.enrolled, m)
		}
	}
	for _, m := range waitlist {
		if !l.IsEnrolled(m) && !l.IsWaitlisted(m) {
			l.waitlist = append(l.waitlist, m)
		}
	}
	return l
}

func (l *Ledger) Capacity() *int {
	return l.capacity
}

func (l *Ledger) EnrolledCount() int {
	return len(l.enrolled)
}

// Available is nil for slots without a capacity.
func (l *Ledger) Available() *int {
	if l.capacity == nil {
		return nil
	}
	left := *l.capacity - len(l.enrolled)
	if left < 0 {
		left = 0
	}
	return &left
}

func (l *Ledger) IsFull() bool {
	return l.capacity != nil && len(l.enrolled) >= *l.capacity
}

func (l *Ledger) IsEnrolled(member int) bool {
	return slices.Contains(l.enrolled, member)
}

func (l *Ledger) IsWaitlisted(member int) bool {
	return slices.Contains(l.waitlist, member)
}

func (l *Ledger) Enrolled() []int {
	return slices.Clone(l.enrolled)
}

// Waitlist returns the queue head first.
func (l *Ledger) Waitlist() []int {
	return slices.Clone(l.waitlist)
}

// Enroll adds member to the slot. A member enrolled straight from the
// waitlist leaves the waitlist.
func (l *Ledger) Enroll(member int) error {
	if l.IsEnrolled(member) {
		return ErrAlreadyEnrolled
	}
	if l.IsFull() {
		return ErrCapacityExceeded
	}
	l.enrolled = append(l.enrolled, member)
	l.waitlist = remove(l.waitlist, member)
	return nil
}

func (l *Ledger) Unenroll(member int) error {
	if !l.IsEnrolled(member) {
		return ErrNotEnrolled
	}
	l.enrolled = remove(l.enrolled, member)
	return nil
}

func (l *Ledger) AddToWaitlist(member int) error {
	if l.IsEnrolled(member) {
		return ErrAlreadyEnrolled
	}
	if l.IsWaitlisted(member) {
		return ErrAlreadyWaitlisted
	}
	l.waitlist = append(l.waitlist, member)
	return nil
}

func (l *Ledger) RemoveFromWaitlist(member int) error {
	if !l.IsWaitlisted(member) {
		return ErrNotWaitlisted
	}
	l.waitlist = remove(l.waitlist, member)
	return nil
}

// NotifyNext pops the waitlist head. It does not enroll the member.
func (l *Ledger) NotifyNext() (int, bool) {
	if len(l.waitlist) == 0 {
		return 0, false
	}
	head := l.waitlist[0]
	l.waitlist = slices.Clone(l.waitlist[1:])
	return head, true
}

func remove(ids []int, member int) []int {
	return slices.DeleteFunc(slices.Clone(ids), func(id int) bool { return id == member })
}
