package ledger

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/Mateo-Piedra22/IronHub-sub005/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of Repository. InTx runs the
// callback against the mock itself.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) InTx(ctx context.Context, fn func(tx Repository) error) error {
	return fn(m)
}

func (m *MockRepository) LockSlot(ctx context.Context, gymID, slotID int) (*SlotState, error) {
	args := m.Called(ctx, gymID, slotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SlotState), args.Error(1)
}

func (m *MockRepository) GetSlot(ctx context.Context, gymID, slotID int) (*SlotState, error) {
	args := m.Called(ctx, gymID, slotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SlotState), args.Error(1)
}

func (m *MockRepository) MemberInGym(ctx context.Context, gymID, memberID int) (bool, error) {
	args := m.Called(ctx, gymID, memberID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) ListEnrollments(ctx context.Context, slotID int) ([]Enrollment, error) {
	args := m.Called(ctx, slotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Enrollment), args.Error(1)
}

func (m *MockRepository) ListWaitlist(ctx context.Context, slotID int) ([]WaitlistEntry, error) {
	args := m.Called(ctx, slotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]WaitlistEntry), args.Error(1)
}

func (m *MockRepository) CountBySlots(ctx context.Context, slotIDs []int) (map[int]int, error) {
	args := m.Called(ctx, slotIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int]int), args.Error(1)
}

func (m *MockRepository) CreateEnrollment(ctx context.Context, slotID, memberID int) error {
	return m.Called(ctx, slotID, memberID).Error(0)
}

func (m *MockRepository) DeleteEnrollment(ctx context.Context, slotID, memberID int) error {
	return m.Called(ctx, slotID, memberID).Error(0)
}

func (m *MockRepository) CreateWaitlistEntry(ctx context.Context, slotID, memberID int) error {
	return m.Called(ctx, slotID, memberID).Error(0)
}

func (m *MockRepository) DeleteWaitlistEntry(ctx context.Context, slotID, memberID int) error {
	return m.Called(ctx, slotID, memberID).Error(0)
}

type sentSpot struct {
	to        notify.Recipient
	className string
	when      string
}

type fakeNotifier struct {
	err  error
	sent []sentSpot
}

func (f *fakeNotifier) WaitlistSpot(_ context.Context, to notify.Recipient, className, when string) error {
	f.sent = append(f.sent, sentSpot{to: to, className: className, when: when})
	return f.err
}

func testSlot(capacity *int) *SlotState {
	return &SlotState{ID: 5, GymID: 1, ClassID: 2, ClassName: "Funcional", Day: "lunes", StartTime: "18:00", EndTime: "19:00", Capacity: capacity}
}

func enrollments(ids ...int) []Enrollment {
	out := make([]Enrollment, len(ids))
	for i, id := range ids {
		out[i] = Enrollment{ID: i + 1, SlotID: 5, MemberID: id}
	}
	return out
}

func waitlist(ids ...int) []WaitlistEntry {
	out := make([]WaitlistEntry, len(ids))
	for i, id := range ids {
		out[i] = WaitlistEntry{ID: i + 1, SlotID: 5, MemberID: id, Position: i + 1, MemberName: "Socio", MemberPhone: "+5491100000000"}
	}
	return out
}

func expectLoad(repo *MockRepository, slot *SlotState, enrolled []Enrollment, waiting []WaitlistEntry) {
	repo.On("LockSlot", mock.Anything, 1, 5).Return(slot, nil)
	repo.On("ListEnrollments", mock.Anything, 5).Return(enrolled, nil)
	repo.On("ListWaitlist", mock.Anything, 5).Return(waiting, nil)
}

func TestService_Enroll(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)

	repo.On("MemberInGym", mock.Anything, 1, 2).Return(true, nil)
	expectLoad(repo, testSlot(intPtr(2)), enrollments(1), waitlist())
	repo.On("CreateEnrollment", mock.Anything, 5, 2).Return(nil)

	snap, err := svc.Enroll(context.Background(), 1, 5, 2)

	require.NoError(t, err)
	assert.Equal(t, 2, snap.Enrolled)
	assert.True(t, snap.IsFull)
	assert.Equal(t, 0, *snap.Available)
	assert.Equal(t, []int{1, 2}, snap.Members)
	repo.AssertExpectations(t)
}

func TestService_EnrollFromWaitlist(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)

	repo.On("MemberInGym", mock.Anything, 1, 8).Return(true, nil)
	expectLoad(repo, testSlot(intPtr(3)), enrollments(1), waitlist(8, 9))
	repo.On("CreateEnrollment", mock.Anything, 5, 8).Return(nil)
	repo.On("DeleteWaitlistEntry", mock.Anything, 5, 8).Return(nil)

	snap, err := svc.Enroll(context.Background(), 1, 5, 8)

	require.NoError(t, err)
	assert.Equal(t, 1, snap.Waitlist)
	repo.AssertExpectations(t)
}

func TestService_EnrollCapacityExceeded(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)

	repo.On("MemberInGym", mock.Anything, 1, 2).Return(true, nil)
	expectLoad(repo, testSlot(intPtr(1)), enrollments(1), waitlist())

	snap, err := svc.Enroll(context.Background(), 1, 5, 2)

	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Nil(t, snap)
	repo.AssertNotCalled(t, "CreateEnrollment", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_EnrollUnlimited(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)

	repo.On("MemberInGym", mock.Anything, 1, 4).Return(true, nil)
	expectLoad(repo, testSlot(nil), enrollments(1, 2, 3), waitlist())
	repo.On("CreateEnrollment", mock.Anything, 5, 4).Return(nil)

	snap, err := svc.Enroll(context.Background(), 1, 5, 4)

	require.NoError(t, err)
	assert.False(t, snap.IsFull)
	assert.Nil(t, snap.Available)
}

func TestService_EnrollAlreadyEnrolledByConcurrentInsert(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)

	repo.On("MemberInGym", mock.Anything, 1, 2).Return(true, nil)
	expectLoad(repo, testSlot(intPtr(5)), enrollments(1), waitlist())
	repo.On("CreateEnrollment", mock.Anything, 5, 2).Return(ErrAlreadyEnrolled)

	_, err := svc.Enroll(context.Background(), 1, 5, 2)

	assert.ErrorIs(t, err, ErrAlreadyEnrolled)
}

func TestService_EnrollMemberNotFound(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)

	repo.On("MemberInGym", mock.Anything, 1, 99).Return(false, nil)

	_, err := svc.Enroll(context.Background(), 1, 5, 99)

	assert.ErrorIs(t, err, ErrMemberNotFound)
	repo.AssertNotCalled(t, "LockSlot", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_EnrollSlotNotFound(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)

	repo.On("MemberInGym", mock.Anything, 1, 2).Return(true, nil)
	repo.On("LockSlot", mock.Anything, 1, 5).Return(nil, sql.ErrNoRows)

	_, err := svc.Enroll(context.Background(), 1, 5, 2)

	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestService_Unenroll(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)

	expectLoad(repo, testSlot(intPtr(2)), enrollments(1, 2), waitlist(3))
	repo.On("DeleteEnrollment", mock.Anything, 5, 2).Return(nil)

	snap, err := svc.Unenroll(context.Background(), 1, 5, 2)

	require.NoError(t, err)
	assert.Equal(t, 1, snap.Enrolled)
	assert.False(t, snap.IsFull)
	assert.Equal(t, 1, snap.Waitlist)
}

func TestService_UnenrollNotEnrolled(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)

	expectLoad(repo, testSlot(intPtr(2)), enrollments(1), waitlist())

	_, err := svc.Unenroll(context.Background(), 1, 5, 2)

	assert.ErrorIs(t, err, ErrNotEnrolled)
	repo.AssertNotCalled(t, "DeleteEnrollment", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_AddToWaitlist(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)

	repo.On("MemberInGym", mock.Anything, 1, 3).Return(true, nil)
	expectLoad(repo, testSlot(intPtr(1)), enrollments(1), waitlist(2))
	repo.On("CreateWaitlistEntry", mock.Anything, 5, 3).Return(nil)

	snap, err := svc.AddToWaitlist(context.Background(), 1, 5, 3)

	require.NoError(t, err)
	assert.Equal(t, 2, snap.Waitlist)
}

func TestService_AddToWaitlistRejectsEnrolledMember(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)

	repo.On("MemberInGym", mock.Anything, 1, 1).Return(true, nil)
	expectLoad(repo, testSlot(intPtr(1)), enrollments(1), waitlist())

	_, err := svc.AddToWaitlist(context.Background(), 1, 5, 1)

	assert.ErrorIs(t, err, ErrAlreadyEnrolled)
}

func TestService_AddToWaitlistDuplicate(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)

	repo.On("MemberInGym", mock.Anything, 1, 2).Return(true, nil)
	expectLoad(repo, testSlot(intPtr(1)), enrollments(1), waitlist(2))

	_, err := svc.AddToWaitlist(context.Background(), 1, 5, 2)

	assert.ErrorIs(t, err, ErrAlreadyWaitlisted)
}

func TestService_RemoveFromWaitlist(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)

	expectLoad(repo, testSlot(intPtr(1)), enrollments(1), waitlist(2, 3, 4))
	repo.On("DeleteWaitlistEntry", mock.Anything, 5, 3).Return(nil)

	snap, err := svc.RemoveFromWaitlist(context.Background(), 1, 5, 3)

	require.NoError(t, err)
	assert.Equal(t, 2, snap.Waitlist)
}

func TestService_RemoveFromWaitlistMissing(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)

	expectLoad(repo, testSlot(intPtr(1)), enrollments(1), waitlist())

	_, err := svc.RemoveFromWaitlist(context.Background(), 1, 5, 3)

	assert.ErrorIs(t, err, ErrNotWaitlisted)
}

func TestService_NotifyNext(t *testing.T) {
	repo := new(MockRepository)
	notifier := &fakeNotifier{}
	svc := NewService(repo, notifier)

	expectLoad(repo, testSlot(intPtr(1)), enrollments(1), waitlist(7, 8))
	repo.On("DeleteWaitlistEntry", mock.Anything, 5, 7).Return(nil)

	entry, err := svc.NotifyNext(context.Background(), 1, 5)

	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, 7, entry.MemberID)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "Funcional", notifier.sent[0].className)
	assert.Equal(t, "Lunes 18:00", notifier.sent[0].when)
	assert.Equal(t, "+5491100000000", notifier.sent[0].to.Phone)
	repo.AssertNotCalled(t, "CreateEnrollment", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_NotifyNextEmpty(t *testing.T) {
	repo := new(MockRepository)
	notifier := &fakeNotifier{}
	svc := NewService(repo, notifier)

	expectLoad(repo, testSlot(intPtr(1)), enrollments(1), waitlist())

	entry, err := svc.NotifyNext(context.Background(), 1, 5)

	assert.NoError(t, err)
	assert.Nil(t, entry)
	assert.Empty(t, notifier.sent)
	repo.AssertNotCalled(t, "DeleteWaitlistEntry", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_NotifyNextQueueFailureKeepsPop(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, &fakeNotifier{err: errors.New("redis down")})

	expectLoad(repo, testSlot(intPtr(1)), enrollments(), waitlist(7))
	repo.On("DeleteWaitlistEntry", mock.Anything, 5, 7).Return(nil)

	entry, err := svc.NotifyNext(context.Background(), 1, 5)

	require.NoError(t, err)
	assert.Equal(t, 7, entry.MemberID)
}

func TestService_Enrollments(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)

	repo.On("GetSlot", mock.Anything, 1, 5).Return(testSlot(intPtr(2)), nil)
	repo.On("ListEnrollments", mock.Anything, 5).Return(enrollments(1), nil)

	roster, err := svc.Enrollments(context.Background(), 1, 5)

	require.NoError(t, err)
	assert.Equal(t, 1, roster.Count)
	assert.Equal(t, "1/2", roster.Occupancy)
}

func TestService_WaitlistSlotNotFound(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)

	repo.On("GetSlot", mock.Anything, 1, 5).Return(nil, sql.ErrNoRows)

	_, err := svc.Waitlist(context.Background(), 1, 5)

	assert.ErrorIs(t, err, ErrSlotNotFound)
}
