//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"roombook/internal/domain/booking"
	"roombook/internal/domain/recurrence"
	"roombook/internal/domain/schedule"
	reqdto "roombook/internal/handler/dto/request"
	"roombook/internal/infra"
	"roombook/internal/usecase/commands"
	"roombook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTxRunner struct {
	runs int
}

func (f *fakeTxRunner) RunInTx(_ context.Context, fn func(tx infra.DBTX) error) error {
	f.runs++
	return fn(nil)
}

type fakeBookingRepo struct {
	created      []*booking.Booking
	conflictDays map[string]bool
	locked       []uuid.UUID
}

func (f *fakeBookingRepo) Create(_ context.Context, _ infra.DBTX, b *booking.Booking) error {
	if f.conflictDays[b.Slot().Start().Format("2006-01-02")] {
		return infra.WrapRepoErr("slot overlaps an existing booking", errors.New("exclusion constraint"), infra.KindConflict)
	}
	f.created = append(f.created, b)
	return nil
}

func (f *fakeBookingRepo) FindByID(context.Context, uuid.UUID) (*booking.Booking, error) {
	return nil, infra.WrapRepoErr("booking not found", errors.New("no rows"), infra.KindNotFound)
}

func (f *fakeBookingRepo) Update(context.Context, infra.DBTX, *booking.Booking) error {
	return nil
}

func (f *fakeBookingRepo) LockRoom(_ context.Context, _ infra.DBTX, roomID uuid.UUID) error {
	f.locked = append(f.locked, roomID)
	return nil
}

type fakeAvailability struct {
	busyDays map[string]bool
}

func (f *fakeAvailability) CheckOverlap(_ context.Context, _ uuid.UUID, candidate schedule.Interval, _ *uuid.UUID) (bool, error) {
	return f.busyDays[candidate.Start().Format("2006-01-02")], nil
}

func (f *fakeAvailability) CheckRecurringOverlap(context.Context, uuid.UUID, schedule.Interval, *uuid.UUID) (bool, error) {
	return false, nil
}

func (f *fakeAvailability) IsSlotFree(_ context.Context, _ uuid.UUID, candidate schedule.Interval, _, _ *uuid.UUID) (bool, error) {
	return !f.busyDays[candidate.Start().Format("2006-01-02")], nil
}

type fakeRecurrenceRepo struct {
	groups []*recurrence.Group
}

func (f *fakeRecurrenceRepo) CreateGroup(_ context.Context, _ infra.DBTX, g *recurrence.Group) error {
	f.groups = append(f.groups, g)
	return nil
}

func (f *fakeRecurrenceRepo) FindGroupByID(context.Context, uuid.UUID) (*recurrence.Group, error) {
	return nil, infra.WrapRepoErr("recurrence group not found", errors.New("no rows"), infra.KindNotFound)
}

func (f *fakeRecurrenceRepo) UpdateGroup(context.Context, infra.DBTX, *recurrence.Group) error {
	return nil
}

func (f *fakeRecurrenceRepo) CancelOccurrences(context.Context, infra.DBTX, uuid.UUID) (int64, error) {
	return 0, nil
}

func (f *fakeRecurrenceRepo) UpdateOccurrenceDetails(context.Context, infra.DBTX, uuid.UUID, string, int, string) (int64, error) {
	return 0, nil
}

type fakeRoomSource struct {
	room *commands.RoomSnapshot
}

func (f *fakeRoomSource) SnapshotByID(_ context.Context, id uuid.UUID) (*commands.RoomSnapshot, error) {
	if f.room == nil || f.room.ID != id {
		return nil, infra.WrapRepoErr("room not found", errors.New("no rows"), infra.KindNotFound)
	}
	return f.room, nil
}

type fakeNotificationWriter struct {
	messages []string
}

func (f *fakeNotificationWriter) Create(_ context.Context, _ infra.DBTX, _ uuid.UUID, _, message string, _ *uuid.UUID) error {
	f.messages = append(f.messages, message)
	return nil
}

type fakeRecurrenceReader struct {
	repo *fakeBookingRepo
}

func (f *fakeRecurrenceReader) GetGroupByIDSystem(_ context.Context, id uuid.UUID) (*queries.RecurrenceGroupView, error) {
	return &queries.RecurrenceGroupView{ID: id, Status: "active"}, nil
}

func (f *fakeRecurrenceReader) ListOccurrencesSystem(context.Context, uuid.UUID) ([]*queries.BookingListItem, error) {
	items := make([]*queries.BookingListItem, 0, len(f.repo.created))
	for _, b := range f.repo.created {
		items = append(items, &queries.BookingListItem{
			ID:        b.ID(),
			RoomID:    b.RoomID(),
			StartTime: b.Slot().Start(),
			EndTime:   b.Slot().End(),
			Status:    "confirmed",
		})
	}
	return items, nil
}

type countingNotifier struct {
	changes int
}

func (c *countingNotifier) BookingsChanged() { c.changes++ }

type recurrenceFixture struct {
	commands     commands.RecurrenceCommands
	bookingRepo  *fakeBookingRepo
	groupRepo    *fakeRecurrenceRepo
	notifier     *countingNotifier
	notification *fakeNotificationWriter
	txRunner     *fakeTxRunner
	roomID       uuid.UUID
	userID       uuid.UUID
}

func newRecurrenceFixture(busyDays, conflictDays map[string]bool) *recurrenceFixture {
	roomID := uuid.New()
	bookingRepo := &fakeBookingRepo{conflictDays: conflictDays}
	groupRepo := &fakeRecurrenceRepo{}
	notifier := &countingNotifier{}
	notification := &fakeNotificationWriter{}
	txRunner := &fakeTxRunner{}

	cmds := commands.NewRecurrenceCommands(
		groupRepo,
		bookingRepo,
		&fakeRoomSource{room: &commands.RoomSnapshot{ID: roomID, Name: "Board Room", Capacity: 10, IsActive: true}},
		notification,
		&fakeAvailability{busyDays: busyDays},
		&fakeRecurrenceReader{repo: bookingRepo},
		nil,
		notifier,
		txRunner,
	)

	return &recurrenceFixture{
		commands:     cmds,
		bookingRepo:  bookingRepo,
		groupRepo:    groupRepo,
		notifier:     notifier,
		notification: notification,
		txRunner:     txRunner,
		roomID:       roomID,
		userID:       uuid.New(),
	}
}

// Four Mondays in March 2024: the 4th, 11th, 18th and 25th.
func mondayPatternRequest(roomID uuid.UUID) reqdto.CreateRecurringRequest {
	return reqdto.CreateRecurringRequest{
		RoomID:    roomID,
		Purpose:   "weekly sync",
		Attendees: 4,
		DayOfWeek: 1,
		StartTime: "09:00",
		EndTime:   "10:00",
		StartDate: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC),
	}
}

func TestRecurrenceCreateSkipsConflictingOccurrences(t *testing.T) {
	// The 11th fails the availability check, the 18th hits the storage
	// conflict backstop. Both are skipped, the remainder is created.
	f := newRecurrenceFixture(
		map[string]bool{"2024-03-11": true},
		map[string]bool{"2024-03-18": true},
	)

	result, err := f.commands.Create(context.Background(), mondayPatternRequest(f.roomID), f.userID)
	require.NoError(t, err)
	require.NotNil(t, result)

	require.Len(t, result.SkippedDates, 2)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), result.SkippedDates[0])
	assert.Equal(t, time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC), result.SkippedDates[1])

	require.Len(t, result.Created, 2)
	assert.Equal(t, time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC), result.Created[0].StartTime)
	assert.Equal(t, time.Date(2024, 3, 25, 9, 0, 0, 0, time.UTC), result.Created[1].StartTime)

	require.Len(t, f.groupRepo.groups, 1)
	for _, b := range f.bookingRepo.created {
		require.NotNil(t, b.RecurrenceGroupID())
		assert.Equal(t, f.groupRepo.groups[0].ID(), *b.RecurrenceGroupID())
	}

	assert.Equal(t, []uuid.UUID{f.roomID}, f.bookingRepo.locked)
	assert.Len(t, f.notification.messages, 1)
	assert.Contains(t, f.notification.messages[0], "2 occurrences")
	assert.Equal(t, 1, f.notifier.changes)
}

func TestRecurrenceCreateAllOccurrencesConflict(t *testing.T) {
	busy := map[string]bool{
		"2024-03-04": true,
		"2024-03-11": true,
		"2024-03-18": true,
		"2024-03-25": true,
	}
	f := newRecurrenceFixture(busy, nil)

	result, err := f.commands.Create(context.Background(), mondayPatternRequest(f.roomID), f.userID)
	require.ErrorIs(t, err, commands.ErrAllOccurrencesConflict)
	assert.Nil(t, result)

	assert.Empty(t, f.bookingRepo.created)
	assert.Empty(t, f.notification.messages)
	assert.Equal(t, 0, f.notifier.changes)
	assert.Equal(t, 1, f.txRunner.runs)
}

func TestRecurrenceCreateAllFreeCreatesEveryOccurrence(t *testing.T) {
	f := newRecurrenceFixture(nil, nil)

	result, err := f.commands.Create(context.Background(), mondayPatternRequest(f.roomID), f.userID)
	require.NoError(t, err)

	assert.Empty(t, result.SkippedDates)
	assert.Len(t, result.Created, 4)
	assert.Contains(t, f.notification.messages[0], "4 occurrences")
}

func TestRecurrenceCreateInvalidPattern(t *testing.T) {
	f := newRecurrenceFixture(nil, nil)

	req := mondayPatternRequest(f.roomID)
	req.StartTime = "10:00"
	req.EndTime = "09:00"

	_, err := f.commands.Create(context.Background(), req, f.userID)
	require.ErrorIs(t, err, commands.ErrInvalidRecurrence)
	assert.Equal(t, 0, f.txRunner.runs)
}
