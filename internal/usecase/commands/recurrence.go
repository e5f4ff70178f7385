package commands

import (
	"context"
	"fmt"
	"time"

	"roombook/internal/domain/booking"
	"roombook/internal/domain/recurrence"
	reqdto "roombook/internal/handler/dto/request"
	"roombook/internal/infra"
	"roombook/internal/pkg/errs"
	"roombook/internal/pkg/patch"
	"roombook/internal/usecase"
	"roombook/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrRecurrenceGroupNotFound = errs.New("recurrence group not found")
	ErrInvalidRecurrence       = errs.New("invalid recurrence pattern")
	ErrAllOccurrencesConflict  = errs.New("every occurrence conflicts with existing bookings")
)

type RecurrenceRepository interface {
	CreateGroup(ctx context.Context, tx infra.DBTX, g *recurrence.Group) error
	FindGroupByID(ctx context.Context, id uuid.UUID) (*recurrence.Group, error)
	UpdateGroup(ctx context.Context, tx infra.DBTX, g *recurrence.Group) error
	// CancelOccurrences cancels every confirmed booking of the group and
	// reports how many rows changed.
	CancelOccurrences(ctx context.Context, tx infra.DBTX, groupID uuid.UUID) (int64, error)
	// UpdateOccurrenceDetails rewrites purpose, attendees and notes on every
	// confirmed booking of the group.
	UpdateOccurrenceDetails(ctx context.Context, tx infra.DBTX, groupID uuid.UUID, purpose string, attendees int, notes string) (int64, error)
}

type RecurrenceQueriesReader interface {
	GetGroupByIDSystem(ctx context.Context, id uuid.UUID) (*queries.RecurrenceGroupView, error)
	ListOccurrencesSystem(ctx context.Context, groupID uuid.UUID) ([]*queries.BookingListItem, error)
}

type CreateRecurringResult struct {
	Group        *queries.RecurrenceGroupView
	Created      []*queries.BookingListItem
	SkippedDates []time.Time
}

type CancelRecurringResult struct {
	CancelledCount int64
}

type RecurrenceCommands interface {
	Create(ctx context.Context, req reqdto.CreateRecurringRequest, userID uuid.UUID) (*CreateRecurringResult, error)
	CancelAll(ctx context.Context, groupID uuid.UUID, actorID uuid.UUID, isAdmin bool) (*CancelRecurringResult, error)
	UpdateAll(ctx context.Context, groupID uuid.UUID, req reqdto.UpdateRecurringRequest, actorID uuid.UUID, isAdmin bool) (*queries.RecurrenceGroupView, error)
}

type recurrenceCommandsImpl struct {
	recurrenceRepo RecurrenceRepository
	bookingRepo    BookingRepository
	rooms          RoomSnapshotSource
	notifications  NotificationWriter
	availability   usecase.AvailabilityChecker
	recQueries     RecurrenceQueriesReader
	reportCache    ReportInvalidator
	changeNotifier ChangeNotifier
	txRunner       TxRunner
}

func NewRecurrenceCommands(
	recurrenceRepo RecurrenceRepository,
	bookingRepo BookingRepository,
	rooms RoomSnapshotSource,
	notifications NotificationWriter,
	availability usecase.AvailabilityChecker,
	recQueries RecurrenceQueriesReader,
	reportCache ReportInvalidator,
	changeNotifier ChangeNotifier,
	txRunner TxRunner,
) RecurrenceCommands {
	return &recurrenceCommandsImpl{
		recurrenceRepo: recurrenceRepo,
		bookingRepo:    bookingRepo,
		rooms:          rooms,
		notifications:  notifications,
		availability:   availability,
		recQueries:     recQueries,
		reportCache:    reportCache,
		changeNotifier: changeNotifier,
		txRunner:       txRunner,
	}
}

func (c *recurrenceCommandsImpl) Create(
	ctx context.Context,
	req reqdto.CreateRecurringRequest,
	userID uuid.UUID,
) (*CreateRecurringResult, error) {
	room, err := c.findRoom(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	group, err := recurrence.NewGroup(
		req.RoomID, userID,
		req.Purpose, req.Attendees, notesValue(req.Notes),
		req.DayOfWeek, req.StartTime, req.EndTime,
		req.StartDate, req.EndDate,
	)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRecurrence)
	}

	spec := booking.RoomSpec{ID: room.ID, Capacity: room.Capacity, IsActive: room.IsActive}
	var skipped []time.Time
	createdCount := 0

	err = c.withTx(ctx, func(tx infra.DBTX) error {
		if err := c.bookingRepo.LockRoom(ctx, tx, room.ID); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := c.recurrenceRepo.CreateGroup(ctx, tx, group); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		for _, date := range group.OccurrenceDates() {
			slot, slotErr := group.SlotOn(date)
			if slotErr != nil {
				return errs.Mark(slotErr, ErrInvalidRecurrence)
			}

			free, checkErr := c.availability.IsSlotFree(ctx, room.ID, slot, nil, nil)
			if checkErr != nil {
				return errs.Mark(checkErr, ErrDatabaseOperationFailed)
			}
			if !free {
				skipped = append(skipped, date)
				continue
			}

			occ, occErr := booking.NewOccurrence(spec, userID, slot, group.Purpose(), group.Attendees(), group.Notes(), group.ID())
			if occErr != nil {
				return errs.Mark(occErr, ErrDomainValidation)
			}
			if createErr := c.bookingRepo.Create(ctx, tx, occ); createErr != nil {
				if infra.IsKind(createErr, infra.KindConflict) {
					skipped = append(skipped, date)
					continue
				}
				return errs.Mark(createErr, ErrDatabaseOperationFailed)
			}
			createdCount++
		}

		if createdCount == 0 {
			return ErrAllOccurrencesConflict
		}

		message := fmt.Sprintf("Your recurring booking for %s has been created (%d occurrences)", room.Name, createdCount)
		if err := c.notifications.Create(ctx, tx, userID, notificationBookingConfirmed, message, nil); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.afterCalendarChange(ctx)

	groupView, err := c.recQueries.GetGroupByIDSystem(ctx, group.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	created, err := c.recQueries.ListOccurrencesSystem(ctx, group.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &CreateRecurringResult{
		Group:        groupView,
		Created:      created,
		SkippedDates: skipped,
	}, nil
}

func (c *recurrenceCommandsImpl) CancelAll(
	ctx context.Context,
	groupID uuid.UUID,
	actorID uuid.UUID,
	isAdmin bool,
) (*CancelRecurringResult, error) {
	group, err := c.findOwnedGroup(ctx, groupID, actorID, isAdmin)
	if err != nil {
		return nil, err
	}

	if err := group.Cancel(); err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	var cancelled int64
	err = c.withTx(ctx, func(tx infra.DBTX) error {
		if err := c.recurrenceRepo.UpdateGroup(ctx, tx, group); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		var cancelErr error
		cancelled, cancelErr = c.recurrenceRepo.CancelOccurrences(ctx, tx, group.ID())
		if cancelErr != nil {
			return errs.Mark(cancelErr, ErrDatabaseOperationFailed)
		}

		message := fmt.Sprintf("Your recurring booking has been cancelled (%d occurrences)", cancelled)
		if err := c.notifications.Create(ctx, tx, group.UserID(), notificationBookingCancelled, message, nil); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.afterCalendarChange(ctx)
	return &CancelRecurringResult{CancelledCount: cancelled}, nil
}

func (c *recurrenceCommandsImpl) UpdateAll(
	ctx context.Context,
	groupID uuid.UUID,
	req reqdto.UpdateRecurringRequest,
	actorID uuid.UUID,
	isAdmin bool,
) (*queries.RecurrenceGroupView, error) {
	group, err := c.findOwnedGroup(ctx, groupID, actorID, isAdmin)
	if err != nil {
		return nil, err
	}

	room, err := c.findRoom(ctx, group.RoomID())
	if err != nil {
		return nil, err
	}

	purpose := patch.Coalesce(req.Purpose, group.Purpose())
	attendees := patch.Coalesce(req.Attendees, group.Attendees())
	notes := patch.Coalesce(req.Notes, group.Notes())

	if err := group.UpdateDetails(purpose, attendees, notes, room.Capacity); err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	err = c.withTx(ctx, func(tx infra.DBTX) error {
		if err := c.recurrenceRepo.UpdateGroup(ctx, tx, group); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if _, err := c.recurrenceRepo.UpdateOccurrenceDetails(ctx, tx, group.ID(), purpose, attendees, notes); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.afterCalendarChange(ctx)
	return c.recQueries.GetGroupByIDSystem(ctx, group.ID())
}

func (c *recurrenceCommandsImpl) findRoom(ctx context.Context, roomID uuid.UUID) (*RoomSnapshot, error) {
	room, err := c.rooms.SnapshotByID(ctx, roomID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return room, nil
}

func (c *recurrenceCommandsImpl) findOwnedGroup(ctx context.Context, groupID, actorID uuid.UUID, isAdmin bool) (*recurrence.Group, error) {
	group, err := c.recurrenceRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRecurrenceGroupNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if !isAdmin && group.UserID() != actorID {
		return nil, ErrNotOwner
	}
	return group, nil
}

func (c *recurrenceCommandsImpl) withTx(ctx context.Context, fn func(tx infra.DBTX) error) error {
	return c.txRunner.RunInTx(ctx, fn)
}

func (c *recurrenceCommandsImpl) afterCalendarChange(ctx context.Context) {
	notifyCalendarChange(ctx, c.reportCache, c.changeNotifier)
}

func notesValue(notes *string) string {
	if notes == nil {
		return ""
	}
	return *notes
}
