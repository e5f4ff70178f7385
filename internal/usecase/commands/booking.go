package commands

import (
	"context"
	"fmt"

	"roombook/internal/domain/booking"
	reqdto "roombook/internal/handler/dto/request"
	"roombook/internal/infra"
	"roombook/internal/pkg/clock"
	"roombook/internal/pkg/errs"
	"roombook/internal/pkg/patch"
	"roombook/internal/usecase"
	"roombook/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrRoomNotFound            = errs.New("room not found")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrBookingConflict         = errs.New("booking conflict")
	ErrInvalidTimeSlot         = errs.New("invalid time slot")
	ErrNotOwner                = errs.New("not the booking owner")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

const (
	notificationBookingConfirmed   = "booking_confirmed"
	notificationBookingCancelled   = "booking_cancelled"
	notificationBookingRescheduled = "booking_rescheduled"
)

type RoomSnapshot struct {
	ID       uuid.UUID
	Name     string
	Capacity int
	IsActive bool
}

type BookingRepository interface {
	Create(ctx context.Context, tx infra.DBTX, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	Update(ctx context.Context, tx infra.DBTX, b *booking.Booking) error
	// LockRoom serializes booking writers of one room for the duration of
	// the surrounding transaction.
	LockRoom(ctx context.Context, tx infra.DBTX, roomID uuid.UUID) error
}

type RoomSnapshotSource interface {
	SnapshotByID(ctx context.Context, id uuid.UUID) (*RoomSnapshot, error)
}

type NotificationWriter interface {
	Create(ctx context.Context, tx infra.DBTX, userID uuid.UUID, kind, message string, bookingID *uuid.UUID) error
}

// ReportInvalidator drops cached analytics reports after calendar writes.
type ReportInvalidator interface {
	InvalidateReports(ctx context.Context) error
}

// ChangeNotifier fans calendar changes out to live subscribers.
type ChangeNotifier interface {
	BookingsChanged()
}

type BookingQueriesReader interface {
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*queries.BookingView, error)
}

type BookingCommands interface {
	Create(ctx context.Context, req reqdto.CreateBookingRequest, userID uuid.UUID) (*queries.BookingView, error)
	Reschedule(ctx context.Context, bookingID uuid.UUID, req reqdto.UpdateBookingRequest, actorID uuid.UUID, isAdmin bool) (*queries.BookingView, error)
	Cancel(ctx context.Context, bookingID uuid.UUID, actorID uuid.UUID, isAdmin bool) error
}

type bookingCommandsImpl struct {
	bookingRepo    BookingRepository
	rooms          RoomSnapshotSource
	notifications  NotificationWriter
	availability   usecase.AvailabilityChecker
	bookingQueries BookingQueriesReader
	reportCache    ReportInvalidator
	changeNotifier ChangeNotifier
	txRunner       TxRunner
	clock          clock.Clock
}

func NewBookingCommands(
	bookingRepo BookingRepository,
	rooms RoomSnapshotSource,
	notifications NotificationWriter,
	availability usecase.AvailabilityChecker,
	bookingQueries BookingQueriesReader,
	reportCache ReportInvalidator,
	changeNotifier ChangeNotifier,
	txRunner TxRunner,
	clock clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		bookingRepo:    bookingRepo,
		rooms:          rooms,
		notifications:  notifications,
		availability:   availability,
		bookingQueries: bookingQueries,
		reportCache:    reportCache,
		changeNotifier: changeNotifier,
		txRunner:       txRunner,
		clock:          clock,
	}
}

func (c *bookingCommandsImpl) Create(
	ctx context.Context,
	req reqdto.CreateBookingRequest,
	userID uuid.UUID,
) (*queries.BookingView, error) {
	slot, err := req.Slot()
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidTimeSlot)
	}

	room, err := c.findRoom(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	entity, err := booking.NewBooking(
		&booking.Services{Clock: c.clock},
		booking.RoomSpec{ID: room.ID, Capacity: room.Capacity, IsActive: room.IsActive},
		userID,
		slot,
		req.Purpose,
		req.Attendees,
		req.GetNotes(),
	)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	free, err := c.availability.IsSlotFree(ctx, room.ID, slot, nil, nil)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !free {
		return nil, ErrBookingConflict
	}

	if err := c.persistBooking(ctx, entity, notificationBookingConfirmed,
		fmt.Sprintf("Your booking for %s has been confirmed", room.Name)); err != nil {
		return nil, err
	}

	c.afterCalendarChange(ctx)
	return c.bookingQueries.GetByIDSystem(ctx, entity.ID())
}

func (c *bookingCommandsImpl) Reschedule(
	ctx context.Context,
	bookingID uuid.UUID,
	req reqdto.UpdateBookingRequest,
	actorID uuid.UUID,
	isAdmin bool,
) (*queries.BookingView, error) {
	slot, err := req.Slot()
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidTimeSlot)
	}

	entity, err := c.findOwnedBooking(ctx, bookingID, actorID, isAdmin)
	if err != nil {
		return nil, err
	}

	room, err := c.findRoom(ctx, entity.RoomID())
	if err != nil {
		return nil, err
	}
	if attendees := patch.Coalesce(req.Attendees, entity.Attendees()); attendees < 1 || attendees > room.Capacity {
		return nil, errs.Mark(booking.ErrCapacityExceeded, ErrDomainValidation)
	}

	// The booking's own slot must not block its new position.
	excludeID := entity.ID()
	free, err := c.availability.IsSlotFree(ctx, entity.RoomID(), slot, &excludeID, entity.RecurrenceGroupID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !free {
		return nil, ErrBookingConflict
	}

	if err := entity.Reschedule(slot); err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	if err := entity.UpdateDetails(
		patch.Coalesce(req.Purpose, entity.Purpose()),
		patch.Coalesce(req.Attendees, entity.Attendees()),
		patch.Coalesce(req.Notes, entity.Notes()),
	); err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	if err := c.updateBooking(ctx, entity, notificationBookingRescheduled,
		fmt.Sprintf("Your booking for %s has been moved", room.Name)); err != nil {
		return nil, err
	}

	c.afterCalendarChange(ctx)
	return c.bookingQueries.GetByIDSystem(ctx, entity.ID())
}

func (c *bookingCommandsImpl) Cancel(ctx context.Context, bookingID uuid.UUID, actorID uuid.UUID, isAdmin bool) error {
	entity, err := c.findOwnedBooking(ctx, bookingID, actorID, isAdmin)
	if err != nil {
		return err
	}

	if err := entity.Cancel(); err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}

	if err := c.updateBooking(ctx, entity, notificationBookingCancelled, "Your booking has been cancelled"); err != nil {
		return err
	}

	c.afterCalendarChange(ctx)
	return nil
}

func (c *bookingCommandsImpl) findRoom(ctx context.Context, roomID uuid.UUID) (*RoomSnapshot, error) {
	room, err := c.rooms.SnapshotByID(ctx, roomID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return room, nil
}

func (c *bookingCommandsImpl) findOwnedBooking(ctx context.Context, bookingID, actorID uuid.UUID, isAdmin bool) (*booking.Booking, error) {
	entity, err := c.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if !isAdmin && entity.UserID() != actorID {
		return nil, ErrNotOwner
	}
	return entity, nil
}

func (c *bookingCommandsImpl) persistBooking(ctx context.Context, entity *booking.Booking, kind, message string) error {
	return c.withTx(ctx, func(tx infra.DBTX) error {
		if err := c.bookingRepo.LockRoom(ctx, tx, entity.RoomID()); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := c.bookingRepo.Create(ctx, tx, entity); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrBookingConflict
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := c.notifications.Create(ctx, tx, entity.UserID(), kind, message, ptrTo(entity.ID())); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *bookingCommandsImpl) updateBooking(ctx context.Context, entity *booking.Booking, kind, message string) error {
	return c.withTx(ctx, func(tx infra.DBTX) error {
		if err := c.bookingRepo.LockRoom(ctx, tx, entity.RoomID()); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := c.bookingRepo.Update(ctx, tx, entity); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrBookingConflict
			}
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := c.notifications.Create(ctx, tx, entity.UserID(), kind, message, ptrTo(entity.ID())); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *bookingCommandsImpl) withTx(ctx context.Context, fn func(tx infra.DBTX) error) error {
	return c.txRunner.RunInTx(ctx, fn)
}

func (c *bookingCommandsImpl) afterCalendarChange(ctx context.Context) {
	notifyCalendarChange(ctx, c.reportCache, c.changeNotifier)
}

func ptrTo[T any](v T) *T {
	return &v
}
