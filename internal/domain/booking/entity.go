package booking

import (
	"errors"
	"strings"
	"time"

	"roombook/internal/domain/schedule"
	"roombook/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrEmptyPurpose     = errors.New("purpose is required")
	ErrInvalidAttendees = errors.New("attendees must be at least 1")
	ErrCapacityExceeded = errors.New("attendees exceed room capacity")
	ErrRoomInactive     = errors.New("room is not available for booking")
	ErrStartInPast      = errors.New("booking cannot start in the past")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
	ErrNotCancellable   = errors.New("only confirmed bookings can be cancelled")
	ErrNotEditable      = errors.New("only confirmed bookings can be changed")
)

// RoomSpec is the slice of room state booking construction depends on.
type RoomSpec struct {
	ID       uuid.UUID
	Capacity int
	IsActive bool
}

type Services struct {
	Clock clock.Clock
}

type Booking struct {
	id                uuid.UUID
	roomID            uuid.UUID
	userID            uuid.UUID
	slot              schedule.Interval
	purpose           string
	attendees         int
	notes             string
	status            Status
	recurrenceGroupID *uuid.UUID
	createdAt         time.Time
	updatedAt         time.Time
}

func NewBooking(
	services *Services,
	room RoomSpec,
	userID uuid.UUID,
	slot schedule.Interval,
	purpose string,
	attendees int,
	notes string,
) (*Booking, error) {
	purpose = strings.TrimSpace(purpose)
	if purpose == "" {
		return nil, ErrEmptyPurpose
	}
	if attendees < 1 {
		return nil, ErrInvalidAttendees
	}
	if !room.IsActive {
		return nil, ErrRoomInactive
	}
	if attendees > room.Capacity {
		return nil, ErrCapacityExceeded
	}
	if slot.Start().Before(services.Clock.Now()) {
		return nil, ErrStartInPast
	}

	return &Booking{
		id:        uuid.New(),
		roomID:    room.ID,
		userID:    userID,
		slot:      slot,
		purpose:   purpose,
		attendees: attendees,
		notes:     strings.TrimSpace(notes),
		status:    StatusConfirmed,
	}, nil
}

// NewOccurrence builds one materialized occurrence of a recurrence group.
// Occurrence dates can lie slightly in the past relative to request time
// when the group anchor is today, so the past-start rule is not applied.
func NewOccurrence(
	room RoomSpec,
	userID uuid.UUID,
	slot schedule.Interval,
	purpose string,
	attendees int,
	notes string,
	groupID uuid.UUID,
) (*Booking, error) {
	purpose = strings.TrimSpace(purpose)
	if purpose == "" {
		return nil, ErrEmptyPurpose
	}
	if attendees < 1 {
		return nil, ErrInvalidAttendees
	}
	if !room.IsActive {
		return nil, ErrRoomInactive
	}
	if attendees > room.Capacity {
		return nil, ErrCapacityExceeded
	}

	gid := groupID
	return &Booking{
		id:                uuid.New(),
		roomID:            room.ID,
		userID:            userID,
		slot:              slot,
		purpose:           purpose,
		attendees:         attendees,
		notes:             strings.TrimSpace(notes),
		status:            StatusConfirmed,
		recurrenceGroupID: &gid,
	}, nil
}

func ReconstructBooking(
	id, roomID, userID uuid.UUID,
	slot schedule.Interval,
	purpose string,
	attendees int,
	notes string,
	status Status,
	recurrenceGroupID *uuid.UUID,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:                id,
		roomID:            roomID,
		userID:            userID,
		slot:              slot,
		purpose:           purpose,
		attendees:         attendees,
		notes:             notes,
		status:            status,
		recurrenceGroupID: recurrenceGroupID,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// Cancel moves a confirmed booking to cancelled. The transition is terminal.
func (b *Booking) Cancel() error {
	switch b.status {
	case StatusCancelled:
		return ErrAlreadyCancelled
	case StatusConfirmed:
		b.status = StatusCancelled
		return nil
	default:
		return ErrNotCancellable
	}
}

// Reschedule replaces the slot of a confirmed booking. Conflict checking
// against other bookings is the caller's responsibility.
func (b *Booking) Reschedule(slot schedule.Interval) error {
	if b.status != StatusConfirmed {
		return ErrNotEditable
	}
	b.slot = slot
	return nil
}

// UpdateDetails changes the descriptive fields of a confirmed booking.
func (b *Booking) UpdateDetails(purpose string, attendees int, notes string) error {
	if b.status != StatusConfirmed {
		return ErrNotEditable
	}
	purpose = strings.TrimSpace(purpose)
	if purpose == "" {
		return ErrEmptyPurpose
	}
	if attendees < 1 {
		return ErrInvalidAttendees
	}
	b.purpose = purpose
	b.attendees = attendees
	b.notes = strings.TrimSpace(notes)
	return nil
}

func (b *Booking) IsActive() bool {
	return b.status == StatusConfirmed
}

func (b *Booking) IsRecurring() bool {
	return b.recurrenceGroupID != nil
}

func (b *Booking) HasEnded(now time.Time) bool {
	return !now.Before(b.slot.End())
}

func (b *Booking) ID() uuid.UUID                 { return b.id }
func (b *Booking) RoomID() uuid.UUID             { return b.roomID }
func (b *Booking) UserID() uuid.UUID             { return b.userID }
func (b *Booking) Slot() schedule.Interval       { return b.slot }
func (b *Booking) Purpose() string               { return b.purpose }
func (b *Booking) Attendees() int                { return b.attendees }
func (b *Booking) Notes() string                 { return b.notes }
func (b *Booking) Status() Status                { return b.status }
func (b *Booking) RecurrenceGroupID() *uuid.UUID { return b.recurrenceGroupID }
func (b *Booking) CreatedAt() time.Time          { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time          { return b.updatedAt }
