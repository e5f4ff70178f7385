package usecase

import (
	"context"
	"time"

	"roombook/internal/domain/recurrence"
	"roombook/internal/domain/schedule"

	"github.com/google/uuid"
)

// BookingSlotSource yields the occupied slots of a room that participate in
// conflict detection (confirmed bookings only).
type BookingSlotSource interface {
	ConfirmedSlots(ctx context.Context, roomID uuid.UUID, window schedule.Interval, excludeBookingID *uuid.UUID) ([]schedule.Interval, error)
}

// RecurrencePatternSource yields active recurrence groups of a room whose
// date range covers the given day.
type RecurrencePatternSource interface {
	ActiveGroupsOn(ctx context.Context, roomID uuid.UUID, date time.Time) ([]*recurrence.Group, error)
}

// AvailabilityChecker decides whether a candidate slot collides with what is
// already on a room's calendar. All comparisons treat slots as half-open, so
// back-to-back bookings never conflict.
type AvailabilityChecker interface {
	CheckOverlap(ctx context.Context, roomID uuid.UUID, candidate schedule.Interval, excludeBookingID *uuid.UUID) (bool, error)
	CheckRecurringOverlap(ctx context.Context, roomID uuid.UUID, candidate schedule.Interval, excludeGroupID *uuid.UUID) (bool, error)
	IsSlotFree(ctx context.Context, roomID uuid.UUID, candidate schedule.Interval, excludeBookingID, excludeGroupID *uuid.UUID) (bool, error)
}

type availabilityCheckerImpl struct {
	slots    BookingSlotSource
	patterns RecurrencePatternSource
}

func NewAvailabilityChecker(slots BookingSlotSource, patterns RecurrencePatternSource) AvailabilityChecker {
	return &availabilityCheckerImpl{
		slots:    slots,
		patterns: patterns,
	}
}

func (a *availabilityCheckerImpl) CheckOverlap(
	ctx context.Context,
	roomID uuid.UUID,
	candidate schedule.Interval,
	excludeBookingID *uuid.UUID,
) (bool, error) {
	existing, err := a.slots.ConfirmedSlots(ctx, roomID, candidate, excludeBookingID)
	if err != nil {
		return false, err
	}
	return schedule.ConflictsWithAny(candidate, existing), nil
}

func (a *availabilityCheckerImpl) CheckRecurringOverlap(
	ctx context.Context,
	roomID uuid.UUID,
	candidate schedule.Interval,
	excludeGroupID *uuid.UUID,
) (bool, error) {
	date := schedule.StartOfDay(candidate.Start())

	groups, err := a.patterns.ActiveGroupsOn(ctx, roomID, date)
	if err != nil {
		return false, err
	}

	for _, g := range groups {
		if excludeGroupID != nil && g.ID() == *excludeGroupID {
			continue
		}
		// The source filters by date range; the weekday gate still has to
		// hold before time-of-day comparison, otherwise every group whose
		// range spans the date would flag a conflict.
		if !g.CoversDate(date) {
			continue
		}
		slot, err := g.SlotOn(date)
		if err != nil {
			return false, err
		}
		if candidate.Overlaps(slot) {
			return true, nil
		}
	}
	return false, nil
}

func (a *availabilityCheckerImpl) IsSlotFree(
	ctx context.Context,
	roomID uuid.UUID,
	candidate schedule.Interval,
	excludeBookingID, excludeGroupID *uuid.UUID,
) (bool, error) {
	conflict, err := a.CheckOverlap(ctx, roomID, candidate, excludeBookingID)
	if err != nil {
		return false, err
	}
	if conflict {
		return false, nil
	}

	conflict, err = a.CheckRecurringOverlap(ctx, roomID, candidate, excludeGroupID)
	if err != nil {
		return false, err
	}
	return !conflict, nil
}
