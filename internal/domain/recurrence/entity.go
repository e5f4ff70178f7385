package recurrence

import (
	"errors"
	"strings"
	"time"

	"roombook/internal/domain/schedule"

	"github.com/google/uuid"
)

// MaxOccurrences caps how many bookings one weekly pattern may materialize.
const MaxOccurrences = 52

var (
	ErrEmptyPurpose      = errors.New("purpose is required")
	ErrInvalidAttendees  = errors.New("attendees must be at least 1")
	ErrInvalidDateRange  = errors.New("end date must not be before start date")
	ErrInvalidClockOrder = errors.New("end time of day must be after start time of day")
	ErrTooManyOccurrence = errors.New("recurrence exceeds the occurrence limit")
	ErrNoOccurrences     = errors.New("recurrence produces no occurrences")
	ErrInvalidWeekday    = errors.New("day of week must be between 0 and 6")
	ErrAlreadyCancelled  = errors.New("recurrence group is already cancelled")
	ErrNotEditable       = errors.New("only active recurrence groups can be changed")
	ErrCapacityExceeded  = errors.New("attendees exceed room capacity")
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusCancelled
}

// Group is a weekly repeating booking pattern: a day of week plus a
// time-of-day window, bounded by an inclusive calendar date range. It is
// distinct from the single-booking occurrences materialized from it.
type Group struct {
	id         uuid.UUID
	roomID     uuid.UUID
	userID     uuid.UUID
	purpose    string
	attendees  int
	notes      string
	weekday    time.Weekday
	startClock schedule.Clock
	endClock   schedule.Clock
	startDate  time.Time
	endDate    time.Time
	status     Status
	createdAt  time.Time
	updatedAt  time.Time
}

func NewGroup(
	roomID, userID uuid.UUID,
	purpose string,
	attendees int,
	notes string,
	weekday int,
	startClock, endClock string,
	startDate, endDate time.Time,
) (*Group, error) {
	purpose = strings.TrimSpace(purpose)
	if purpose == "" {
		return nil, ErrEmptyPurpose
	}
	if attendees < 1 {
		return nil, ErrInvalidAttendees
	}
	if weekday < 0 || weekday > 6 {
		return nil, ErrInvalidWeekday
	}

	sc, err := schedule.ParseClock(startClock)
	if err != nil {
		return nil, err
	}
	ec, err := schedule.ParseClock(endClock)
	if err != nil {
		return nil, err
	}
	if ec.Hour()*60+ec.Minute() <= sc.Hour()*60+sc.Minute() {
		return nil, ErrInvalidClockOrder
	}

	startDate = schedule.StartOfDay(startDate)
	endDate = schedule.StartOfDay(endDate)
	if endDate.Before(startDate) {
		return nil, ErrInvalidDateRange
	}

	count := schedule.CountWeekly(startDate, endDate, time.Weekday(weekday))
	if count == 0 {
		return nil, ErrNoOccurrences
	}
	if count > MaxOccurrences {
		return nil, ErrTooManyOccurrence
	}

	return &Group{
		id:         uuid.New(),
		roomID:     roomID,
		userID:     userID,
		purpose:    purpose,
		attendees:  attendees,
		notes:      strings.TrimSpace(notes),
		weekday:    time.Weekday(weekday),
		startClock: sc,
		endClock:   ec,
		startDate:  startDate,
		endDate:    endDate,
		status:     StatusActive,
	}, nil
}

func ReconstructGroup(
	id, roomID, userID uuid.UUID,
	purpose string,
	attendees int,
	notes string,
	weekday time.Weekday,
	startClock, endClock schedule.Clock,
	startDate, endDate time.Time,
	status Status,
	createdAt, updatedAt time.Time,
) *Group {
	return &Group{
		id:         id,
		roomID:     roomID,
		userID:     userID,
		purpose:    purpose,
		attendees:  attendees,
		notes:      notes,
		weekday:    weekday,
		startClock: startClock,
		endClock:   endClock,
		startDate:  startDate,
		endDate:    endDate,
		status:     status,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// OccurrenceDates expands the pattern into its concrete calendar dates.
func (g *Group) OccurrenceDates() []time.Time {
	return schedule.ExpandWeekly(g.startDate, g.endDate, g.weekday)
}

// SlotOn materializes the concrete interval of this pattern on one date.
func (g *Group) SlotOn(date time.Time) (schedule.Interval, error) {
	return schedule.NewInterval(g.startClock.On(date), g.endClock.On(date))
}

// CoversDate reports whether date lies within the group's date range and
// falls on the group's weekday. Both must hold before any time-of-day
// comparison is meaningful; a date-range intersection alone is not enough.
func (g *Group) CoversDate(date time.Time) bool {
	d := schedule.StartOfDay(date)
	if d.Before(g.startDate) || d.After(g.endDate) {
		return false
	}
	return d.Weekday() == g.weekday
}

// UpdateDetails changes the descriptive fields shared by the group and its
// occurrences. The repeating pattern itself is immutable.
func (g *Group) UpdateDetails(purpose string, attendees int, notes string, roomCapacity int) error {
	if g.status != StatusActive {
		return ErrNotEditable
	}
	purpose = strings.TrimSpace(purpose)
	if purpose == "" {
		return ErrEmptyPurpose
	}
	if attendees < 1 {
		return ErrInvalidAttendees
	}
	if attendees > roomCapacity {
		return ErrCapacityExceeded
	}
	g.purpose = purpose
	g.attendees = attendees
	g.notes = strings.TrimSpace(notes)
	return nil
}

func (g *Group) Cancel() error {
	if g.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	g.status = StatusCancelled
	return nil
}

func (g *Group) IsActive() bool {
	return g.status == StatusActive
}

func (g *Group) ID() uuid.UUID              { return g.id }
func (g *Group) RoomID() uuid.UUID          { return g.roomID }
func (g *Group) UserID() uuid.UUID          { return g.userID }
func (g *Group) Purpose() string            { return g.purpose }
func (g *Group) Attendees() int             { return g.attendees }
func (g *Group) Notes() string              { return g.notes }
func (g *Group) Weekday() time.Weekday      { return g.weekday }
func (g *Group) StartClock() schedule.Clock { return g.startClock }
func (g *Group) EndClock() schedule.Clock   { return g.endClock }
func (g *Group) StartDate() time.Time       { return g.startDate }
func (g *Group) EndDate() time.Time         { return g.endDate }
func (g *Group) Status() Status             { return g.status }
func (g *Group) CreatedAt() time.Time       { return g.createdAt }
func (g *Group) UpdatedAt() time.Time       { return g.updatedAt }
