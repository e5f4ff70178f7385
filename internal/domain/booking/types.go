package booking

import "time"

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// CountsTowardConflicts reports whether a booking in this status participates
// in overlap and utilization computation.
func (s Status) CountsTowardConflicts() bool {
	return s == StatusConfirmed
}

// EffectiveStatus derives the externally visible status. Completed is never
// stored: a confirmed booking whose slot has ended reads as completed, so no
// background transition is needed.
func EffectiveStatus(s Status, slotEnd, now time.Time) Status {
	if s == StatusConfirmed && !slotEnd.After(now) {
		return StatusCompleted
	}
	return s
}
