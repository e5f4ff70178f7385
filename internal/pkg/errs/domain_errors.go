package errs

import "errors"

// Domain-specific sentinel errors for CQRS usecase layers
var (
	// Room errors
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomInactive = errors.New("room is not available")

	// Booking errors
	ErrBookingNotFound  = errors.New("booking not found")
	ErrBookingConflict  = errors.New("booking conflict")
	ErrInvalidInterval  = errors.New("invalid time interval")
	ErrCapacityExceeded = errors.New("attendees exceed room capacity")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")

	// Recurrence errors
	ErrRecurrenceGroupNotFound = errors.New("recurrence group not found")
	ErrInvalidRecurrence       = errors.New("invalid recurrence pattern")

	// Notification errors
	ErrNotificationNotFound = errors.New("notification not found")

	// Authorization errors
	ErrForbidden = errors.New("access denied")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
