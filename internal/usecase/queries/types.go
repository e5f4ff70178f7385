package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID                uuid.UUID  `json:"id"`
	RoomID            uuid.UUID  `json:"room_id"`
	RoomName          string     `json:"room_name"`
	RoomLocation      string     `json:"room_location"`
	UserID            uuid.UUID  `json:"user_id"`
	UserName          string     `json:"user_name"`
	StartTime         time.Time  `json:"start_time"`
	EndTime           time.Time  `json:"end_time"`
	Purpose           string     `json:"purpose"`
	Attendees         int32      `json:"attendees"`
	Notes             *string    `json:"notes,omitempty"`
	Status            string     `json:"status"`
	RecurrenceGroupID *uuid.UUID `json:"recurrence_group_id,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type BookingListItem struct {
	ID                uuid.UUID  `json:"id"`
	RoomID            uuid.UUID  `json:"room_id"`
	RoomName          string     `json:"room_name"`
	StartTime         time.Time  `json:"start_time"`
	EndTime           time.Time  `json:"end_time"`
	Purpose           string     `json:"purpose"`
	Attendees         int32      `json:"attendees"`
	Status            string     `json:"status"`
	RecurrenceGroupID *uuid.UUID `json:"recurrence_group_id,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

type RoomView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Capacity  int32     `json:"capacity"`
	Amenities []string  `json:"amenities"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RecurrenceGroupView struct {
	ID         uuid.UUID `json:"id"`
	RoomID     uuid.UUID `json:"room_id"`
	RoomName   string    `json:"room_name"`
	UserID     uuid.UUID `json:"user_id"`
	Purpose    string    `json:"purpose"`
	Attendees  int32     `json:"attendees"`
	Notes      *string   `json:"notes,omitempty"`
	DayOfWeek  int32     `json:"day_of_week"`
	StartClock string    `json:"start_time"`
	EndClock   string    `json:"end_time"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type NotificationView struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Type      string     `json:"type"`
	Message   string     `json:"message"`
	BookingID *uuid.UUID `json:"booking_id,omitempty"`
	IsRead    bool       `json:"is_read"`
	CreatedAt time.Time  `json:"created_at"`
}

// AuthorizedUserView represents read-optimized user data with authorization info
type AuthorizedUserView struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
