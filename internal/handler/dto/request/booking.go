package request

import (
	"strings"
	"time"

	"roombook/internal/domain/schedule"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	RoomID    uuid.UUID `json:"room_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required,gtfield=StartTime"`
	Purpose   string    `json:"purpose" binding:"required,min=1,max=255"`
	Attendees int       `json:"attendees" binding:"required,min=1"`
	Notes     *string   `json:"notes,omitempty"`
}

func (r CreateBookingRequest) Slot() (schedule.Interval, error) {
	return schedule.NewInterval(r.StartTime, r.EndTime)
}

func (r CreateBookingRequest) GetNotes() string {
	if r.Notes == nil {
		return ""
	}
	return strings.TrimSpace(*r.Notes)
}

type UpdateBookingRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required,gtfield=StartTime"`
	Purpose   *string   `json:"purpose,omitempty"`
	Attendees *int      `json:"attendees,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
}

func (r UpdateBookingRequest) Slot() (schedule.Interval, error) {
	return schedule.NewInterval(r.StartTime, r.EndTime)
}
