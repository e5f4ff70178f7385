package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateRecurringRequest struct {
	RoomID    uuid.UUID `json:"room_id" binding:"required"`
	Purpose   string    `json:"purpose" binding:"required,min=1,max=255"`
	Attendees int       `json:"attendees" binding:"required,min=1"`
	Notes     *string   `json:"notes,omitempty"`
	DayOfWeek int       `json:"day_of_week" binding:"min=0,max=6"`
	StartTime string    `json:"start_time" binding:"required"`
	EndTime   string    `json:"end_time" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
}

type UpdateRecurringRequest struct {
	Purpose   *string `json:"purpose,omitempty" binding:"omitempty,min=1,max=255"`
	Attendees *int    `json:"attendees,omitempty" binding:"omitempty,min=1"`
	Notes     *string `json:"notes,omitempty"`
}
