package response

import (
	"time"

	"roombook/internal/usecase/queries"
)

type RecurringCreateResponse struct {
	Group        *queries.RecurrenceGroupView `json:"group"`
	Created      []*queries.BookingListItem   `json:"created"`
	SkippedDates []time.Time                  `json:"skipped_dates"`
}

type RecurringCancelResponse struct {
	CancelledCount int64 `json:"cancelled_count"`
}
