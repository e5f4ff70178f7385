//go:build unit

package booking_test

import (
	"testing"
	"time"

	"roombook/internal/domain/booking"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveStatus(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		status  booking.Status
		slotEnd time.Time
		want    booking.Status
	}{
		{
			name:    "confirmed booking still running stays confirmed",
			status:  booking.StatusConfirmed,
			slotEnd: now.Add(time.Hour),
			want:    booking.StatusConfirmed,
		},
		{
			name:    "confirmed booking that ended reads as completed",
			status:  booking.StatusConfirmed,
			slotEnd: now.Add(-time.Hour),
			want:    booking.StatusCompleted,
		},
		{
			name:    "slot ending exactly now is completed",
			status:  booking.StatusConfirmed,
			slotEnd: now,
			want:    booking.StatusCompleted,
		},
		{
			name:    "cancelled booking stays cancelled even after its slot",
			status:  booking.StatusCancelled,
			slotEnd: now.Add(-time.Hour),
			want:    booking.StatusCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, booking.EffectiveStatus(tt.status, tt.slotEnd, now))
		})
	}
}
