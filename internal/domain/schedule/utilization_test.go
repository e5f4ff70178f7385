//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"roombook/internal/domain/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUtilization(t *testing.T) {
	oneDay, err := schedule.NewInterval(date(2024, 1, 15), date(2024, 1, 16))
	require.NoError(t, err)

	t.Run("zero bookings", func(t *testing.T) {
		got := schedule.Utilization(nil, oneDay, schedule.DefaultWorkingMinutesPerDay)
		assert.Equal(t, 0, got.BookedMinutes)
		assert.Equal(t, 600, got.AvailableMinutes)
		assert.Equal(t, 0.0, got.Rate)
		assert.Equal(t, 0, got.BookingCount)
	})

	t.Run("overlapping bookings are not double counted", func(t *testing.T) {
		bookings := []schedule.Interval{iv(t, 9, 11), iv(t, 10, 12)}
		got := schedule.Utilization(bookings, oneDay, schedule.DefaultWorkingMinutesPerDay)
		assert.Equal(t, 180, got.BookedMinutes)
		assert.Equal(t, 600, got.AvailableMinutes)
		assert.Equal(t, 30.00, got.Rate)
		assert.Equal(t, 2, got.BookingCount)
	})

	t.Run("adjacent bookings both count in full", func(t *testing.T) {
		bookings := []schedule.Interval{iv(t, 9, 10), iv(t, 10, 11)}
		got := schedule.Utilization(bookings, oneDay, schedule.DefaultWorkingMinutesPerDay)
		assert.Equal(t, 120, got.BookedMinutes)
		assert.Equal(t, 20.00, got.Rate)
	})

	t.Run("booking straddling the range start is clamped", func(t *testing.T) {
		straddling, err := schedule.NewInterval(date(2024, 1, 14).Add(23*time.Hour), date(2024, 1, 15).Add(2*time.Hour))
		require.NoError(t, err)
		got := schedule.Utilization([]schedule.Interval{straddling}, oneDay, schedule.DefaultWorkingMinutesPerDay)
		assert.Equal(t, 120, got.BookedMinutes)
		assert.Equal(t, 1, got.BookingCount)
	})

	t.Run("booking entirely outside the range contributes nothing", func(t *testing.T) {
		outside, err := schedule.NewInterval(date(2024, 1, 20).Add(9*time.Hour), date(2024, 1, 20).Add(10*time.Hour))
		require.NoError(t, err)
		got := schedule.Utilization([]schedule.Interval{outside}, oneDay, schedule.DefaultWorkingMinutesPerDay)
		assert.Equal(t, 0, got.BookedMinutes)
		assert.Equal(t, 0, got.BookingCount)
	})

	t.Run("multi-day range scales available minutes", func(t *testing.T) {
		week, err := schedule.NewInterval(date(2024, 1, 14), date(2024, 1, 21))
		require.NoError(t, err)
		got := schedule.Utilization([]schedule.Interval{iv(t, 9, 11)}, week, schedule.DefaultWorkingMinutesPerDay)
		assert.Equal(t, 7*600, got.AvailableMinutes)
		assert.Equal(t, 120, got.BookedMinutes)
		assert.Equal(t, 2.86, got.Rate)
	})

	t.Run("zero working minutes yields zero rate", func(t *testing.T) {
		got := schedule.Utilization([]schedule.Interval{iv(t, 9, 11)}, oneDay, 0)
		assert.Equal(t, 0.0, got.Rate)
		assert.Equal(t, 0, got.AvailableMinutes)
	})
}

func TestDaysIn(t *testing.T) {
	cases := []struct {
		name string
		iv   schedule.Interval
		want int
	}{
		{"single day", schedule.MustInterval(date(2024, 1, 15), date(2024, 1, 16)), 1},
		{"full week", schedule.MustInterval(date(2024, 1, 14), date(2024, 1, 21)), 7},
		{"partial final day rounds up", schedule.MustInterval(date(2024, 1, 15), date(2024, 1, 16).Add(2*time.Hour)), 2},
		{"february leap month", schedule.MustInterval(date(2024, 2, 1), date(2024, 3, 1)), 29},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, schedule.DaysIn(tc.iv))
		})
	}
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 30.00, schedule.Percentage(180, 600))
	assert.Equal(t, 0.0, schedule.Percentage(100, 0))
	assert.Equal(t, 33.33, schedule.Percentage(1, 3))
	assert.Equal(t, 100.0, schedule.Percentage(600, 600))
}
