//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"roombook/internal/domain/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startsAt(hours ...int) []time.Time {
	starts := make([]time.Time, len(hours))
	for i, h := range hours {
		starts[i] = day.Add(time.Duration(h) * time.Hour)
	}
	return starts
}

func TestPeakHour(t *testing.T) {
	t.Run("no bookings", func(t *testing.T) {
		_, ok := schedule.PeakHour(nil)
		assert.False(t, ok)
	})

	t.Run("highest bucket wins", func(t *testing.T) {
		hour, ok := schedule.PeakHour(startsAt(9, 10, 10, 10, 14))
		require.True(t, ok)
		assert.Equal(t, 10, hour)
	})

	t.Run("tie broken by earliest hour", func(t *testing.T) {
		hour, ok := schedule.PeakHour(startsAt(14, 14, 9, 9))
		require.True(t, ok)
		assert.Equal(t, 9, hour)
	})
}

func TestTopHours(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, schedule.TopHours(nil, 2))
	})

	t.Run("exactly top two by count", func(t *testing.T) {
		got := schedule.TopHours(startsAt(9, 9, 9, 14, 14, 16), 2)
		require.Len(t, got, 2)
		assert.Equal(t, schedule.HourCount{Hour: 9, Count: 3}, got[0])
		assert.Equal(t, schedule.HourCount{Hour: 14, Count: 2}, got[1])
	})

	t.Run("ties ranked by ascending hour", func(t *testing.T) {
		got := schedule.TopHours(startsAt(16, 9, 14), 2)
		require.Len(t, got, 2)
		assert.Equal(t, 9, got[0].Hour)
		assert.Equal(t, 14, got[1].Hour)
	})

	t.Run("fewer buckets than requested", func(t *testing.T) {
		got := schedule.TopHours(startsAt(9), 2)
		assert.Len(t, got, 1)
	})
}

func TestFrequencySplit(t *testing.T) {
	t.Run("empty population", func(t *testing.T) {
		got := schedule.FrequencySplit(0, 0)
		require.Len(t, got, 2)
		assert.Equal(t, 0, got[0].Percentage)
		assert.Equal(t, 0, got[1].Percentage)
	})

	t.Run("percentages sum to 100", func(t *testing.T) {
		for _, tc := range []struct{ total, recurring int }{
			{3, 1}, {7, 3}, {10, 5}, {1, 0}, {1, 1}, {6, 2},
		} {
			got := schedule.FrequencySplit(tc.total, tc.recurring)
			assert.Equal(t, 100, got[0].Percentage+got[1].Percentage,
				"total=%d recurring=%d", tc.total, tc.recurring)
			assert.Equal(t, tc.total-tc.recurring, got[0].Count)
			assert.Equal(t, tc.recurring, got[1].Count)
		}
	})

	t.Run("bucket labels", func(t *testing.T) {
		got := schedule.FrequencySplit(2, 1)
		assert.Equal(t, "Single Bookings", got[0].Type)
		assert.Equal(t, "Recurring Bookings", got[1].Type)
	})
}

func TestFormatHourSlot(t *testing.T) {
	cases := map[int]string{
		0:  "12:00 AM - 1:00 AM",
		9:  "9:00 AM - 10:00 AM",
		11: "11:00 AM - 12:00 PM",
		12: "12:00 PM - 1:00 PM",
		23: "11:00 PM - 12:00 AM",
	}
	for hour, want := range cases {
		assert.Equal(t, want, schedule.FormatHourSlot(hour))
	}
}

func TestResolveRange(t *testing.T) {
	// 2024-01-17 is a Wednesday.
	now := time.Date(2024, 1, 17, 15, 30, 0, 0, time.UTC)

	t.Run("week starts on sunday", func(t *testing.T) {
		got := schedule.ResolveRange(schedule.RangeWeek, nil, nil, now)
		assert.True(t, got.Start().Equal(date(2024, 1, 14)))
		assert.True(t, got.End().Equal(date(2024, 1, 21)))
	})

	t.Run("month", func(t *testing.T) {
		got := schedule.ResolveRange(schedule.RangeMonth, nil, nil, now)
		assert.True(t, got.Start().Equal(date(2024, 1, 1)))
		assert.True(t, got.End().Equal(date(2024, 2, 1)))
	})

	t.Run("year", func(t *testing.T) {
		got := schedule.ResolveRange(schedule.RangeYear, nil, nil, now)
		assert.True(t, got.Start().Equal(date(2024, 1, 1)))
		assert.True(t, got.End().Equal(date(2025, 1, 1)))
	})

	t.Run("unknown falls back to week", func(t *testing.T) {
		got := schedule.ResolveRange("fortnight", nil, nil, now)
		assert.True(t, got.Start().Equal(date(2024, 1, 14)))
	})

	t.Run("explicit bounds win and are day-normalized", func(t *testing.T) {
		from := time.Date(2024, 3, 5, 10, 12, 0, 0, time.UTC)
		to := time.Date(2024, 3, 7, 23, 0, 0, 0, time.UTC)
		got := schedule.ResolveRange(schedule.RangeYear, &from, &to, now)
		assert.True(t, got.Start().Equal(date(2024, 3, 5)))
		assert.True(t, got.End().Equal(date(2024, 3, 8)))
	})

	t.Run("inverted explicit bounds degrade to a single day", func(t *testing.T) {
		from := date(2024, 3, 7)
		to := date(2024, 3, 5)
		got := schedule.ResolveRange("", &from, &to, now)
		assert.True(t, got.End().After(got.Start()))
	})
}
