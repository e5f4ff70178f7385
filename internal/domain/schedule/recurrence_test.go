//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"roombook/internal/domain/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpandWeekly(t *testing.T) {
	t.Run("anchor on the target weekday counts as first occurrence", func(t *testing.T) {
		// 2024-01-01 is a Monday.
		got := schedule.ExpandWeekly(date(2024, 1, 1), date(2024, 1, 22), time.Monday)
		want := []time.Time{
			date(2024, 1, 1),
			date(2024, 1, 8),
			date(2024, 1, 15),
			date(2024, 1, 22),
		}
		require.Len(t, got, len(want))
		for i := range want {
			assert.True(t, got[i].Equal(want[i]), "occurrence %d: got %s", i, got[i])
		}
	})

	t.Run("advances forward to the first matching weekday", func(t *testing.T) {
		got := schedule.ExpandWeekly(date(2024, 1, 2), date(2024, 1, 22), time.Monday)
		require.Len(t, got, 3)
		assert.True(t, got[0].Equal(date(2024, 1, 8)))
	})

	t.Run("end date inclusive", func(t *testing.T) {
		got := schedule.ExpandWeekly(date(2024, 1, 1), date(2024, 1, 15), time.Monday)
		require.Len(t, got, 3)
		assert.True(t, got[len(got)-1].Equal(date(2024, 1, 15)))
	})

	t.Run("empty when first occurrence is past the end", func(t *testing.T) {
		got := schedule.ExpandWeekly(date(2024, 1, 2), date(2024, 1, 5), time.Monday)
		assert.Empty(t, got)
	})

	t.Run("ascending order", func(t *testing.T) {
		got := schedule.ExpandWeekly(date(2024, 1, 1), date(2024, 12, 31), time.Friday)
		for i := 1; i < len(got); i++ {
			assert.True(t, got[i].After(got[i-1]))
			assert.Equal(t, time.Friday, got[i].Weekday())
		}
	})
}

func TestCountWeekly(t *testing.T) {
	cases := []struct {
		name    string
		anchor  time.Time
		last    time.Time
		weekday time.Weekday
		want    int
	}{
		{"four mondays", date(2024, 1, 1), date(2024, 1, 22), time.Monday, 4},
		{"anchor after weekday", date(2024, 1, 2), date(2024, 1, 22), time.Monday, 3},
		{"none in range", date(2024, 1, 2), date(2024, 1, 5), time.Monday, 0},
		{"full year cap check", date(2024, 1, 1), date(2024, 12, 30), time.Monday, 53},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := schedule.CountWeekly(tc.anchor, tc.last, tc.weekday)
			assert.Equal(t, tc.want, got)
			assert.Len(t, schedule.ExpandWeekly(tc.anchor, tc.last, tc.weekday), got)
		})
	}
}

func TestParseClock(t *testing.T) {
	t.Run("valid values", func(t *testing.T) {
		c, err := schedule.ParseClock("09:30")
		require.NoError(t, err)
		assert.Equal(t, 9, c.Hour())
		assert.Equal(t, 30, c.Minute())
		assert.Equal(t, "09:30", c.String())
	})

	for _, bad := range []string{"", "25:00", "09:60", "-1:00", "nine"} {
		t.Run("rejects "+bad, func(t *testing.T) {
			_, err := schedule.ParseClock(bad)
			assert.ErrorIs(t, err, schedule.ErrInvalidClock)
		})
	}
}

func TestCombineDateAndClock(t *testing.T) {
	combined, err := schedule.CombineDateAndClock(date(2024, 1, 8), "09:30")
	require.NoError(t, err)
	assert.True(t, combined.Equal(time.Date(2024, 1, 8, 9, 30, 0, 0, time.UTC)))

	// The time-of-day replaces whatever clock the date carried.
	noonish := time.Date(2024, 1, 8, 14, 45, 12, 0, time.UTC)
	combined, err = schedule.CombineDateAndClock(noonish, "09:00")
	require.NoError(t, err)
	assert.True(t, combined.Equal(time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)))
}
