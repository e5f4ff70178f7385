//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"roombook/internal/domain/schedule"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func iv(t *testing.T, startHour, endHour int) schedule.Interval {
	t.Helper()
	interval, err := schedule.NewInterval(at(startHour, 0), at(endHour, 0))
	require.NoError(t, err)
	return interval
}

func TestNewInterval(t *testing.T) {
	t.Run("rejects end before start", func(t *testing.T) {
		_, err := schedule.NewInterval(at(10, 0), at(9, 0))
		assert.ErrorIs(t, err, schedule.ErrInvalidInterval)
	})

	t.Run("rejects zero duration", func(t *testing.T) {
		_, err := schedule.NewInterval(at(10, 0), at(10, 0))
		assert.ErrorIs(t, err, schedule.ErrInvalidInterval)
	})

	t.Run("normalizes to UTC", func(t *testing.T) {
		loc := time.FixedZone("UTC+9", 9*60*60)
		interval, err := schedule.NewInterval(at(9, 0).In(loc), at(10, 0).In(loc))
		require.NoError(t, err)
		assert.Equal(t, time.UTC, interval.Start().Location())
		assert.True(t, interval.Start().Equal(at(9, 0)))
	})
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a    schedule.Interval
		b    schedule.Interval
		want bool
	}{
		{"disjoint", iv(t, 9, 10), iv(t, 11, 12), false},
		{"partial overlap", iv(t, 9, 11), iv(t, 10, 12), true},
		{"contained", iv(t, 9, 12), iv(t, 10, 11), true},
		{"identical", iv(t, 9, 10), iv(t, 9, 10), true},
		{"shared boundary only", iv(t, 9, 10), iv(t, 10, 11), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
			// Overlap is symmetric.
			assert.Equal(t, tc.want, tc.b.Overlaps(tc.a))
		})
	}
}

func TestClampTo(t *testing.T) {
	bounds := iv(t, 9, 17)

	t.Run("inside bounds unchanged", func(t *testing.T) {
		clamped, ok := iv(t, 10, 11).ClampTo(bounds)
		require.True(t, ok)
		assert.True(t, clamped.Start().Equal(at(10, 0)))
		assert.True(t, clamped.End().Equal(at(11, 0)))
	})

	t.Run("straddling start keeps in-range portion", func(t *testing.T) {
		clamped, ok := iv(t, 8, 10).ClampTo(bounds)
		require.True(t, ok)
		assert.True(t, clamped.Start().Equal(at(9, 0)))
		assert.Equal(t, 60, clamped.Minutes())
	})

	t.Run("entirely outside", func(t *testing.T) {
		_, ok := iv(t, 18, 19).ClampTo(bounds)
		assert.False(t, ok)
	})

	t.Run("touching bounds only", func(t *testing.T) {
		_, ok := iv(t, 17, 18).ClampTo(bounds)
		assert.False(t, ok)
	})
}

func TestMerge(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, schedule.Merge(nil))
	})

	t.Run("overlapping intervals collapse", func(t *testing.T) {
		merged := schedule.Merge([]schedule.Interval{iv(t, 9, 11), iv(t, 10, 12)})
		require.Len(t, merged, 1)
		assert.Equal(t, 180, merged[0].Minutes())
	})

	t.Run("adjacent intervals stay separate", func(t *testing.T) {
		merged := schedule.Merge([]schedule.Interval{iv(t, 9, 10), iv(t, 10, 11)})
		require.Len(t, merged, 2)
		assert.Equal(t, 120, schedule.TotalMinutes(merged))
	})

	t.Run("unsorted input", func(t *testing.T) {
		merged := schedule.Merge([]schedule.Interval{iv(t, 14, 15), iv(t, 9, 11), iv(t, 10, 12)})
		require.Len(t, merged, 2)
		assert.True(t, merged[0].Start().Equal(at(9, 0)))
		assert.True(t, merged[1].Start().Equal(at(14, 0)))
	})

	t.Run("contained interval absorbed", func(t *testing.T) {
		merged := schedule.Merge([]schedule.Interval{iv(t, 9, 17), iv(t, 10, 11)})
		require.Len(t, merged, 1)
		assert.Equal(t, 480, merged[0].Minutes())
	})

	t.Run("idempotent", func(t *testing.T) {
		input := []schedule.Interval{iv(t, 9, 11), iv(t, 10, 12), iv(t, 13, 14)}
		once := schedule.Merge(input)
		twice := schedule.Merge(once)
		assert.Empty(t, cmp.Diff(once, twice, cmp.AllowUnexported(schedule.Interval{})))
	})

	t.Run("merged duration never exceeds input duration", func(t *testing.T) {
		cases := [][]schedule.Interval{
			{iv(t, 9, 11), iv(t, 10, 12)},
			{iv(t, 9, 10), iv(t, 10, 11)},
			{iv(t, 9, 10), iv(t, 14, 15)},
			{iv(t, 9, 17), iv(t, 10, 11), iv(t, 12, 13)},
		}
		for _, input := range cases {
			merged := schedule.Merge(input)
			assert.LessOrEqual(t, schedule.TotalMinutes(merged), schedule.TotalMinutes(input))
		}
	})

	t.Run("duration preserved when nothing overlaps", func(t *testing.T) {
		input := []schedule.Interval{iv(t, 9, 10), iv(t, 10, 11), iv(t, 14, 15)}
		merged := schedule.Merge(input)
		assert.Equal(t, schedule.TotalMinutes(input), schedule.TotalMinutes(merged))
	})
}

func TestConflictsWithAny(t *testing.T) {
	existing := []schedule.Interval{iv(t, 9, 11), iv(t, 13, 14)}

	candidate, err := schedule.NewInterval(at(10, 30), at(11, 30))
	require.NoError(t, err)
	assert.True(t, schedule.ConflictsWithAny(candidate, existing))

	free, err := schedule.NewInterval(at(11, 0), at(12, 0))
	require.NoError(t, err)
	assert.False(t, schedule.ConflictsWithAny(free, existing))

	assert.False(t, schedule.ConflictsWithAny(candidate, nil))
}
