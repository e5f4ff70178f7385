//go:build unit

package usecase_test

import (
	"context"
	"testing"
	"time"

	"roombook/internal/domain/recurrence"
	"roombook/internal/domain/schedule"
	"roombook/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSlotSource struct {
	slots []schedule.Interval
	err   error
}

func (f *fakeSlotSource) ConfirmedSlots(_ context.Context, _ uuid.UUID, _ schedule.Interval, _ *uuid.UUID) ([]schedule.Interval, error) {
	return f.slots, f.err
}

type fakePatternSource struct {
	groups []*recurrence.Group
	err    error
}

func (f *fakePatternSource) ActiveGroupsOn(_ context.Context, _ uuid.UUID, _ time.Time) ([]*recurrence.Group, error) {
	return f.groups, f.err
}

func slotOn(t *testing.T, day time.Time, startHour, endHour int) schedule.Interval {
	t.Helper()
	iv, err := schedule.NewInterval(
		time.Date(day.Year(), day.Month(), day.Day(), startHour, 0, 0, 0, time.UTC),
		time.Date(day.Year(), day.Month(), day.Day(), endHour, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return iv
}

func weeklyGroup(t *testing.T, weekday int, startClock, endClock string, startDate, endDate time.Time) *recurrence.Group {
	t.Helper()
	g, err := recurrence.NewGroup(
		uuid.New(), uuid.New(),
		"standup", 4, "",
		weekday, startClock, endClock,
		startDate, endDate,
	)
	require.NoError(t, err)
	return g
}

func TestAvailabilityChecker_CheckOverlap(t *testing.T) {
	t.Parallel()

	monday := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		existing  []schedule.Interval
		candidate schedule.Interval
		want      bool
	}{
		{
			name:      "conflicts with an occupied slot",
			existing:  []schedule.Interval{slotOn(t, monday, 9, 11)},
			candidate: slotOn(t, monday, 10, 12),
			want:      true,
		},
		{
			name:      "back to back slots do not conflict",
			existing:  []schedule.Interval{slotOn(t, monday, 9, 10)},
			candidate: slotOn(t, monday, 10, 11),
			want:      false,
		},
		{
			name:      "empty calendar",
			existing:  nil,
			candidate: slotOn(t, monday, 9, 10),
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			checker := usecase.NewAvailabilityChecker(
				&fakeSlotSource{slots: tt.existing},
				&fakePatternSource{},
			)

			got, err := checker.CheckOverlap(context.Background(), uuid.New(), tt.candidate, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAvailabilityChecker_CheckRecurringOverlap(t *testing.T) {
	t.Parallel()

	jan1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)  // Monday
	jan31 := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	tuesday := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)

	mondayStandups := weeklyGroup(t, 1, "09:00", "10:00", jan1, jan31)

	t.Run("candidate on the pattern weekday and hours conflicts", func(t *testing.T) {
		t.Parallel()

		checker := usecase.NewAvailabilityChecker(
			&fakeSlotSource{},
			&fakePatternSource{groups: []*recurrence.Group{mondayStandups}},
		)

		got, err := checker.CheckRecurringOverlap(context.Background(), uuid.New(), slotOn(t, monday, 9, 10), nil)
		require.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("date inside the group range but different weekday is free", func(t *testing.T) {
		t.Parallel()

		checker := usecase.NewAvailabilityChecker(
			&fakeSlotSource{},
			&fakePatternSource{groups: []*recurrence.Group{mondayStandups}},
		)

		got, err := checker.CheckRecurringOverlap(context.Background(), uuid.New(), slotOn(t, tuesday, 9, 10), nil)
		require.NoError(t, err)
		assert.False(t, got)
	})

	t.Run("boundary touch with the pattern slot is free", func(t *testing.T) {
		t.Parallel()

		checker := usecase.NewAvailabilityChecker(
			&fakeSlotSource{},
			&fakePatternSource{groups: []*recurrence.Group{mondayStandups}},
		)

		got, err := checker.CheckRecurringOverlap(context.Background(), uuid.New(), slotOn(t, monday, 10, 11), nil)
		require.NoError(t, err)
		assert.False(t, got)
	})

	t.Run("excluded group is skipped", func(t *testing.T) {
		t.Parallel()

		checker := usecase.NewAvailabilityChecker(
			&fakeSlotSource{},
			&fakePatternSource{groups: []*recurrence.Group{mondayStandups}},
		)

		groupID := mondayStandups.ID()
		got, err := checker.CheckRecurringOverlap(context.Background(), uuid.New(), slotOn(t, monday, 9, 10), &groupID)
		require.NoError(t, err)
		assert.False(t, got)
	})
}

func TestAvailabilityChecker_IsSlotFree(t *testing.T) {
	t.Parallel()

	jan1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	jan31 := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	checker := usecase.NewAvailabilityChecker(
		&fakeSlotSource{slots: []schedule.Interval{slotOn(t, monday, 13, 14)}},
		&fakePatternSource{groups: []*recurrence.Group{weeklyGroup(t, 1, "09:00", "10:00", jan1, jan31)}},
	)

	free, err := checker.IsSlotFree(context.Background(), uuid.New(), slotOn(t, monday, 10, 12), nil, nil)
	require.NoError(t, err)
	assert.True(t, free)

	free, err = checker.IsSlotFree(context.Background(), uuid.New(), slotOn(t, monday, 9, 12), nil, nil)
	require.NoError(t, err)
	assert.False(t, free)

	free, err = checker.IsSlotFree(context.Background(), uuid.New(), slotOn(t, monday, 12, 14), nil, nil)
	require.NoError(t, err)
	assert.False(t, free)
}
