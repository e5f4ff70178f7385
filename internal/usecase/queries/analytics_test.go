//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"roombook/internal/domain/schedule"
	"roombook/internal/pkg/clock"
	"roombook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyticsStore struct {
	rooms    []*queries.RoomView
	bookings []queries.BookingSnapshot
	stats    []queries.BookingStatRecord
	slots    map[uuid.UUID][]schedule.Interval
	exists   bool
}

func (f *fakeAnalyticsStore) ActiveRooms(context.Context) ([]*queries.RoomView, error) {
	return f.rooms, nil
}

func (f *fakeAnalyticsStore) ConfirmedBookingsIn(_ context.Context, window schedule.Interval) ([]queries.BookingSnapshot, error) {
	var out []queries.BookingSnapshot
	for _, b := range f.bookings {
		if b.Slot.Overlaps(window) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeAnalyticsStore) ConfirmedSlots(_ context.Context, roomID uuid.UUID, window schedule.Interval) ([]schedule.Interval, error) {
	var out []schedule.Interval
	for _, s := range f.slots[roomID] {
		if s.Overlaps(window) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeAnalyticsStore) BookingStatsIn(_ context.Context, window schedule.Interval) ([]queries.BookingStatRecord, error) {
	var out []queries.BookingStatRecord
	for _, r := range f.stats {
		start := r.Slot.Start()
		if !start.Before(window.Start()) && start.Before(window.End()) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAnalyticsStore) RoomExists(context.Context, uuid.UUID) (bool, error) {
	return f.exists, nil
}

type recordingCache struct {
	stored map[string]*queries.AnalyticsReport
}

func (c *recordingCache) GetReport(_ context.Context, key string) (*queries.AnalyticsReport, bool, error) {
	report, ok := c.stored[key]
	return report, ok, nil
}

func (c *recordingCache) SetReport(_ context.Context, key string, report *queries.AnalyticsReport) error {
	if c.stored == nil {
		c.stored = make(map[string]*queries.AnalyticsReport)
	}
	c.stored[key] = report
	return nil
}

func utc(day, hour int) time.Time {
	return time.Date(2024, 1, day, hour, 0, 0, 0, time.UTC)
}

func snap(roomID uuid.UUID, day, startHour, endHour int, recurring bool) queries.BookingSnapshot {
	return queries.BookingSnapshot{
		RoomID:    roomID,
		Slot:      schedule.MustInterval(utc(day, startHour), utc(day, endHour)),
		Recurring: recurring,
	}
}

func TestAnalyticsQueries_Report(t *testing.T) {
	t.Parallel()

	roomA := uuid.New()
	roomB := uuid.New()

	store := &fakeAnalyticsStore{
		rooms: []*queries.RoomView{
			{ID: roomA, Name: "Aurora", Location: "3F", Capacity: 8},
			{ID: roomB, Name: "Borealis", Location: "2F", Capacity: 4},
		},
		bookings: []queries.BookingSnapshot{
			snap(roomA, 15, 9, 11, false),
			snap(roomA, 16, 9, 10, true),
			snap(roomB, 15, 14, 15, false),
			snap(roomB, 17, 9, 10, true),
		},
	}

	// Wednesday Jan 17 2024; the surrounding week is Jan 14 (Sun) to Jan 20.
	fixed := clock.NewMockClock(time.Date(2024, 1, 17, 12, 0, 0, 0, time.UTC))
	svc := queries.NewAnalyticsQueries(store, nil, fixed, 600)

	report, err := svc.Report(context.Background(), schedule.RangeWeek, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalRooms)
	assert.Equal(t, 4, report.TotalBookings)

	// 5h booked over 2 rooms x 7 days x 600min = 8400min available.
	assert.InDelta(t, 3.57, report.UtilizationRate, 0.001)

	assert.Equal(t, "9:00 AM", report.PeakUsageHour)

	require.Len(t, report.RoomUtilization, 2)
	assert.Equal(t, "Aurora", report.RoomUtilization[0].RoomName)
	assert.Equal(t, 2, report.RoomUtilization[0].BookingCount)
	assert.GreaterOrEqual(t, report.RoomUtilization[0].UtilizationRate, report.RoomUtilization[1].UtilizationRate)

	require.Len(t, report.PopularTimeSlots, 2)
	assert.Equal(t, "9:00 AM - 10:00 AM", report.PopularTimeSlots[0].TimeSlot)
	assert.Equal(t, 3, report.PopularTimeSlots[0].Count)
	assert.Equal(t, 14, report.PopularTimeSlots[1].Hour)

	require.Len(t, report.BookingFrequency, 2)
	assert.Equal(t, "Single Bookings", report.BookingFrequency[0].Type)
	assert.Equal(t, 2, report.BookingFrequency[0].Count)
	assert.Equal(t, "Recurring Bookings", report.BookingFrequency[1].Type)
	assert.Equal(t, 100, report.BookingFrequency[0].Percentage+report.BookingFrequency[1].Percentage)

	require.Len(t, report.WeeklyUtilization, 7)
	assert.Equal(t, "Sun", report.WeeklyUtilization[0].Day)
	assert.Equal(t, "Sat", report.WeeklyUtilization[6].Day)

	assert.Equal(t, time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC), report.DateRange.Start)
	assert.Equal(t, time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC), report.DateRange.End)
}

func TestAnalyticsQueries_Report_EmptyCalendar(t *testing.T) {
	t.Parallel()

	store := &fakeAnalyticsStore{
		rooms: []*queries.RoomView{{ID: uuid.New(), Name: "Aurora", Location: "3F", Capacity: 8}},
	}
	fixed := clock.NewMockClock(time.Date(2024, 1, 17, 12, 0, 0, 0, time.UTC))
	svc := queries.NewAnalyticsQueries(store, nil, fixed, 600)

	report, err := svc.Report(context.Background(), schedule.RangeMonth, nil, nil)
	require.NoError(t, err)

	assert.Zero(t, report.TotalBookings)
	assert.Zero(t, report.UtilizationRate)
	assert.Equal(t, "N/A", report.PeakUsageHour)
	assert.Empty(t, report.PopularTimeSlots)

	require.Len(t, report.BookingFrequency, 2)
	assert.Zero(t, report.BookingFrequency[0].Percentage)
	assert.Zero(t, report.BookingFrequency[1].Percentage)
}

func TestAnalyticsQueries_Report_CacheRoundTrip(t *testing.T) {
	t.Parallel()

	store := &fakeAnalyticsStore{
		rooms: []*queries.RoomView{{ID: uuid.New(), Name: "Aurora", Location: "3F", Capacity: 8}},
	}
	cache := &recordingCache{}
	fixed := clock.NewMockClock(time.Date(2024, 1, 17, 12, 0, 0, 0, time.UTC))
	svc := queries.NewAnalyticsQueries(store, cache, fixed, 600)

	first, err := svc.Report(context.Background(), schedule.RangeWeek, nil, nil)
	require.NoError(t, err)
	require.Len(t, cache.stored, 1)

	// Second call must be served from the cache.
	store.rooms = nil
	second, err := svc.Report(context.Background(), schedule.RangeWeek, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAnalyticsQueries_RoomUtilization(t *testing.T) {
	t.Parallel()

	roomID := uuid.New()
	store := &fakeAnalyticsStore{
		exists: true,
		slots: map[uuid.UUID][]schedule.Interval{
			roomID: {
				schedule.MustInterval(utc(15, 9), utc(15, 11)),
				schedule.MustInterval(utc(15, 10), utc(15, 12)),
			},
		},
	}
	fixed := clock.NewMockClock(time.Date(2024, 1, 17, 12, 0, 0, 0, time.UTC))
	svc := queries.NewAnalyticsQueries(store, nil, fixed, 600)

	view, err := svc.RoomUtilization(context.Background(), roomID, utc(15, 0), utc(15, 0))
	require.NoError(t, err)

	// Overlapping 9-11 and 10-12 merge to 180 booked minutes in one day.
	assert.Equal(t, 180, view.BookedMinutes)
	assert.Equal(t, 600, view.AvailableMinutes)
	assert.InDelta(t, 30.0, view.UtilizationRate, 0.001)
	assert.Equal(t, 2, view.BookingCount)
}

func stat(roomID, userID uuid.UUID, roomName, userName string, slot schedule.Interval, status string) queries.BookingStatRecord {
	return queries.BookingStatRecord{
		RoomID:    roomID,
		RoomName:  roomName,
		Location:  "3F",
		UserID:    userID,
		UserName:  userName,
		UserEmail: userName + "@example.com",
		Slot:      slot,
		Status:    status,
	}
}

func statsFixture() (*fakeAnalyticsStore, clock.Clock) {
	roomA := uuid.New()
	roomB := uuid.New()
	alice := uuid.New()
	bob := uuid.New()

	store := &fakeAnalyticsStore{
		stats: []queries.BookingStatRecord{
			// Monday Jan 15, both ended before the fixed clock.
			stat(roomA, alice, "Aurora", "alice", schedule.MustInterval(utc(15, 9), utc(15, 11)), "confirmed"),
			stat(roomA, bob, "Aurora", "bob", schedule.MustInterval(utc(15, 9), utc(15, 10)), "confirmed"),
			stat(roomA, alice, "Aurora", "alice", schedule.MustInterval(utc(15, 14), utc(15, 15)), "cancelled"),
			// Tuesday Jan 16.
			stat(roomA, alice, "Aurora", "alice", schedule.MustInterval(utc(16, 9), utc(16, 10)), "confirmed"),
			// Wednesday Jan 17, still running at the fixed clock.
			stat(roomB, bob, "Borealis", "bob", schedule.MustInterval(utc(17, 10), utc(17, 13)), "confirmed"),
		},
	}
	fixed := clock.NewMockClock(time.Date(2024, 1, 17, 12, 0, 0, 0, time.UTC))
	return store, fixed
}

func TestAnalyticsQueries_Dashboard(t *testing.T) {
	t.Parallel()

	store, fixed := statsFixture()
	svc := queries.NewAnalyticsQueries(store, nil, fixed, 600)

	report, err := svc.Dashboard(context.Background(), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 4, report.TotalBookings)

	// The three confirmed bookings that already ended read as completed.
	require.Len(t, report.BookingsByStatus, 3)
	assert.Equal(t, queries.StatusCount{Status: "cancelled", Count: 1}, report.BookingsByStatus[0])
	assert.Equal(t, queries.StatusCount{Status: "completed", Count: 3}, report.BookingsByStatus[1])
	assert.Equal(t, queries.StatusCount{Status: "confirmed", Count: 1}, report.BookingsByStatus[2])

	require.Len(t, report.PopularRooms, 2)
	assert.Equal(t, "Aurora", report.PopularRooms[0].RoomName)
	assert.Equal(t, 3, report.PopularRooms[0].BookingCount)
	assert.InDelta(t, 4.0, report.PopularRooms[0].TotalHours, 0.001)
	assert.Equal(t, "Borealis", report.PopularRooms[1].RoomName)
	assert.InDelta(t, 3.0, report.PopularRooms[1].TotalHours, 0.001)

	require.Len(t, report.PeakHours, 2)
	assert.Equal(t, queries.HourCountEntry{Hour: 9, Count: 3}, report.PeakHours[0])
	assert.Equal(t, queries.HourCountEntry{Hour: 10, Count: 1}, report.PeakHours[1])

	require.Len(t, report.BookingsTrend, 3)
	assert.Equal(t, queries.TrendEntry{Date: "2024-01-15", Count: 2}, report.BookingsTrend[0])
	assert.Equal(t, queries.TrendEntry{Date: "2024-01-16", Count: 1}, report.BookingsTrend[1])
	assert.Equal(t, queries.TrendEntry{Date: "2024-01-17", Count: 1}, report.BookingsTrend[2])

	// Default window: the trailing 30 days ending at the fixed clock.
	assert.Equal(t, time.Date(2023, 12, 18, 12, 0, 0, 0, time.UTC), report.DateRange.Start)
	assert.Equal(t, time.Date(2024, 1, 17, 12, 0, 0, 0, time.UTC), report.DateRange.End)
}

func TestAnalyticsQueries_Dashboard_ExplicitWindow(t *testing.T) {
	t.Parallel()

	store, fixed := statsFixture()
	svc := queries.NewAnalyticsQueries(store, nil, fixed, 600)

	from := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)
	report, err := svc.Dashboard(context.Background(), &from, &to)
	require.NoError(t, err)

	assert.Equal(t, 1, report.TotalBookings)
	require.Len(t, report.BookingsTrend, 1)
	assert.Equal(t, "2024-01-16", report.BookingsTrend[0].Date)
}

func TestAnalyticsQueries_TimeSlotPopularity(t *testing.T) {
	t.Parallel()

	store, fixed := statsFixture()
	svc := queries.NewAnalyticsQueries(store, nil, fixed, 600)

	report, err := svc.TimeSlotPopularity(context.Background(), nil, nil)
	require.NoError(t, err)

	// Cancelled bookings are excluded; weekday order, then hour.
	require.Len(t, report.Slots, 3)
	assert.Equal(t, queries.TimeSlotPopularityEntry{Hour: 9, DayOfWeek: "Monday", Count: 2}, report.Slots[0])
	assert.Equal(t, queries.TimeSlotPopularityEntry{Hour: 9, DayOfWeek: "Tuesday", Count: 1}, report.Slots[1])
	assert.Equal(t, queries.TimeSlotPopularityEntry{Hour: 10, DayOfWeek: "Wednesday", Count: 1}, report.Slots[2])
}

func TestAnalyticsQueries_UserStats(t *testing.T) {
	t.Parallel()

	store, fixed := statsFixture()
	svc := queries.NewAnalyticsQueries(store, nil, fixed, 600)

	report, err := svc.UserStats(context.Background(), nil, nil)
	require.NoError(t, err)

	require.Len(t, report.Users, 2)
	assert.Equal(t, "alice", report.Users[0].UserName)
	assert.Equal(t, "alice@example.com", report.Users[0].UserEmail)
	assert.Equal(t, 2, report.Users[0].TotalBookings)
	assert.InDelta(t, 3.0, report.Users[0].TotalHours, 0.001)

	assert.Equal(t, "bob", report.Users[1].UserName)
	assert.Equal(t, 2, report.Users[1].TotalBookings)
	assert.InDelta(t, 4.0, report.Users[1].TotalHours, 0.001)
}
