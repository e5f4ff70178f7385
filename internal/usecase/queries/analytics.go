package queries

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"roombook/internal/domain/booking"
	"roombook/internal/domain/schedule"
	"roombook/internal/infra"
	"roombook/internal/pkg/clock"
	"roombook/internal/pkg/errs"

	"github.com/google/uuid"
)

const popularSlotCount = 2

// BookingSnapshot is the immutable slice of one confirmed booking that
// report computation works on. Reports never re-query mid-calculation, so
// every number in one report describes the same calendar state.
type BookingSnapshot struct {
	RoomID    uuid.UUID
	Slot      schedule.Interval
	Recurring bool
}

// BookingStatRecord carries one booking joined with its room and owner,
// regardless of status, for the aggregate statistics endpoints.
type BookingStatRecord struct {
	RoomID    uuid.UUID
	RoomName  string
	Location  string
	UserID    uuid.UUID
	UserName  string
	UserEmail string
	Slot      schedule.Interval
	Status    string
}

type AnalyticsReadStore interface {
	ActiveRooms(ctx context.Context) ([]*RoomView, error)
	// ConfirmedBookingsIn returns every confirmed booking whose slot
	// intersects the window, across all rooms.
	ConfirmedBookingsIn(ctx context.Context, window schedule.Interval) ([]BookingSnapshot, error)
	// ConfirmedSlots returns the occupied slots of one room inside the window.
	ConfirmedSlots(ctx context.Context, roomID uuid.UUID, window schedule.Interval) ([]schedule.Interval, error)
	// BookingStatsIn returns every booking starting inside the window,
	// across all statuses and rooms.
	BookingStatsIn(ctx context.Context, window schedule.Interval) ([]BookingStatRecord, error)
	RoomExists(ctx context.Context, roomID uuid.UUID) (bool, error)
}

// ReportCache is a best-effort cache for assembled reports. Failures are
// logged and swallowed so a dead cache never takes analytics down.
type ReportCache interface {
	GetReport(ctx context.Context, key string) (*AnalyticsReport, bool, error)
	SetReport(ctx context.Context, key string, report *AnalyticsReport) error
}

type RoomUtilizationEntry struct {
	RoomID          uuid.UUID `json:"room_id"`
	RoomName        string    `json:"room_name"`
	Location        string    `json:"location"`
	Capacity        int32     `json:"capacity"`
	UtilizationRate float64   `json:"utilization_rate"`
	BookingCount    int       `json:"booking_count"`
	BookedHours     float64   `json:"booked_hours"`
}

type DayUtilization struct {
	Day         string  `json:"day"`
	Utilization float64 `json:"utilization"`
}

type TimeSlotEntry struct {
	TimeSlot string `json:"time_slot"`
	Hour     int    `json:"hour"`
	Count    int    `json:"count"`
}

type FrequencyEntry struct {
	Type       string `json:"type"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type AnalyticsReport struct {
	TotalRooms        int                    `json:"total_rooms"`
	UtilizationRate   float64                `json:"utilization_rate"`
	TotalBookings     int                    `json:"total_bookings"`
	PeakUsageHour     string                 `json:"peak_usage_hour"`
	RoomUtilization   []RoomUtilizationEntry `json:"room_utilization"`
	WeeklyUtilization []DayUtilization       `json:"weekly_utilization"`
	PopularTimeSlots  []TimeSlotEntry        `json:"popular_time_slots"`
	BookingFrequency  []FrequencyEntry       `json:"booking_frequency"`
	DateRange         DateRange              `json:"date_range"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type PopularRoomEntry struct {
	RoomName     string  `json:"room_name"`
	Location     string  `json:"location"`
	BookingCount int     `json:"booking_count"`
	TotalHours   float64 `json:"total_hours"`
}

type HourCountEntry struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

type TrendEntry struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type DashboardReport struct {
	TotalBookings    int                `json:"total_bookings"`
	BookingsByStatus []StatusCount      `json:"bookings_by_status"`
	PopularRooms     []PopularRoomEntry `json:"popular_rooms"`
	PeakHours        []HourCountEntry   `json:"peak_hours"`
	BookingsTrend    []TrendEntry       `json:"bookings_trend"`
	DateRange        DateRange          `json:"date_range"`
}

type TimeSlotPopularityEntry struct {
	Hour      int    `json:"hour"`
	DayOfWeek string `json:"day_of_week"`
	Count     int    `json:"count"`
}

type TimeSlotPopularityReport struct {
	Slots     []TimeSlotPopularityEntry `json:"slots"`
	DateRange DateRange                 `json:"date_range"`
}

type UserStatsEntry struct {
	UserName      string  `json:"user_name"`
	UserEmail     string  `json:"user_email"`
	TotalBookings int     `json:"total_bookings"`
	TotalHours    float64 `json:"total_hours"`
}

type UserStatsReport struct {
	Users     []UserStatsEntry `json:"users"`
	DateRange DateRange        `json:"date_range"`
}

type RoomUtilizationView struct {
	RoomID           uuid.UUID `json:"room_id"`
	BookedMinutes    int       `json:"booked_minutes"`
	AvailableMinutes int       `json:"available_minutes"`
	UtilizationRate  float64   `json:"utilization_rate"`
	BookingCount     int       `json:"booking_count"`
}

type AnalyticsQueries interface {
	Report(ctx context.Context, rangeName string, from, to *time.Time) (*AnalyticsReport, error)
	Dashboard(ctx context.Context, from, to *time.Time) (*DashboardReport, error)
	TimeSlotPopularity(ctx context.Context, from, to *time.Time) (*TimeSlotPopularityReport, error)
	UserStats(ctx context.Context, from, to *time.Time) (*UserStatsReport, error)
	RoomUtilization(ctx context.Context, roomID uuid.UUID, from, to time.Time) (*RoomUtilizationView, error)
}

type analyticsQueriesImpl struct {
	readStore            AnalyticsReadStore
	cache                ReportCache
	clock                clock.Clock
	workingMinutesPerDay int
}

func NewAnalyticsQueries(readStore AnalyticsReadStore, cache ReportCache, clock clock.Clock, workingMinutesPerDay int) AnalyticsQueries {
	if workingMinutesPerDay <= 0 {
		workingMinutesPerDay = schedule.DefaultWorkingMinutesPerDay
	}
	return &analyticsQueriesImpl{
		readStore:            readStore,
		cache:                cache,
		clock:                clock,
		workingMinutesPerDay: workingMinutesPerDay,
	}
}

func (q *analyticsQueriesImpl) Report(ctx context.Context, rangeName string, from, to *time.Time) (*AnalyticsReport, error) {
	window := schedule.ResolveRange(rangeName, from, to, q.clock.Now())
	key := reportCacheKey(rangeName, window)

	if q.cache != nil {
		if cached, ok, err := q.cache.GetReport(ctx, key); err != nil {
			slog.Warn("analytics cache read failed", "key", key, "error", err.Error())
		} else if ok {
			return cached, nil
		}
	}

	report, err := q.buildReport(ctx, window)
	if err != nil {
		return nil, err
	}

	if q.cache != nil {
		if err := q.cache.SetReport(ctx, key, report); err != nil {
			slog.Warn("analytics cache write failed", "key", key, "error", err.Error())
		}
	}
	return report, nil
}

func (q *analyticsQueriesImpl) buildReport(ctx context.Context, window schedule.Interval) (*AnalyticsReport, error) {
	rooms, err := q.readStore.ActiveRooms(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load rooms for report")
	}

	snapshot, err := q.readStore.ConfirmedBookingsIn(ctx, window)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load bookings for report")
	}

	byRoom := make(map[uuid.UUID][]schedule.Interval, len(rooms))
	starts := make([]time.Time, 0, len(snapshot))
	recurring := 0
	for _, b := range snapshot {
		byRoom[b.RoomID] = append(byRoom[b.RoomID], b.Slot)
		starts = append(starts, b.Slot.Start())
		if b.Recurring {
			recurring++
		}
	}

	roomEntries := make([]RoomUtilizationEntry, 0, len(rooms))
	totalBookedMinutes := 0
	totalAvailableMinutes := 0
	for _, room := range rooms {
		result := schedule.Utilization(byRoom[room.ID], window, q.workingMinutesPerDay)
		totalBookedMinutes += result.BookedMinutes
		totalAvailableMinutes += result.AvailableMinutes

		roomEntries = append(roomEntries, RoomUtilizationEntry{
			RoomID:          room.ID,
			RoomName:        room.Name,
			Location:        room.Location,
			Capacity:        room.Capacity,
			UtilizationRate: result.Rate,
			BookingCount:    result.BookingCount,
			BookedHours:     schedule.Round2(float64(result.BookedMinutes) / 60),
		})
	}
	sort.SliceStable(roomEntries, func(i, j int) bool {
		return roomEntries[i].UtilizationRate > roomEntries[j].UtilizationRate
	})

	weekly, err := q.weeklyUtilization(ctx, len(rooms))
	if err != nil {
		return nil, err
	}

	return &AnalyticsReport{
		TotalRooms:        len(rooms),
		UtilizationRate:   schedule.Percentage(totalBookedMinutes, totalAvailableMinutes),
		TotalBookings:     len(snapshot),
		PeakUsageHour:     peakHourLabel(starts),
		RoomUtilization:   roomEntries,
		WeeklyUtilization: weekly,
		PopularTimeSlots:  popularTimeSlots(starts),
		BookingFrequency:  bookingFrequency(len(snapshot), recurring),
		DateRange:         DateRange{Start: window.Start(), End: window.End()},
	}, nil
}

// weeklyUtilization reports per-weekday utilization across all rooms for the
// current week, regardless of the report range.
func (q *analyticsQueriesImpl) weeklyUtilization(ctx context.Context, roomCount int) ([]DayUtilization, error) {
	week := schedule.ResolveRange(schedule.RangeWeek, nil, nil, q.clock.Now())

	snapshot, err := q.readStore.ConfirmedBookingsIn(ctx, week)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load bookings for weekly utilization")
	}

	slots := make([]schedule.Interval, 0, len(snapshot))
	for _, b := range snapshot {
		slots = append(slots, b.Slot)
	}

	days := make([]DayUtilization, 0, 7)
	available := roomCount * q.workingMinutesPerDay
	for d := 0; d < 7; d++ {
		dayStart := week.Start().AddDate(0, 0, d)
		day := schedule.MustInterval(dayStart, dayStart.Add(24*time.Hour))

		clamped := make([]schedule.Interval, 0, len(slots))
		for _, s := range slots {
			if c, ok := s.ClampTo(day); ok {
				clamped = append(clamped, c)
			}
		}
		booked := schedule.TotalMinutes(schedule.Merge(clamped))

		days = append(days, DayUtilization{
			Day:         dayStart.Weekday().String()[:3],
			Utilization: schedule.Percentage(booked, available),
		})
	}
	return days, nil
}

const (
	popularRoomCount = 5
	topUserCount     = 10
)

// Dashboard aggregates booking counts, room popularity, hourly peaks and the
// daily trend over the window, defaulting to the trailing 30 days.
func (q *analyticsQueriesImpl) Dashboard(ctx context.Context, from, to *time.Time) (*DashboardReport, error) {
	now := q.clock.Now()
	window := schedule.ResolveStatsWindow(from, to, now)

	records, err := q.readStore.BookingStatsIn(ctx, window)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load booking statistics")
	}

	type roomAgg struct {
		name     string
		location string
		count    int
		minutes  int
	}

	statusCounts := make(map[string]int)
	roomAggs := make(map[uuid.UUID]*roomAgg)
	hourCounts := make(map[int]int)
	dailyCounts := make(map[string]int)
	totalBookings := 0

	for _, rec := range records {
		effective := booking.EffectiveStatus(booking.Status(rec.Status), rec.Slot.End(), now)
		statusCounts[effective.String()]++

		if booking.Status(rec.Status) != booking.StatusConfirmed {
			continue
		}
		totalBookings++

		agg := roomAggs[rec.RoomID]
		if agg == nil {
			agg = &roomAgg{name: rec.RoomName, location: rec.Location}
			roomAggs[rec.RoomID] = agg
		}
		agg.count++
		agg.minutes += rec.Slot.Minutes()

		hourCounts[rec.Slot.Start().Hour()]++
		dailyCounts[rec.Slot.Start().Format("2006-01-02")]++
	}

	byStatus := make([]StatusCount, 0, len(statusCounts))
	for status, count := range statusCounts {
		byStatus = append(byStatus, StatusCount{Status: status, Count: count})
	}
	sort.Slice(byStatus, func(i, j int) bool { return byStatus[i].Status < byStatus[j].Status })

	popular := make([]PopularRoomEntry, 0, len(roomAggs))
	for _, agg := range roomAggs {
		popular = append(popular, PopularRoomEntry{
			RoomName:     agg.name,
			Location:     agg.location,
			BookingCount: agg.count,
			TotalHours:   schedule.Round2(float64(agg.minutes) / 60),
		})
	}
	sort.Slice(popular, func(i, j int) bool {
		if popular[i].BookingCount != popular[j].BookingCount {
			return popular[i].BookingCount > popular[j].BookingCount
		}
		return popular[i].RoomName < popular[j].RoomName
	})
	if len(popular) > popularRoomCount {
		popular = popular[:popularRoomCount]
	}

	peakHours := make([]HourCountEntry, 0, len(hourCounts))
	for hour, count := range hourCounts {
		peakHours = append(peakHours, HourCountEntry{Hour: hour, Count: count})
	}
	sort.Slice(peakHours, func(i, j int) bool { return peakHours[i].Hour < peakHours[j].Hour })

	trend := make([]TrendEntry, 0, len(dailyCounts))
	for date, count := range dailyCounts {
		trend = append(trend, TrendEntry{Date: date, Count: count})
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Date < trend[j].Date })

	return &DashboardReport{
		TotalBookings:    totalBookings,
		BookingsByStatus: byStatus,
		PopularRooms:     popular,
		PeakHours:        peakHours,
		BookingsTrend:    trend,
		DateRange:        DateRange{Start: window.Start(), End: window.End()},
	}, nil
}

// TimeSlotPopularity buckets confirmed bookings by weekday and starting hour.
func (q *analyticsQueriesImpl) TimeSlotPopularity(ctx context.Context, from, to *time.Time) (*TimeSlotPopularityReport, error) {
	window := schedule.ResolveStatsWindow(from, to, q.clock.Now())

	records, err := q.readStore.BookingStatsIn(ctx, window)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load booking statistics")
	}

	type slotKey struct {
		day  int
		hour int
	}
	counts := make(map[slotKey]int)
	for _, rec := range records {
		if booking.Status(rec.Status) != booking.StatusConfirmed {
			continue
		}
		start := rec.Slot.Start()
		counts[slotKey{day: int(start.Weekday()), hour: start.Hour()}]++
	}

	keys := make([]slotKey, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].day != keys[j].day {
			return keys[i].day < keys[j].day
		}
		return keys[i].hour < keys[j].hour
	})

	slots := make([]TimeSlotPopularityEntry, 0, len(keys))
	for _, key := range keys {
		slots = append(slots, TimeSlotPopularityEntry{
			Hour:      key.hour,
			DayOfWeek: time.Weekday(key.day).String(),
			Count:     counts[key],
		})
	}

	return &TimeSlotPopularityReport{
		Slots:     slots,
		DateRange: DateRange{Start: window.Start(), End: window.End()},
	}, nil
}

// UserStats ranks the most active bookers over the window.
func (q *analyticsQueriesImpl) UserStats(ctx context.Context, from, to *time.Time) (*UserStatsReport, error) {
	window := schedule.ResolveStatsWindow(from, to, q.clock.Now())

	records, err := q.readStore.BookingStatsIn(ctx, window)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load booking statistics")
	}

	type userAgg struct {
		name    string
		email   string
		count   int
		minutes int
	}
	userAggs := make(map[uuid.UUID]*userAgg)
	for _, rec := range records {
		if booking.Status(rec.Status) != booking.StatusConfirmed {
			continue
		}
		agg := userAggs[rec.UserID]
		if agg == nil {
			agg = &userAgg{name: rec.UserName, email: rec.UserEmail}
			userAggs[rec.UserID] = agg
		}
		agg.count++
		agg.minutes += rec.Slot.Minutes()
	}

	users := make([]UserStatsEntry, 0, len(userAggs))
	for _, agg := range userAggs {
		users = append(users, UserStatsEntry{
			UserName:      agg.name,
			UserEmail:     agg.email,
			TotalBookings: agg.count,
			TotalHours:    schedule.Round2(float64(agg.minutes) / 60),
		})
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].TotalBookings != users[j].TotalBookings {
			return users[i].TotalBookings > users[j].TotalBookings
		}
		return users[i].UserName < users[j].UserName
	})
	if len(users) > topUserCount {
		users = users[:topUserCount]
	}

	return &UserStatsReport{
		Users:     users,
		DateRange: DateRange{Start: window.Start(), End: window.End()},
	}, nil
}

func (q *analyticsQueriesImpl) RoomUtilization(ctx context.Context, roomID uuid.UUID, from, to time.Time) (*RoomUtilizationView, error) {
	exists, err := q.readStore.RoomExists(ctx, roomID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if !exists {
		return nil, ErrRoomNotFound
	}

	window := schedule.ResolveRange(schedule.RangeWeek, &from, &to, q.clock.Now())
	slots, err := q.readStore.ConfirmedSlots(ctx, roomID, window)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load room slots")
	}

	result := schedule.Utilization(slots, window, q.workingMinutesPerDay)
	return &RoomUtilizationView{
		RoomID:           roomID,
		BookedMinutes:    result.BookedMinutes,
		AvailableMinutes: result.AvailableMinutes,
		UtilizationRate:  result.Rate,
		BookingCount:     result.BookingCount,
	}, nil
}

func peakHourLabel(starts []time.Time) string {
	hour, ok := schedule.PeakHour(starts)
	if !ok {
		return "N/A"
	}
	return schedule.FormatHour(hour)
}

func popularTimeSlots(starts []time.Time) []TimeSlotEntry {
	top := schedule.TopHours(starts, popularSlotCount)
	entries := make([]TimeSlotEntry, 0, len(top))
	for _, hc := range top {
		entries = append(entries, TimeSlotEntry{
			TimeSlot: schedule.FormatHourSlot(hc.Hour),
			Hour:     hc.Hour,
			Count:    hc.Count,
		})
	}
	return entries
}

func bookingFrequency(total, recurring int) []FrequencyEntry {
	buckets := schedule.FrequencySplit(total, recurring)
	entries := make([]FrequencyEntry, 0, len(buckets))
	for _, b := range buckets {
		entries = append(entries, FrequencyEntry{
			Type:       b.Type,
			Count:      b.Count,
			Percentage: b.Percentage,
		})
	}
	return entries
}

func reportCacheKey(rangeName string, window schedule.Interval) string {
	return fmt.Sprintf("analytics:report:%s:%d:%d", rangeName, window.Start().Unix(), window.End().Unix())
}
