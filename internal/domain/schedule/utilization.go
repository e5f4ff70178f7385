package schedule

import "math"

// DefaultWorkingMinutesPerDay corresponds to a 10-hour working day.
const DefaultWorkingMinutesPerDay = 600

// UtilizationResult describes how heavily a room was booked over a range.
type UtilizationResult struct {
	BookedMinutes    int
	AvailableMinutes int
	Rate             float64
	BookingCount     int
}

// Utilization computes booked vs available minutes for one room over bounds.
// Bookings are clamped to bounds so a partially overlapping booking counts
// only its in-range portion, then merged so stacked bookings are not double
// counted. BookingCount is the number of raw contributing bookings, not the
// number of merged intervals.
func Utilization(bookings []Interval, bounds Interval, workingMinutesPerDay int) UtilizationResult {
	clamped := make([]Interval, 0, len(bookings))
	count := 0
	for _, b := range bookings {
		if cl, ok := b.ClampTo(bounds); ok {
			clamped = append(clamped, cl)
			count++
		}
	}

	booked := TotalMinutes(Merge(clamped))
	available := DaysIn(bounds) * workingMinutesPerDay

	return UtilizationResult{
		BookedMinutes:    booked,
		AvailableMinutes: available,
		Rate:             Percentage(booked, available),
		BookingCount:     count,
	}
}

// DaysIn counts the calendar days covered by bounds, rounding partial days up.
func DaysIn(bounds Interval) int {
	start := StartOfDay(bounds.Start())
	end := bounds.End()
	days := 0
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		days++
	}
	return days
}

// Percentage returns part/whole as a percentage rounded to two decimals,
// and 0 when whole is 0.
func Percentage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return Round2(float64(part) / float64(whole) * 100)
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// WorkingMinutes converts a per-day allowance to the allowance for n days.
func WorkingMinutes(days, workingMinutesPerDay int) int {
	return days * workingMinutesPerDay
}
