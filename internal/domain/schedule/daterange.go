package schedule

import "time"

// Named reporting ranges resolved relative to "now".
const (
	RangeWeek  = "week"
	RangeMonth = "month"
	RangeYear  = "year"
)

// ResolveRange turns a symbolic range or explicit bounds into a concrete
// UTC-normalized half-open window. Explicit bounds win when both are given
// and resolve to [startOfDay(from), startOfDay(to)+24h). Symbolic ranges are
// anchored at now: weeks start on Sunday, months and years on the first day.
// Anything unrecognized falls back to the current week.
func ResolveRange(name string, from, to *time.Time, now time.Time) Interval {
	if from != nil && to != nil {
		start := StartOfDay(*from)
		end := StartOfDay(*to).AddDate(0, 0, 1)
		if !end.After(start) {
			end = start.AddDate(0, 0, 1)
		}
		return Interval{start: start, end: end}
	}

	now = now.UTC()
	switch name {
	case RangeMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return Interval{start: start, end: start.AddDate(0, 1, 0)}
	case RangeYear:
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		return Interval{start: start, end: start.AddDate(1, 0, 0)}
	case RangeWeek:
		fallthrough
	default:
		start := StartOfDay(now).AddDate(0, 0, -int(now.Weekday()))
		return Interval{start: start, end: start.AddDate(0, 0, 7)}
	}
}

// ResolveStatsWindow resolves the window for aggregate booking statistics.
// Explicit day bounds behave like ResolveRange; with neither bound the
// window is the trailing 30 days ending at now.
func ResolveStatsWindow(from, to *time.Time, now time.Time) Interval {
	now = now.UTC()
	start := now.AddDate(0, 0, -30)
	end := now
	if from != nil {
		start = StartOfDay(*from)
	}
	if to != nil {
		end = StartOfDay(*to).AddDate(0, 0, 1)
	}
	if !end.After(start) {
		end = start.AddDate(0, 0, 1)
	}
	return Interval{start: start, end: end}
}
