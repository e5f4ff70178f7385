package schedule

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidClock   = errors.New("clock value must be HH:MM")
	ErrInvalidWeekday = errors.New("weekday must be between 0 (Sunday) and 6 (Saturday)")
)

// Clock is a time of day ("HH:MM", 24-hour) independent of any date.
type Clock struct {
	hour   int
	minute int
}

func ParseClock(value string) (Clock, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(value, "%d:%d", &hour, &minute); err != nil {
		return Clock{}, ErrInvalidClock
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Clock{}, ErrInvalidClock
	}
	return Clock{hour: hour, minute: minute}, nil
}

func (c Clock) Hour() int   { return c.hour }
func (c Clock) Minute() int { return c.minute }

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.hour, c.minute)
}

// On anchors the clock onto the calendar date of d, in UTC.
func (c Clock) On(d time.Time) time.Time {
	d = d.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), c.hour, c.minute, 0, 0, time.UTC)
}

// CombineDateAndClock builds the concrete UTC instant for a date and an
// "HH:MM" time of day. Shared by recurrence expansion and conflict checking.
func CombineDateAndClock(date time.Time, clock string) (time.Time, error) {
	c, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return c.On(date), nil
}

// StartOfDay truncates t to UTC midnight.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ExpandWeekly produces the ascending occurrence dates for a weekly pattern:
// the first date at or after anchor falling on weekday, then every 7 days
// through last inclusive. Dates are UTC midnights. An anchor already on the
// target weekday is the first occurrence.
func ExpandWeekly(anchor, last time.Time, weekday time.Weekday) []time.Time {
	current := StartOfDay(anchor)
	end := StartOfDay(last)

	for current.Weekday() != weekday {
		current = current.AddDate(0, 0, 1)
	}

	var dates []time.Time
	for !current.After(end) {
		dates = append(dates, current)
		current = current.AddDate(0, 0, 7)
	}
	return dates
}

// CountWeekly returns how many occurrences ExpandWeekly would produce
// without materializing them.
func CountWeekly(anchor, last time.Time, weekday time.Weekday) int {
	current := StartOfDay(anchor)
	end := StartOfDay(last)
	for current.Weekday() != weekday {
		current = current.AddDate(0, 0, 1)
	}
	if current.After(end) {
		return 0
	}
	return int(end.Sub(current)/(7*24*time.Hour)) + 1
}
