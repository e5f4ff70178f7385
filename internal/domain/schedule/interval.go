package schedule

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var ErrInvalidInterval = errors.New("interval end must be after start")

// Interval is a half-open time span [start, end) in UTC.
// Two intervals touching only at a boundary instant do not overlap.
type Interval struct {
	start time.Time
	end   time.Time
}

func NewInterval(start, end time.Time) (Interval, error) {
	if !end.After(start) {
		return Interval{}, ErrInvalidInterval
	}
	return Interval{
		start: start.UTC(),
		end:   end.UTC(),
	}, nil
}

// MustInterval is for construction from values already known to be ordered,
// such as test fixtures and range bounds computed internally.
func MustInterval(start, end time.Time) Interval {
	iv, err := NewInterval(start, end)
	if err != nil {
		panic(fmt.Sprintf("schedule: interval [%s, %s): %v", start, end, err))
	}
	return iv
}

func (iv Interval) Start() time.Time {
	return iv.start
}

func (iv Interval) End() time.Time {
	return iv.end
}

func (iv Interval) Duration() time.Duration {
	return iv.end.Sub(iv.start)
}

func (iv Interval) Minutes() int {
	return int(iv.Duration() / time.Minute)
}

func (iv Interval) IsZero() bool {
	return iv.start.IsZero() && iv.end.IsZero()
}

// Overlaps reports whether two half-open intervals intersect.
// Strict inequalities: a shared boundary instant is not a conflict.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.start.Before(other.end) && other.start.Before(iv.end)
}

// Contains reports whether t falls inside [start, end).
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.start) && t.Before(iv.end)
}

// ClampTo restricts the interval to bounds. The second return value is false
// when nothing of the interval lies inside bounds.
func (iv Interval) ClampTo(bounds Interval) (Interval, bool) {
	start := iv.start
	if start.Before(bounds.start) {
		start = bounds.start
	}
	end := iv.end
	if end.After(bounds.end) {
		end = bounds.end
	}
	if !end.After(start) {
		return Interval{}, false
	}
	return Interval{start: start, end: end}, true
}

func (iv Interval) ToTstzrange() string {
	return fmt.Sprintf("[%s,%s)", iv.start.Format(time.RFC3339), iv.end.Format(time.RFC3339))
}

// Merge collapses intervals into the minimal ordered non-overlapping set.
// Adjacent intervals sharing only a boundary instant are kept separate so
// that merged totals agree with the Overlaps conflict rule.
func Merge(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}

	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].start.Before(sorted[j].start)
	})

	merged := []Interval{sorted[0]}
	for _, cur := range sorted[1:] {
		last := &merged[len(merged)-1]
		if cur.start.Before(last.end) {
			if cur.end.After(last.end) {
				last.end = cur.end
			}
			continue
		}
		merged = append(merged, cur)
	}
	return merged
}

// TotalMinutes sums the durations of the given intervals.
func TotalMinutes(intervals []Interval) int {
	total := 0
	for _, iv := range intervals {
		total += iv.Minutes()
	}
	return total
}

// ConflictsWithAny reports whether candidate overlaps at least one of existing.
func ConflictsWithAny(candidate Interval, existing []Interval) bool {
	for _, iv := range existing {
		if candidate.Overlaps(iv) {
			return true
		}
	}
	return false
}
