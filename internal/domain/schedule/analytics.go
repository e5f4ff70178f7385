package schedule

import (
	"fmt"
	"sort"
	"time"
)

// HourCount is one bucket of a start-hour histogram.
type HourCount struct {
	Hour  int
	Count int
}

// HourHistogram buckets instants by their UTC start hour.
func HourHistogram(starts []time.Time) []HourCount {
	counts := make(map[int]int)
	for _, t := range starts {
		counts[t.UTC().Hour()]++
	}

	buckets := make([]HourCount, 0, len(counts))
	for hour, count := range counts {
		buckets = append(buckets, HourCount{Hour: hour, Count: count})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Hour < buckets[j].Hour
	})
	return buckets
}

// PeakHour returns the busiest start hour, ties broken by the earliest hour.
// The boolean is false when there are no instants at all.
func PeakHour(starts []time.Time) (int, bool) {
	buckets := HourHistogram(starts)
	if len(buckets) == 0 {
		return 0, false
	}
	return buckets[0].Hour, true
}

// TopHours returns at most n histogram buckets ranked by count descending,
// ties broken deterministically by ascending hour.
func TopHours(starts []time.Time, n int) []HourCount {
	buckets := HourHistogram(starts)
	if len(buckets) > n {
		buckets = buckets[:n]
	}
	return buckets
}

// FrequencySplit divides a booking population into single vs recurring
// buckets with percentages. The recurring percentage is derived from the
// single one so the two always sum to 100 when total > 0.
type FrequencyBucket struct {
	Type       string
	Count      int
	Percentage int
}

func FrequencySplit(total, recurring int) []FrequencyBucket {
	single := total - recurring

	singlePct, recurringPct := 0, 0
	if total > 0 {
		singlePct = int(float64(single)/float64(total)*100 + 0.5)
		recurringPct = 100 - singlePct
	}

	return []FrequencyBucket{
		{Type: "Single Bookings", Count: single, Percentage: singlePct},
		{Type: "Recurring Bookings", Count: recurring, Percentage: recurringPct},
	}
}

// FormatHour renders an hour bucket as a 12-hour clock label ("9:00 AM").
func FormatHour(hour int) string {
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:00 %s", display, period)
}

// FormatHourSlot renders the one-hour slot starting at hour
// ("9:00 AM - 10:00 AM").
func FormatHourSlot(hour int) string {
	return FormatHour(hour) + " - " + FormatHour((hour+1)%24)
}
