//go:build unit

package cache_test

import (
	"context"
	"testing"
	"time"

	"roombook/internal/infra/cache"
	"roombook/internal/usecase/queries"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*cache.AnalyticsCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return cache.NewAnalyticsCache(client, time.Minute), mr
}

func TestAnalyticsCache_RoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	report := &queries.AnalyticsReport{
		TotalRooms:    3,
		TotalBookings: 12,
		PeakUsageHour: "9:00 AM",
	}

	_, ok, err := c.GetReport(ctx, "analytics:report:week:0:1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.SetReport(ctx, "analytics:report:week:0:1", report))

	got, ok, err := c.GetReport(ctx, "analytics:report:week:0:1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, report, got)
}

func TestAnalyticsCache_InvalidateReports(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetReport(ctx, "analytics:report:week:0:1", &queries.AnalyticsReport{}))
	require.NoError(t, c.SetReport(ctx, "analytics:report:month:0:1", &queries.AnalyticsReport{}))
	mr.Set("unrelated:key", "stays")

	require.NoError(t, c.InvalidateReports(ctx))

	_, ok, err := c.GetReport(ctx, "analytics:report:week:0:1")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.True(t, mr.Exists("unrelated:key"))
}

func TestAnalyticsCache_CorruptEntryBehavesLikeMiss(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	mr.Set("analytics:report:week:0:1", "{not json")

	_, ok, err := c.GetReport(ctx, "analytics:report:week:0:1")
	require.NoError(t, err)
	assert.False(t, ok)
}
