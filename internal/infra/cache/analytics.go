package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"roombook/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
)

const reportKeyPattern = "analytics:report:*"

// AnalyticsCache keeps assembled reports in Redis until the next calendar
// write invalidates them.
type AnalyticsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAnalyticsCache(client *redis.Client, ttl time.Duration) *AnalyticsCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &AnalyticsCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *AnalyticsCache) GetReport(ctx context.Context, key string) (*queries.AnalyticsReport, bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var report queries.AnalyticsReport
	if err := json.Unmarshal(payload, &report); err != nil {
		// A corrupt entry behaves like a miss and will be overwritten.
		return nil, false, nil
	}
	return &report, true, nil
}

func (c *AnalyticsCache) SetReport(ctx context.Context, key string, report *queries.AnalyticsReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, c.ttl).Err()
}

// InvalidateReports drops every cached report. Bookings affect every range,
// so there is no point in per-key invalidation.
func (c *AnalyticsCache) InvalidateReports(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, reportKeyPattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
