package bootstrap

import (
	"context"

	"roombook/internal/infra/cache"
	"roombook/internal/pkg/config"
	"roombook/internal/usecase/commands"
	"roombook/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewReportCache,
	),
)

// NewReportCache wires the Redis-backed analytics cache. With Redis disabled
// both bindings are nil and callers fall back to building reports on demand.
func NewReportCache(lc fx.Lifecycle, cfg config.Config) (queries.ReportCache, commands.ReportInvalidator) {
	if !cfg.Redis.Enabled {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	reportCache := cache.NewAnalyticsCache(client, cfg.Redis.CacheTTL)
	return reportCache, reportCache
}
