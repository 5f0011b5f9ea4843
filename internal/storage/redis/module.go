package redis

import (
	"context"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
)

// Module provides the shared Redis client used by the outbox and the catalog cache.
var Module = fx.Options(
	fx.Provide(newRedisClient),
	fx.Invoke(registerLifecycle),
)

type clientParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newRedisClient(p clientParams) (*goredis.Client, error) {
	return Connect(p.Ctx, p.Config.RedisURL, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, client *goredis.Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}
