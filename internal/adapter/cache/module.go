package cache

import (
	"log/slog"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/usecase"
)

// Module exposes the Redis product cache to use cases.
var Module = fx.Provide(
	newProductCache,
	func(c *ProductCache) usecase.ProductCache { return c },
)

func newProductCache(client *goredis.Client, cfg *config.Config, logger *slog.Logger) *ProductCache {
	return NewProductCache(client, cfg.CacheTTL, logger)
}
