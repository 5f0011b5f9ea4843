package outbox

import (
	"log/slog"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/usecase"
)

// Module exposes the Redis outbox as the use case notifier.
var Module = fx.Options(
	fx.Provide(newOutbox),
	fx.Provide(func(o *Outbox) usecase.Notifier { return o }),
)

func newOutbox(client *goredis.Client, logger *slog.Logger) *Outbox {
	return New(client, DefaultKey, logger)
}
