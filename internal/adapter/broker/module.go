package broker

import (
	"context"
	"log/slog"
	"time"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
)

const (
	connectAttempts = 5
	connectDelay    = 2 * time.Second
)

// Module provides the RabbitMQ notification publisher.
var Module = fx.Options(
	fx.Provide(newPublisher),
	fx.Invoke(registerLifecycle),
)

type publisherParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newPublisher(p publisherParams) (*Publisher, error) {
	return Connect(p.Ctx, p.Config.AMQPURL, connectAttempts, connectDelay, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, publisher *Publisher) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return publisher.Close()
		},
	})
}
