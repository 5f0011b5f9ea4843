package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/adapter/broker"
	"github.com/polkiloo/storefront/internal/adapter/cache"
	"github.com/polkiloo/storefront/internal/adapter/khalti"
	"github.com/polkiloo/storefront/internal/adapter/outbox"
	"github.com/polkiloo/storefront/internal/app"
	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/logger"
	"github.com/polkiloo/storefront/internal/pkg/auth"
	"github.com/polkiloo/storefront/internal/server/http/router"
	"github.com/polkiloo/storefront/internal/storage/postgres"
	"github.com/polkiloo/storefront/internal/storage/redis"
	"github.com/polkiloo/storefront/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		redis.Module,
		outbox.Module,
		cache.Module,
		broker.Module,
		khalti.Module,
		usecase.Module,
		fx.Provide(
			func(s *postgres.Storage) app.HealthChecker { return s },
			func(o *outbox.Outbox) app.NotificationOutbox { return o },
			func(p *broker.Publisher) app.EventPublisher { return p },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
