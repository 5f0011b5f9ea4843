package khalti

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/usecase"
)

// Module exposes the Khalti payment gateway to fx graph.
var Module = fx.Provide(newGateway)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newGateway(p clientParams) (usecase.PaymentGateway, error) {
	return NewClient(p.Config.KhaltiBaseURL, p.Config.KhaltiSecretKey, p.Config.PaymentAttempts, p.Config.PaymentRetryDelay, p.Logger)
}
