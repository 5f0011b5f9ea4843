package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/repository"
	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newAuthUseCase,
	newOrderOptions,
	newOrderUseCase,
	NewInventoryAdjustor,
	NewCatalogUseCase,
	NewPaymentUseCase,
)

func newAuthUseCase(cfg *config.Config, users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return NewAuthUseCase(users, hasher, strategy, cfg.AdminEmails)
}

func newOrderOptions(cfg *config.Config) OrderOptions {
	return OrderOptions{
		StrictInventory: cfg.InventoryPolicy == config.InventoryStrict,
		Transitions:     NewTransitionPolicy(cfg.StatusTransitions == config.TransitionsStrict),
	}
}

type orderParams struct {
	fx.In

	Orders    repository.OrderRepository
	Users     repository.UserRepository
	Products  repository.ProductRepository
	Inventory *InventoryAdjustor
	Notifier  Notifier
	Logger    *slog.Logger
	Options   OrderOptions
}

func newOrderUseCase(p orderParams) *OrderUseCase {
	return NewOrderUseCase(p.Orders, p.Users, p.Products, p.Inventory, p.Notifier, p.Logger, p.Options)
}
