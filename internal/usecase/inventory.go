package usecase

import (
	"context"
	"errors"
	"log/slog"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// AdjustReport summarises one inventory run.
type AdjustReport struct {
	Adjusted int
	Skipped  int
	Failed   int
}

// InventoryAdjustor decrements per-size stock for each line item of an order.
type InventoryAdjustor struct {
	products repository.ProductRepository
	cache    ProductCache
	logger   *slog.Logger
}

// NewInventoryAdjustor constructs InventoryAdjustor.
func NewInventoryAdjustor(products repository.ProductRepository, cache ProductCache, logger *slog.Logger) *InventoryAdjustor {
	return &InventoryAdjustor{products: products, cache: cache, logger: logger}
}

// Apply walks line items in order. Unknown products and sizes are skipped,
// storage failures are logged and do not stop the remaining items.
func (a *InventoryAdjustor) Apply(ctx context.Context, order *model.Order) AdjustReport {
	var report AdjustReport
	for _, item := range order.Items {
		log := a.logger.With(
			slog.Int64("order_id", order.ID),
			slog.Int64("product_id", item.ProductID),
			slog.String("size", item.Size),
		)

		idx, ok := model.SizeIndex(item.Size)
		if !ok {
			report.Skipped++
			log.Warn("inventory skip: unknown size")
			continue
		}

		product, err := a.products.AdjustStock(ctx, item.ProductID, idx, item.Quantity)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				report.Skipped++
				log.Warn("inventory skip: product not found")
				continue
			}
			report.Failed++
			log.Error("inventory adjust failed", slog.Any("error", err))
			continue
		}

		report.Adjusted++
		log.Debug("stock adjusted", slog.Any("stock", product.Stock), slog.Any("sizes", product.Sizes))
		if err := a.cache.Invalidate(ctx, item.ProductID); err != nil {
			log.Warn("product cache invalidation failed", slog.Any("error", err))
		}
	}
	return report
}
