package usecase

import (
	"context"
	"log/slog"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// CatalogUseCase serves product reads through the cache and admin writes.
type CatalogUseCase struct {
	products repository.ProductRepository
	cache    ProductCache
	logger   *slog.Logger
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(products repository.ProductRepository, cache ProductCache, logger *slog.Logger) *CatalogUseCase {
	return &CatalogUseCase{products: products, cache: cache, logger: logger}
}

// List returns every product, newest first.
func (u *CatalogUseCase) List(ctx context.Context) ([]model.Product, error) {
	return u.products.List(ctx)
}

// Get returns one product, served from cache when possible.
func (u *CatalogUseCase) Get(ctx context.Context, id int64) (*model.Product, error) {
	return u.cache.GetOrLoad(ctx, id, func(ctx context.Context) (*model.Product, error) {
		return u.products.GetByID(ctx, id)
	})
}

// Create stores a product with normalized stock and derived sizes.
func (u *CatalogUseCase) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	if err := ValidateProduct(p); err != nil {
		return nil, err
	}
	prepared := *p
	prepared.Stock = model.NormalizeStock(p.Stock)
	prepared.Sizes = model.DeriveSizes(prepared.Stock)
	return u.products.Create(ctx, &prepared)
}

// Update overwrites a product. Sizes are re-derived from the new stock.
func (u *CatalogUseCase) Update(ctx context.Context, p *model.Product) (*model.Product, error) {
	if err := ValidateProduct(p); err != nil {
		return nil, err
	}
	prepared := *p
	prepared.Stock = model.NormalizeStock(p.Stock)
	prepared.Sizes = model.DeriveSizes(prepared.Stock)
	if err := u.products.Update(ctx, &prepared); err != nil {
		return nil, err
	}
	u.invalidate(ctx, prepared.ID)
	return &prepared, nil
}

// Delete removes a product.
func (u *CatalogUseCase) Delete(ctx context.Context, id int64) error {
	if err := u.products.Delete(ctx, id); err != nil {
		return err
	}
	u.invalidate(ctx, id)
	return nil
}

func (u *CatalogUseCase) invalidate(ctx context.Context, id int64) {
	if err := u.cache.Invalidate(ctx, id); err != nil {
		u.logger.Warn("product cache invalidation failed", slog.Int64("product_id", id), slog.Any("error", err))
	}
}
