package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// ProductRepository describes persistence operations with catalog products.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id int64) error
	// AdjustStock decrements stock at sizeIndex under a row lock and stores
	// the re-derived size list. Returns ErrNotFound for unknown products.
	AdjustStock(ctx context.Context, productID int64, sizeIndex, quantity int) (*model.Product, error)
}
