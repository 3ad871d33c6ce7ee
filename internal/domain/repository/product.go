package repository

import (
	"context"

	"github.com/boutiq/storefront/internal/domain/model"
)

// ProductRepository manages catalog records. Stock decrements for orders go
// through OrderRepository.Create, which runs them inside the order transaction.
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	Update(ctx context.Context, product *model.Product) (*model.Product, error)
	UpdateStock(ctx context.Context, id int64, quantity int) error
}
