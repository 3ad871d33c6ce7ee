package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	domainErrors "github.com/boutiq/storefront/internal/domain/errors"
	"github.com/boutiq/storefront/internal/domain/model"
	"github.com/boutiq/storefront/internal/domain/repository"
)

// CatalogUseCase manages product records for the storefront and back office.
type CatalogUseCase struct {
	products repository.ProductRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(products repository.ProductRepository) *CatalogUseCase {
	return &CatalogUseCase{products: products}
}

// List returns active products.
func (u *CatalogUseCase) List(ctx context.Context) ([]model.Product, error) {
	return u.products.List(ctx)
}

// GetByID fetches a product by identifier.
func (u *CatalogUseCase) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	return u.products.GetByID(ctx, id)
}

// Create validates and persists a new catalog entry.
func (u *CatalogUseCase) Create(ctx context.Context, product model.Product) (*model.Product, error) {
	if err := validateProduct(&product); err != nil {
		return nil, err
	}
	return u.products.Create(ctx, &product)
}

// Update validates and persists catalog attribute changes. Stock is managed
// separately through SetStock and order reservations.
func (u *CatalogUseCase) Update(ctx context.Context, product model.Product) (*model.Product, error) {
	if err := validateProduct(&product); err != nil {
		return nil, err
	}
	return u.products.Update(ctx, &product)
}

// SetStock replaces a product's stock level (back-office restock).
func (u *CatalogUseCase) SetStock(ctx context.Context, id int64, quantity int) (*model.Product, error) {
	if quantity < 0 {
		return nil, domainErrors.NewValidation("Invalid stock")
	}
	if err := u.products.UpdateStock(ctx, id, quantity); err != nil {
		return nil, err
	}
	return u.products.GetByID(ctx, id)
}

func validateProduct(p *model.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Slug = strings.TrimSpace(p.Slug)
	p.SKU = strings.TrimSpace(p.SKU)

	if p.Name == "" {
		return domainErrors.NewValidation("Name required")
	}
	if p.Slug == "" {
		return domainErrors.NewValidation("Slug required")
	}
	if p.SKU == "" {
		return domainErrors.NewValidation("SKU required")
	}
	if p.Price.LessThan(decimal.Zero) {
		return domainErrors.NewValidation("Invalid price")
	}
	if p.StockQuantity < 0 {
		return domainErrors.NewValidation("Invalid stock")
	}
	return nil
}
