package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/boutiq/storefront/internal/domain/model"
)

// ProductRequest carries catalog attributes for create/update.
type ProductRequest struct {
	Name          string          `json:"name"`
	Slug          string          `json:"slug"`
	Description   string          `json:"description"`
	SKU           string          `json:"sku"`
	CategoryID    *int64          `json:"category_id"`
	BrandID       *int64          `json:"brand_id"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	Active        *bool           `json:"is_active"`
}

// ToModel converts the request into a domain product.
func (r ProductRequest) ToModel() model.Product {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return model.Product{
		Name:          r.Name,
		Slug:          r.Slug,
		Description:   r.Description,
		SKU:           r.SKU,
		CategoryID:    r.CategoryID,
		BrandID:       r.BrandID,
		Price:         r.Price,
		StockQuantity: r.StockQuantity,
		Active:        active,
	}
}

// ProductResponse is the JSON shape for a catalog entry.
type ProductResponse struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Slug          string          `json:"slug"`
	Description   string          `json:"description,omitempty"`
	SKU           string          `json:"sku"`
	CategoryID    *int64          `json:"category_id,omitempty"`
	BrandID       *int64          `json:"brand_id,omitempty"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	Active        bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToProductResponse maps a domain product to its JSON representation.
func ToProductResponse(p model.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Slug:          p.Slug,
		Description:   p.Description,
		SKU:           p.SKU,
		CategoryID:    p.CategoryID,
		BrandID:       p.BrandID,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		Active:        p.Active,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// StockRequest sets an absolute stock level.
type StockRequest struct {
	StockQuantity *int `json:"stock_quantity"`
}
