package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product describes a catalog entry.
type Product struct {
	ID            int64
	Name          string
	Slug          string
	Description   string
	SKU           string
	CategoryID    *int64
	BrandID       *int64
	Price         decimal.Decimal
	StockQuantity int
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
