package repository

import (
	"context"
	"time"

	"github.com/boutiq/storefront/internal/domain/model"
)

// OrderRepository persists orders with their line items.
type OrderRepository interface {
	// Create validates stock, snapshots prices, assigns an order number and
	// persists the order with its items and stock decrements in one
	// transaction. Either everything commits or nothing does.
	Create(ctx context.Context, req model.NewOrder) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	GetByNumber(ctx context.Context, number string) (*model.Order, error)
	ListByEmail(ctx context.Context, email string) ([]model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) error
	// MarkPaid transitions payment_status pending->paid and advances a pending
	// order to processing. The returned flag reports whether this call applied
	// the transition; redelivered confirmations return false.
	MarkPaid(ctx context.Context, orderNumber, paymentRef string) (*model.Order, bool, error)
	// ExpirePending cancels unpaid orders created before the cutoff and
	// returns their stock to the catalog.
	ExpirePending(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error)
}
