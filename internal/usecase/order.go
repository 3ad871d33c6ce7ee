package usecase

import (
	"context"
	"fmt"
	"time"

	domainErrors "github.com/boutiq/storefront/internal/domain/errors"
	"github.com/boutiq/storefront/internal/domain/model"
	"github.com/boutiq/storefront/internal/domain/repository"
)

// OrderUseCase assembles and reads customer orders.
type OrderUseCase struct {
	orders repository.OrderRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders}
}

// Create validates the proposed order and persists it atomically with its
// stock reservations. Validation runs before any repository access, so an
// empty cart never reaches the database.
func (u *OrderUseCase) Create(ctx context.Context, req model.NewOrder) (*model.Order, error) {
	req, err := ValidateNewOrder(req)
	if err != nil {
		return nil, err
	}
	return u.orders.Create(ctx, req)
}

// GetByID returns the order with its items.
func (u *OrderUseCase) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	return u.orders.GetByID(ctx, id)
}

// GetByNumber resolves the human-readable order number back to the order.
func (u *OrderUseCase) GetByNumber(ctx context.Context, number string) (*model.Order, error) {
	return u.orders.GetByNumber(ctx, number)
}

// ListByEmail returns a customer's orders, newest first.
func (u *OrderUseCase) ListByEmail(ctx context.Context, email string) ([]model.Order, error) {
	return u.orders.ListByEmail(ctx, email)
}

// List returns all orders with item counts for the back office.
func (u *OrderUseCase) List(ctx context.Context) ([]model.Order, error) {
	return u.orders.List(ctx)
}

// ChangeStatus applies an admin fulfillment transition after checking it
// against the transition table.
func (u *OrderUseCase) ChangeStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
	if !model.ValidOrderStatus(status) {
		return nil, domainErrors.NewValidation("Invalid status")
	}

	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !model.CanTransition(order.OrderStatus, status) {
		return nil, fmt.Errorf("%w: %s to %s", domainErrors.ErrInvalidTransition, order.OrderStatus, status)
	}

	if err := u.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	return u.orders.GetByID(ctx, id)
}

// ExpireStale cancels unpaid orders older than the cutoff and restores
// their stock. Used by the background sweeper.
func (u *OrderUseCase) ExpireStale(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
	return u.orders.ExpirePending(ctx, cutoff, limit)
}
