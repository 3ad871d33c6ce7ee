package app

import (
	"context"
	"time"

	"github.com/boutiq/storefront/internal/domain/model"
	"github.com/boutiq/storefront/internal/usecase"
)

// CommerceFacade aggregates the use cases behind a single application surface
// consumed by HTTP handlers and background workers.
type CommerceFacade struct {
	auth     *usecase.AuthUseCase
	orders   *usecase.OrderUseCase
	catalog  *usecase.CatalogUseCase
	payments *usecase.PaymentUseCase
}

// NewCommerceFacade constructs CommerceFacade.
func NewCommerceFacade(auth *usecase.AuthUseCase, orders *usecase.OrderUseCase, catalog *usecase.CatalogUseCase, payments *usecase.PaymentUseCase) *CommerceFacade {
	return &CommerceFacade{auth: auth, orders: orders, catalog: catalog, payments: payments}
}

func (f *CommerceFacade) Login(ctx context.Context, email, password string) (string, error) {
	return f.auth.Login(ctx, email, password)
}

func (f *CommerceFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *CommerceFacade) CreateOrder(ctx context.Context, req model.NewOrder) (*model.Order, error) {
	return f.orders.Create(ctx, req)
}

func (f *CommerceFacade) OrderByID(ctx context.Context, id int64) (*model.Order, error) {
	return f.orders.GetByID(ctx, id)
}

func (f *CommerceFacade) OrderByNumber(ctx context.Context, number string) (*model.Order, error) {
	return f.orders.GetByNumber(ctx, number)
}

func (f *CommerceFacade) OrdersByEmail(ctx context.Context, email string) ([]model.Order, error) {
	return f.orders.ListByEmail(ctx, email)
}

func (f *CommerceFacade) Orders(ctx context.Context) ([]model.Order, error) {
	return f.orders.List(ctx)
}

func (f *CommerceFacade) ChangeOrderStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
	return f.orders.ChangeStatus(ctx, id, status)
}

// Checkout assembles the order and opens a payment session for it.
func (f *CommerceFacade) Checkout(ctx context.Context, req model.NewOrder) (*model.Order, *model.PaymentSession, error) {
	order, err := f.orders.Create(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	session, err := f.payments.CreateSession(ctx, order)
	if err != nil {
		return nil, nil, err
	}

	return order, session, nil
}

func (f *CommerceFacade) VerifyPayment(ctx context.Context, sessionID string) (*model.Order, bool, error) {
	return f.payments.Verify(ctx, sessionID)
}

func (f *CommerceFacade) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	return f.payments.HandleWebhook(ctx, payload, signature)
}

func (f *CommerceFacade) Products(ctx context.Context) ([]model.Product, error) {
	return f.catalog.List(ctx)
}

func (f *CommerceFacade) ProductByID(ctx context.Context, id int64) (*model.Product, error) {
	return f.catalog.GetByID(ctx, id)
}

func (f *CommerceFacade) CreateProduct(ctx context.Context, product model.Product) (*model.Product, error) {
	return f.catalog.Create(ctx, product)
}

func (f *CommerceFacade) UpdateProduct(ctx context.Context, product model.Product) (*model.Product, error) {
	return f.catalog.Update(ctx, product)
}

func (f *CommerceFacade) SetProductStock(ctx context.Context, id int64, quantity int) (*model.Product, error) {
	return f.catalog.SetStock(ctx, id, quantity)
}

func (f *CommerceFacade) ExpireStaleOrders(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
	return f.orders.ExpireStale(ctx, cutoff, limit)
}
