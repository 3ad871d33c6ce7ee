package handlers

import (
	"context"
	"time"

	"github.com/boutiq/storefront/internal/domain/model"
)

// AuthFacade exposes admin authentication operations.
type AuthFacade interface {
	Login(ctx context.Context, email, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// OrderFacade exposes order creation and lookup operations.
type OrderFacade interface {
	CreateOrder(ctx context.Context, req model.NewOrder) (*model.Order, error)
	OrderByID(ctx context.Context, id int64) (*model.Order, error)
	OrderByNumber(ctx context.Context, number string) (*model.Order, error)
	OrdersByEmail(ctx context.Context, email string) ([]model.Order, error)
	Orders(ctx context.Context) ([]model.Order, error)
	ChangeOrderStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error)
}

// PaymentFacade exposes checkout and payment reconciliation operations.
type PaymentFacade interface {
	Checkout(ctx context.Context, req model.NewOrder) (*model.Order, *model.PaymentSession, error)
	VerifyPayment(ctx context.Context, sessionID string) (*model.Order, bool, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

// CatalogFacade exposes product catalog operations.
type CatalogFacade interface {
	Products(ctx context.Context) ([]model.Product, error)
	ProductByID(ctx context.Context, id int64) (*model.Product, error)
	CreateProduct(ctx context.Context, product model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, product model.Product) (*model.Product, error)
	SetProductStock(ctx context.Context, id int64, quantity int) (*model.Product, error)
}

// CommerceFacade is the full application surface the router binds to.
type CommerceFacade interface {
	AuthFacade
	OrderFacade
	PaymentFacade
	CatalogFacade
	ExpireStaleOrders(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error)
}

// HealthChecker reports readiness of backing services.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
