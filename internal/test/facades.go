package test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/boutiq/storefront/internal/domain/model"
)

// SampleOrder returns a paid-for-nothing pending order useful as a fixture.
func SampleOrder() *model.Order {
	return &model.Order{
		ID:            11,
		OrderNumber:   "ORD-20260830-001",
		CustomerEmail: "buyer@example.com",
		CustomerName:  "Jean Martin",
		TotalAmount:   decimal.NewFromFloat(99.80),
		PaymentStatus: model.PaymentStatusPending,
		OrderStatus:   model.OrderStatusPending,
		Items: []model.OrderItem{{
			ID: 21, OrderID: 11, ProductID: 1, ProductName: "Ceramic Lamp",
			Quantity: 2, UnitPrice: decimal.NewFromFloat(49.90), Subtotal: decimal.NewFromFloat(99.80),
		}},
		ItemsCount: 1,
	}
}

// AuthFacadeStub implements the handlers auth surface with overridable hooks.
type AuthFacadeStub struct {
	LoginFn      func(ctx context.Context, email, password string) (string, error)
	ParseTokenFn func(token string) (int64, error)
}

func (s AuthFacadeStub) Login(ctx context.Context, email, password string) (string, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, email, password)
	}
	return "session-token", nil
}

func (s AuthFacadeStub) ParseToken(token string) (int64, error) {
	if s.ParseTokenFn != nil {
		return s.ParseTokenFn(token)
	}
	return 1, nil
}

// OrderFacadeStub implements the handlers order surface with overridable hooks.
type OrderFacadeStub struct {
	CreateOrderFn       func(ctx context.Context, req model.NewOrder) (*model.Order, error)
	OrderByIDFn         func(ctx context.Context, id int64) (*model.Order, error)
	OrderByNumberFn     func(ctx context.Context, number string) (*model.Order, error)
	OrdersByEmailFn     func(ctx context.Context, email string) ([]model.Order, error)
	OrdersFn            func(ctx context.Context) ([]model.Order, error)
	ChangeOrderStatusFn func(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error)
}

func (s OrderFacadeStub) CreateOrder(ctx context.Context, req model.NewOrder) (*model.Order, error) {
	if s.CreateOrderFn != nil {
		return s.CreateOrderFn(ctx, req)
	}
	return SampleOrder(), nil
}

func (s OrderFacadeStub) OrderByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.OrderByIDFn != nil {
		return s.OrderByIDFn(ctx, id)
	}
	return SampleOrder(), nil
}

func (s OrderFacadeStub) OrderByNumber(ctx context.Context, number string) (*model.Order, error) {
	if s.OrderByNumberFn != nil {
		return s.OrderByNumberFn(ctx, number)
	}
	return SampleOrder(), nil
}

func (s OrderFacadeStub) OrdersByEmail(ctx context.Context, email string) ([]model.Order, error) {
	if s.OrdersByEmailFn != nil {
		return s.OrdersByEmailFn(ctx, email)
	}
	return []model.Order{*SampleOrder()}, nil
}

func (s OrderFacadeStub) Orders(ctx context.Context) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx)
	}
	return []model.Order{*SampleOrder()}, nil
}

func (s OrderFacadeStub) ChangeOrderStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
	if s.ChangeOrderStatusFn != nil {
		return s.ChangeOrderStatusFn(ctx, id, status)
	}
	order := SampleOrder()
	order.OrderStatus = status
	return order, nil
}

// PaymentFacadeStub implements the handlers payment surface with overridable hooks.
type PaymentFacadeStub struct {
	CheckoutFn      func(ctx context.Context, req model.NewOrder) (*model.Order, *model.PaymentSession, error)
	VerifyPaymentFn func(ctx context.Context, sessionID string) (*model.Order, bool, error)
	HandleWebhookFn func(ctx context.Context, payload []byte, signature string) error
}

func (s PaymentFacadeStub) Checkout(ctx context.Context, req model.NewOrder) (*model.Order, *model.PaymentSession, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, req)
	}
	return SampleOrder(), &model.PaymentSession{SessionID: "cs_test_1", URL: "https://pay.example/cs_test_1"}, nil
}

func (s PaymentFacadeStub) VerifyPayment(ctx context.Context, sessionID string) (*model.Order, bool, error) {
	if s.VerifyPaymentFn != nil {
		return s.VerifyPaymentFn(ctx, sessionID)
	}
	order := SampleOrder()
	order.PaymentStatus = model.PaymentStatusPaid
	order.OrderStatus = model.OrderStatusProcessing
	return order, true, nil
}

func (s PaymentFacadeStub) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if s.HandleWebhookFn != nil {
		return s.HandleWebhookFn(ctx, payload, signature)
	}
	return nil
}

// CatalogFacadeStub implements the handlers catalog surface with overridable hooks.
type CatalogFacadeStub struct {
	ProductsFn        func(ctx context.Context) ([]model.Product, error)
	ProductByIDFn     func(ctx context.Context, id int64) (*model.Product, error)
	CreateProductFn   func(ctx context.Context, product model.Product) (*model.Product, error)
	UpdateProductFn   func(ctx context.Context, product model.Product) (*model.Product, error)
	SetProductStockFn func(ctx context.Context, id int64, quantity int) (*model.Product, error)
}

// SampleProduct returns an in-stock catalog fixture.
func SampleProduct() *model.Product {
	return &model.Product{
		ID: 1, Name: "Ceramic Lamp", Slug: "ceramic-lamp", SKU: "LAMP-001",
		Price: decimal.NewFromFloat(49.90), StockQuantity: 5, Active: true,
	}
}

func (s CatalogFacadeStub) Products(ctx context.Context) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx)
	}
	return []model.Product{*SampleProduct()}, nil
}

func (s CatalogFacadeStub) ProductByID(ctx context.Context, id int64) (*model.Product, error) {
	if s.ProductByIDFn != nil {
		return s.ProductByIDFn(ctx, id)
	}
	return SampleProduct(), nil
}

func (s CatalogFacadeStub) CreateProduct(ctx context.Context, product model.Product) (*model.Product, error) {
	if s.CreateProductFn != nil {
		return s.CreateProductFn(ctx, product)
	}
	product.ID = 1
	return &product, nil
}

func (s CatalogFacadeStub) UpdateProduct(ctx context.Context, product model.Product) (*model.Product, error) {
	if s.UpdateProductFn != nil {
		return s.UpdateProductFn(ctx, product)
	}
	return &product, nil
}

func (s CatalogFacadeStub) SetProductStock(ctx context.Context, id int64, quantity int) (*model.Product, error) {
	if s.SetProductStockFn != nil {
		return s.SetProductStockFn(ctx, id, quantity)
	}
	product := SampleProduct()
	product.StockQuantity = quantity
	return product, nil
}

// CommerceFacadeStub satisfies the full router facade.
type CommerceFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	PaymentFacadeStub
	CatalogFacadeStub
	ExpireStaleOrdersFn func(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error)
}

func (s CommerceFacadeStub) ExpireStaleOrders(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
	if s.ExpireStaleOrdersFn != nil {
		return s.ExpireStaleOrdersFn(ctx, cutoff, limit)
	}
	return nil, nil
}

// HealthCheckerStub reports a configurable readiness outcome.
type HealthCheckerStub struct {
	Err error
}

func (s HealthCheckerStub) HealthCheck(context.Context) error { return s.Err }
