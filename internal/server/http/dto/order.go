package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/boutiq/storefront/internal/domain/model"
)

// OrderItemRequest is one cart line as submitted by the storefront.
type OrderItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// CreateOrderRequest carries the buyer, shipping and cart fields.
type CreateOrderRequest struct {
	CustomerEmail      string             `json:"customer_email"`
	CustomerName       string             `json:"customer_name"`
	CustomerPhone      string             `json:"customer_phone"`
	ShippingAddress    string             `json:"shipping_address"`
	ShippingCity       string             `json:"shipping_city"`
	ShippingPostalCode string             `json:"shipping_postal_code"`
	ShippingCountry    string             `json:"shipping_country"`
	Items              []OrderItemRequest `json:"items"`
}

// ToModel converts the request into the domain order proposal.
func (r CreateOrderRequest) ToModel() model.NewOrder {
	items := make([]model.NewOrderItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, model.NewOrderItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return model.NewOrder{
		CustomerEmail:      r.CustomerEmail,
		CustomerName:       r.CustomerName,
		CustomerPhone:      r.CustomerPhone,
		ShippingAddress:    r.ShippingAddress,
		ShippingCity:       r.ShippingCity,
		ShippingPostalCode: r.ShippingPostalCode,
		ShippingCountry:    r.ShippingCountry,
		Items:              items,
	}
}

// OrderItemResponse is a persisted line item.
type OrderItemResponse struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderResponse is the JSON shape for an order with optional items.
type OrderResponse struct {
	ID                 int64               `json:"id"`
	OrderNumber        string              `json:"order_number"`
	CustomerEmail      string              `json:"customer_email"`
	CustomerName       string              `json:"customer_name"`
	CustomerPhone      string              `json:"customer_phone,omitempty"`
	ShippingAddress    string              `json:"shipping_address"`
	ShippingCity       string              `json:"shipping_city"`
	ShippingPostalCode string              `json:"shipping_postal_code"`
	ShippingCountry    string              `json:"shipping_country"`
	TotalAmount        decimal.Decimal     `json:"total_amount"`
	PaymentStatus      string              `json:"payment_status"`
	OrderStatus        string              `json:"order_status"`
	PaymentRef         *string             `json:"payment_ref,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
	Items              []OrderItemResponse `json:"items,omitempty"`
	ItemsCount         int                 `json:"items_count"`
}

// ToOrderResponse maps a domain order to its JSON representation.
func ToOrderResponse(order model.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		})
	}
	return OrderResponse{
		ID:                 order.ID,
		OrderNumber:        order.OrderNumber,
		CustomerEmail:      order.CustomerEmail,
		CustomerName:       order.CustomerName,
		CustomerPhone:      order.CustomerPhone,
		ShippingAddress:    order.ShippingAddress,
		ShippingCity:       order.ShippingCity,
		ShippingPostalCode: order.ShippingPostalCode,
		ShippingCountry:    order.ShippingCountry,
		TotalAmount:        order.TotalAmount,
		PaymentStatus:      string(order.PaymentStatus),
		OrderStatus:        string(order.OrderStatus),
		PaymentRef:         order.PaymentRef,
		CreatedAt:          order.CreatedAt,
		UpdatedAt:          order.UpdatedAt,
		Items:              items,
		ItemsCount:         order.ItemsCount,
	}
}

// UpdateStatusRequest is the admin fulfillment transition payload.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
