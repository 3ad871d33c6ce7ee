package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus describes the payment lifecycle of an order.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// OrderStatus describes the fulfillment lifecycle of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether the value is one of the five known statuses.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// orderTransitions encodes which fulfillment moves are legal.
// Delivered and cancelled are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// CanTransition reports whether an order may move between fulfillment statuses.
func CanTransition(from, to OrderStatus) bool {
	for _, allowed := range orderTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Order describes a customer purchase with shipping details and line items.
type Order struct {
	ID                 int64
	OrderNumber        string
	CustomerEmail      string
	CustomerName       string
	CustomerPhone      string
	ShippingAddress    string
	ShippingCity       string
	ShippingPostalCode string
	ShippingCountry    string
	TotalAmount        decimal.Decimal
	PaymentStatus      PaymentStatus
	OrderStatus        OrderStatus
	PaymentRef         *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Items              []OrderItem
	ItemsCount         int
}

// OrderItem is a product snapshot inside an order. Unit price is frozen at
// order time and never tracks later catalog changes.
type OrderItem struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// NewOrderItem is a requested cart line before validation and pricing.
type NewOrderItem struct {
	ProductID int64
	Quantity  int
}

// NewOrder is a proposed order as submitted by the storefront.
type NewOrder struct {
	CustomerEmail      string
	CustomerName       string
	CustomerPhone      string
	ShippingAddress    string
	ShippingCity       string
	ShippingPostalCode string
	ShippingCountry    string
	Items              []NewOrderItem
}
