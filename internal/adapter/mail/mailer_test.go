package mail

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/boutiq/storefront/internal/domain/model"
)

func sampleOrder() *model.Order {
	price, _ := decimal.NewFromString("99.99")
	subtotal, _ := decimal.NewFromString("199.98")
	ref := "pi_789"
	return &model.Order{
		OrderNumber:        "ORD-20260830-001",
		CustomerEmail:      "claire@example.com",
		CustomerName:       "Claire Dupont",
		ShippingAddress:    "12 rue de la Paix",
		ShippingCity:       "Paris",
		ShippingPostalCode: "75002",
		ShippingCountry:    "France",
		TotalAmount:        subtotal,
		PaymentStatus:      model.PaymentStatusPaid,
		PaymentRef:         &ref,
		Items: []model.OrderItem{
			{ProductName: "Casque audio", Quantity: 2, UnitPrice: price, Subtotal: subtotal},
		},
	}
}

func TestCustomerBody(t *testing.T) {
	body := customerBody(sampleOrder())
	for _, want := range []string{
		"Hello Claire Dupont",
		"ORD-20260830-001",
		"- Casque audio x2 = 199.98€",
		"Total: 199.98€",
		"12 rue de la Paix",
		"75002 Paris",
		"France",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("customer body missing %q:\n%s", want, body)
		}
	}
}

func TestAdminBody(t *testing.T) {
	body := adminBody(sampleOrder())
	for _, want := range []string{
		"ORD-20260830-001",
		"Claire Dupont",
		"claire@example.com",
		"Phone: Not provided",
		"Payment status: paid",
		"Payment ref: pi_789",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("admin body missing %q:\n%s", want, body)
		}
	}
}

func TestAdminBodyPendingRef(t *testing.T) {
	order := sampleOrder()
	order.PaymentRef = nil
	if !strings.Contains(adminBody(order), "Payment ref: Pending") {
		t.Fatal("expected pending payment ref placeholder")
	}
}
