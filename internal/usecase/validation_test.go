package usecase

import (
	"errors"
	"testing"

	domainErrors "github.com/boutiq/storefront/internal/domain/errors"
	"github.com/boutiq/storefront/internal/domain/model"
)

func validOrderRequest() model.NewOrder {
	return model.NewOrder{
		CustomerEmail: "buyer@example.com",
		CustomerName:  "Jean Martin",
		Items:         []model.NewOrderItem{{ProductID: 1, Quantity: 2}},
	}
}

func assertValidationMessage(t *testing.T, err error, want string) {
	t.Helper()
	var validationErr *domainErrors.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if validationErr.Message != want {
		t.Fatalf("expected message %q, got %q", want, validationErr.Message)
	}
}

func TestValidateNewOrderAccepts(t *testing.T) {
	req, err := ValidateNewOrder(validOrderRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.ShippingCountry != "France" {
		t.Fatalf("expected default country, got %q", req.ShippingCountry)
	}
}

func TestValidateNewOrderTrimsFields(t *testing.T) {
	req := validOrderRequest()
	req.CustomerEmail = "  buyer@example.com  "
	req.CustomerName = " Jean Martin "
	req.ShippingCity = " Lyon "

	out, err := ValidateNewOrder(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.CustomerEmail != "buyer@example.com" || out.CustomerName != "Jean Martin" || out.ShippingCity != "Lyon" {
		t.Fatalf("fields not trimmed: %+v", out)
	}
}

func TestValidateNewOrderRejectsEmail(t *testing.T) {
	for _, email := range []string{"", "plain", "a b@example.com", "no-at.example.com", "missing@tld"} {
		req := validOrderRequest()
		req.CustomerEmail = email
		_, err := ValidateNewOrder(req)
		assertValidationMessage(t, err, "Invalid email")
	}
}

func TestValidateNewOrderRejectsMissingName(t *testing.T) {
	req := validOrderRequest()
	req.CustomerName = "   "
	_, err := ValidateNewOrder(req)
	assertValidationMessage(t, err, "Name required")
}

func TestValidateNewOrderRejectsEmptyCart(t *testing.T) {
	req := validOrderRequest()
	req.Items = nil
	_, err := ValidateNewOrder(req)
	assertValidationMessage(t, err, "Empty cart")
}

func TestValidateNewOrderRejectsBadQuantity(t *testing.T) {
	for _, qty := range []int{0, -1} {
		req := validOrderRequest()
		req.Items = []model.NewOrderItem{{ProductID: 1, Quantity: qty}}
		_, err := ValidateNewOrder(req)
		assertValidationMessage(t, err, "Invalid quantity")
	}
}

func TestValidateNewOrderRuleOrder(t *testing.T) {
	// An invalid email reports before the empty cart does.
	req := model.NewOrder{CustomerEmail: "nope", CustomerName: ""}
	_, err := ValidateNewOrder(req)
	assertValidationMessage(t, err, "Invalid email")

	// A missing name reports before the empty cart does.
	req = model.NewOrder{CustomerEmail: "buyer@example.com"}
	_, err = ValidateNewOrder(req)
	assertValidationMessage(t, err, "Name required")
}

func TestValidateNewOrderKeepsProvidedCountry(t *testing.T) {
	req := validOrderRequest()
	req.ShippingCountry = "Belgium"
	out, err := ValidateNewOrder(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ShippingCountry != "Belgium" {
		t.Fatalf("expected provided country to stand, got %q", out.ShippingCountry)
	}
}
