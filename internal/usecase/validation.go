package usecase

import (
	"regexp"
	"strings"

	domainErrors "github.com/boutiq/storefront/internal/domain/errors"
	"github.com/boutiq/storefront/internal/domain/model"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const defaultShippingCountry = "France"

// ValidateNewOrder trims all string fields and checks the proposed order,
// failing on the first violated rule: buyer email shape, buyer name, cart
// non-empty, every quantity a positive integer. Sanitization is whitespace
// trimming only; escaping is the renderer's concern.
func ValidateNewOrder(req model.NewOrder) (model.NewOrder, error) {
	req.CustomerEmail = strings.TrimSpace(req.CustomerEmail)
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerPhone = strings.TrimSpace(req.CustomerPhone)
	req.ShippingAddress = strings.TrimSpace(req.ShippingAddress)
	req.ShippingCity = strings.TrimSpace(req.ShippingCity)
	req.ShippingPostalCode = strings.TrimSpace(req.ShippingPostalCode)
	req.ShippingCountry = strings.TrimSpace(req.ShippingCountry)

	if !emailPattern.MatchString(req.CustomerEmail) {
		return req, domainErrors.NewValidation("Invalid email")
	}

	if req.CustomerName == "" {
		return req, domainErrors.NewValidation("Name required")
	}

	if len(req.Items) == 0 {
		return req, domainErrors.NewValidation("Empty cart")
	}

	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return req, domainErrors.NewValidation("Invalid quantity")
		}
	}

	if req.ShippingCountry == "" {
		req.ShippingCountry = defaultShippingCountry
	}

	return req, nil
}
