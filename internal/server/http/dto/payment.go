package dto

// CheckoutResponse points the storefront at the provider checkout page.
type CheckoutResponse struct {
	SessionID   string `json:"sessionId"`
	URL         string `json:"url"`
	OrderNumber string `json:"order_number"`
}

// VerifyResponse reports the synchronous post-redirect payment check.
type VerifyResponse struct {
	Success bool           `json:"success"`
	Order   *OrderResponse `json:"order,omitempty"`
	Message string         `json:"message,omitempty"`
}

// WebhookResponse acknowledges webhook receipt.
type WebhookResponse struct {
	Received bool `json:"received"`
}
