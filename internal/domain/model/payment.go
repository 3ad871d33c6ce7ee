package model

// PaymentSession is the provider-side checkout session handle returned to
// the storefront. Sessions are owned by the gateway and never persisted.
type PaymentSession struct {
	SessionID string
	URL       string
}

// PaymentConfirmation is the provider's view of a session translated into
// domain vocabulary. OrderNumber round-trips through session metadata.
type PaymentConfirmation struct {
	Paid        bool
	OrderNumber string
	PaymentRef  string
}

// PaymentEvent is a signature-verified webhook event.
type PaymentEvent struct {
	Completed   bool
	OrderNumber string
	PaymentRef  string
}
