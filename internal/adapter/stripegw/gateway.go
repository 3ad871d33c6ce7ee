package stripegw

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"github.com/stripe/stripe-go/v82/webhook"

	domainErrors "github.com/boutiq/storefront/internal/domain/errors"
	"github.com/boutiq/storefront/internal/domain/model"
)

const (
	currency       = "eur"
	metadataKey    = "order_number"
	successURLPath = "/success?session_id={CHECKOUT_SESSION_ID}"
	cancelURLPath  = "/cancel"
)

// Gateway wraps the Stripe API for checkout session management and webhook
// verification. Provider failures are reported as gateway errors, never as
// a declined payment: Stripe reports declines through session status.
type Gateway struct {
	api           *client.API
	webhookSecret string
	frontendURL   string
	logger        *slog.Logger
}

// New creates a Gateway bound to the given API keys and storefront URL.
func New(secretKey, webhookSecret, frontendURL string, logger *slog.Logger) *Gateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &Gateway{
		api:           api,
		webhookSecret: webhookSecret,
		frontendURL:   frontendURL,
		logger:        logger,
	}
}

// CreateCheckoutSession opens a provider session with one line item per
// order item. The order number travels in session metadata; it is the only
// correlation key back to the domain order.
func (g *Gateway) CreateCheckoutSession(ctx context.Context, order *model.Order) (*model.PaymentSession, error) {
	params := &stripe.CheckoutSessionParams{
		Params:             stripe.Params{Context: ctx},
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:          buildLineItems(order.Items),
		SuccessURL:         stripe.String(g.frontendURL + successURLPath),
		CancelURL:          stripe.String(g.frontendURL + cancelURLPath),
		CustomerEmail:      stripe.String(order.CustomerEmail),
	}
	params.AddMetadata(metadataKey, order.OrderNumber)

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		g.logger.Error("create checkout session failed",
			slog.String("order_number", order.OrderNumber),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("create checkout session: %w", domainErrors.ErrGateway)
	}

	return &model.PaymentSession{SessionID: sess.ID, URL: sess.URL}, nil
}

// VerifyPayment retrieves session state for the synchronous post-redirect check.
func (g *Gateway) VerifyPayment(ctx context.Context, sessionID string) (*model.PaymentConfirmation, error) {
	params := &stripe.CheckoutSessionParams{Params: stripe.Params{Context: ctx}}
	sess, err := g.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		g.logger.Error("retrieve checkout session failed",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("retrieve checkout session: %w", domainErrors.ErrGateway)
	}

	return sessionConfirmation(sess), nil
}

// ParseWebhookEvent verifies the provider signature and maps the event into
// domain vocabulary. Unrelated event types come back with Completed=false.
func (g *Gateway) ParseWebhookEvent(payload []byte, signature string) (*model.PaymentEvent, error) {
	// The account's pinned API version may differ from the SDK's; the
	// fields read below are stable across versions.
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("verify webhook signature: %w", err)
	}

	if event.Type != stripe.EventTypeCheckoutSessionCompleted {
		return &model.PaymentEvent{}, nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, fmt.Errorf("decode webhook session: %w", err)
	}

	return &model.PaymentEvent{
		Completed:   true,
		OrderNumber: sess.Metadata[metadataKey],
		PaymentRef:  paymentRef(&sess),
	}, nil
}

func buildLineItems(items []model.OrderItem) []*stripe.CheckoutSessionLineItemParams {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.ProductName),
				},
				UnitAmount: stripe.Int64(minorUnits(item.UnitPrice)),
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}
	return lineItems
}

// minorUnits converts a decimal price into rounded minor currency units.
func minorUnits(price decimal.Decimal) int64 {
	return price.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func sessionConfirmation(sess *stripe.CheckoutSession) *model.PaymentConfirmation {
	return &model.PaymentConfirmation{
		Paid:        sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		OrderNumber: sess.Metadata[metadataKey],
		PaymentRef:  paymentRef(sess),
	}
}

func paymentRef(sess *stripe.CheckoutSession) string {
	if sess.PaymentIntent != nil {
		return sess.PaymentIntent.ID
	}
	return ""
}
