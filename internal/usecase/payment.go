package usecase

import (
	"context"
	"log/slog"

	"github.com/boutiq/storefront/internal/domain/model"
	"github.com/boutiq/storefront/internal/domain/repository"
)

// PaymentGateway abstracts the external payment provider.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, order *model.Order) (*model.PaymentSession, error)
	VerifyPayment(ctx context.Context, sessionID string) (*model.PaymentConfirmation, error)
	ParseWebhookEvent(payload []byte, signature string) (*model.PaymentEvent, error)
}

// Notifier dispatches order notifications. Failures are logged by the
// caller and never fail the reconciliation.
type Notifier interface {
	NotifyCustomerOrderConfirmed(ctx context.Context, order *model.Order) error
	NotifyAdminNewOrder(ctx context.Context, order *model.Order) error
}

// PaymentUseCase reconciles gateway payment outcomes with order state.
type PaymentUseCase struct {
	orders   repository.OrderRepository
	gateway  PaymentGateway
	notifier Notifier
	logger   *slog.Logger
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(orders repository.OrderRepository, gateway PaymentGateway, notifier Notifier, logger *slog.Logger) *PaymentUseCase {
	return &PaymentUseCase{orders: orders, gateway: gateway, notifier: notifier, logger: logger}
}

// CreateSession opens a provider checkout session for a freshly assembled order.
func (u *PaymentUseCase) CreateSession(ctx context.Context, order *model.Order) (*model.PaymentSession, error) {
	return u.gateway.CreateCheckoutSession(ctx, order)
}

// Verify performs the synchronous post-redirect check. A confirmed payment
// goes through the same markPaid path as the webhook, but without
// notifications: those are reserved for the webhook so the two converging
// paths cannot double-send.
func (u *PaymentUseCase) Verify(ctx context.Context, sessionID string) (*model.Order, bool, error) {
	confirmation, err := u.gateway.VerifyPayment(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}

	if !confirmation.Paid {
		return nil, false, nil
	}

	order, err := u.markPaid(ctx, confirmation.OrderNumber, confirmation.PaymentRef, false)
	if err != nil {
		return nil, false, err
	}
	return order, true, nil
}

// HandleWebhook verifies and applies an asynchronous provider event. A
// signature failure is returned to the caller (the provider must see a 4xx);
// every other processing failure is logged and swallowed so the provider
// gets its acknowledgement and stops redelivering.
func (u *PaymentUseCase) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := u.gateway.ParseWebhookEvent(payload, signature)
	if err != nil {
		return err
	}

	if !event.Completed {
		return nil
	}

	if _, err := u.markPaid(ctx, event.OrderNumber, event.PaymentRef, true); err != nil {
		u.logger.Error("webhook reconciliation failed",
			slog.String("order_number", event.OrderNumber),
			slog.String("error", err.Error()),
		)
	}
	return nil
}

// markPaid is the single point of truth for the pending->paid transition.
// Notifications fire only when this call actually applied the transition,
// which makes redelivered events no-ops.
func (u *PaymentUseCase) markPaid(ctx context.Context, orderNumber, paymentRef string, notify bool) (*model.Order, error) {
	order, applied, err := u.orders.MarkPaid(ctx, orderNumber, paymentRef)
	if err != nil {
		return nil, err
	}

	if !applied {
		u.logger.Info("payment confirmation redelivered", slog.String("order_number", orderNumber))
		return order, nil
	}

	if notify {
		if err := u.notifier.NotifyCustomerOrderConfirmed(ctx, order); err != nil {
			u.logger.Error("customer notification failed",
				slog.String("order_number", orderNumber),
				slog.String("error", err.Error()),
			)
		}
		if err := u.notifier.NotifyAdminNewOrder(ctx, order); err != nil {
			u.logger.Error("admin notification failed",
				slog.String("order_number", orderNumber),
				slog.String("error", err.Error()),
			)
		}
	}

	return order, nil
}
