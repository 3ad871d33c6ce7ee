package mail

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	gomail "github.com/wneessen/go-mail"

	"github.com/boutiq/storefront/internal/domain/model"
)

// Mailer sends order notifications over SMTP.
type Mailer struct {
	client    *gomail.Client
	from      string
	adminAddr string
	logger    *slog.Logger
}

// New creates a Mailer connected to the given SMTP endpoint.
func New(host string, port int, username, password, from, adminAddr string, logger *slog.Logger) (*Mailer, error) {
	opts := []gomail.Option{
		gomail.WithPort(port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(username),
			gomail.WithPassword(password),
		)
	}

	client, err := gomail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create mail client: %w", err)
	}

	return &Mailer{client: client, from: from, adminAddr: adminAddr, logger: logger}, nil
}

// NotifyCustomerOrderConfirmed sends the order confirmation to the buyer.
func (m *Mailer) NotifyCustomerOrderConfirmed(ctx context.Context, order *model.Order) error {
	subject := fmt.Sprintf("Order confirmation %s", order.OrderNumber)
	return m.send(ctx, order.CustomerEmail, subject, customerBody(order))
}

// NotifyAdminNewOrder alerts the back office about a paid order.
func (m *Mailer) NotifyAdminNewOrder(ctx context.Context, order *model.Order) error {
	subject := fmt.Sprintf("New order %s", order.OrderNumber)
	return m.send(ctx, m.adminAddr, subject, adminBody(order))
}

func (m *Mailer) send(ctx context.Context, to, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	m.logger.Info("notification sent", slog.String("to", to), slog.String("subject", subject))
	return nil
}

func itemLines(order *model.Order) string {
	lines := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, fmt.Sprintf("- %s x%d = %s€", item.ProductName, item.Quantity, item.Subtotal.StringFixed(2)))
	}
	return strings.Join(lines, "\n")
}

func shippingBlock(order *model.Order) string {
	return fmt.Sprintf("%s\n%s %s\n%s",
		order.ShippingAddress, order.ShippingPostalCode, order.ShippingCity, order.ShippingCountry)
}

func customerBody(order *model.Order) string {
	return fmt.Sprintf(`Hello %s,

Your order %s has been confirmed and paid.

Order details:
%s

Total: %s€

Shipping address:
%s

Thank you for your trust!

The store team
`, order.CustomerName, order.OrderNumber, itemLines(order), order.TotalAmount.StringFixed(2), shippingBlock(order))
}

func adminBody(order *model.Order) string {
	phone := order.CustomerPhone
	if phone == "" {
		phone = "Not provided"
	}
	paymentRef := "Pending"
	if order.PaymentRef != nil && *order.PaymentRef != "" {
		paymentRef = *order.PaymentRef
	}
	return fmt.Sprintf(`New order received!

Order number: %s
Customer: %s
Email: %s
Phone: %s

Items:
%s

Total: %s€

Shipping address:
%s

Payment status: %s
Payment ref: %s
`, order.OrderNumber, order.CustomerName, order.CustomerEmail, phone,
		itemLines(order), order.TotalAmount.StringFixed(2), shippingBlock(order),
		order.PaymentStatus, paymentRef)
}
