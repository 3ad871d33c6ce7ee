package mail

import (
	"context"
	"log/slog"

	"github.com/boutiq/storefront/internal/domain/model"
)

// LogNotifier stands in for the SMTP mailer when no mail host is
// configured; it records what would have been sent.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) NotifyCustomerOrderConfirmed(_ context.Context, order *model.Order) error {
	n.logger.Info("mail disabled, skipping customer confirmation",
		slog.String("order_number", order.OrderNumber),
		slog.String("customer_email", order.CustomerEmail),
	)
	return nil
}

func (n *LogNotifier) NotifyAdminNewOrder(_ context.Context, order *model.Order) error {
	n.logger.Info("mail disabled, skipping admin notification",
		slog.String("order_number", order.OrderNumber),
	)
	return nil
}
