package stripegw

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/boutiq/storefront/internal/config"
	"github.com/boutiq/storefront/internal/usecase"
)

// Module wires the Stripe gateway adapter.
var Module = fx.Options(
	fx.Provide(newGateway),
	fx.Provide(func(g *Gateway) usecase.PaymentGateway { return g }),
)

type gatewayParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newGateway(p gatewayParams) *Gateway {
	return New(p.Config.StripeSecretKey, p.Config.StripeWebhookSecret, p.Config.FrontendBaseURL, p.Logger)
}
