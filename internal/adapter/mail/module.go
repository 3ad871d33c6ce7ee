package mail

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/boutiq/storefront/internal/config"
	"github.com/boutiq/storefront/internal/usecase"
)

// Module wires the notification dispatcher. Without an SMTP host the
// dispatcher degrades to logging only.
var Module = fx.Provide(newNotifier)

type notifierParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newNotifier(p notifierParams) (usecase.Notifier, error) {
	if p.Config.SMTPHost == "" {
		p.Logger.Warn("no mail host configured, notifications will only be logged")
		return NewLogNotifier(p.Logger), nil
	}
	return New(
		p.Config.SMTPHost,
		p.Config.SMTPPort,
		p.Config.SMTPUsername,
		p.Config.SMTPPassword,
		p.Config.EmailFrom,
		p.Config.AdminEmail,
		p.Logger,
	)
}
