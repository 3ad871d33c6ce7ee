package di

import (
	"go.uber.org/fx"

	"github.com/boutiq/storefront/internal/adapter/mail"
	"github.com/boutiq/storefront/internal/adapter/stripegw"
	"github.com/boutiq/storefront/internal/app"
	"github.com/boutiq/storefront/internal/config"
	"github.com/boutiq/storefront/internal/logger"
	"github.com/boutiq/storefront/internal/pkg/auth"
	"github.com/boutiq/storefront/internal/server/http/handlers"
	"github.com/boutiq/storefront/internal/server/http/router"
	"github.com/boutiq/storefront/internal/storage/postgres"
	"github.com/boutiq/storefront/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		stripegw.Module,
		mail.Module,
		usecase.Module,
		fx.Provide(func(f *app.CommerceFacade) handlers.CommerceFacade { return f }),
		fx.Provide(func(s *postgres.Storage) handlers.HealthChecker { return s }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
