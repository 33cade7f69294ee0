package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/dispatch/internal/app"
	"github.com/polkiloo/dispatch/internal/config"
	"github.com/polkiloo/dispatch/internal/logger"
	"github.com/polkiloo/dispatch/internal/server/http/handlers"
	"github.com/polkiloo/dispatch/internal/server/http/router"
	"github.com/polkiloo/dispatch/internal/storage/postgres"
	"github.com/polkiloo/dispatch/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		postgres.Module,
		usecase.Module,
		fx.Provide(
			func(s *postgres.Storage) app.HealthChecker { return s },
			func(f *app.DispatchFacade) handlers.DispatchFacade { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
