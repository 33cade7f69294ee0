package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/dispatch/internal/config"
	"github.com/polkiloo/dispatch/internal/domain/repository"
)

// Module wires PostgreSQL storage as the repository factory and transactor.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.Factory { return s },
		func(s *Storage) repository.Transactor { return s },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Config.MaxConns, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("closing database pool")
			storage.Close()
			return nil
		},
	})
}
