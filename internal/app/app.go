package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/dispatch/internal/config"
)

const (
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = time.Minute
)

// Module wires the dispatch facade, the HTTP server and its start/stop hooks.
var Module = fx.Options(
	fx.Provide(
		NewDispatchFacade,
		newHTTPServer,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:              p.Config.RunAddress,
		Handler:           p.Router,
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	}
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Config     *config.Config
	Health     HealthChecker
}

// registerLifecycle refuses to serve until the database answers a ping, so a
// misconfigured DSN fails the start instead of the first order request.
func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := p.Health.HealthCheck(ctx); err != nil {
				return fmt.Errorf("database not ready: %w", err)
			}

			p.Logger.Info("dispatch listening",
				slog.String("addr", p.Server.Addr),
				slog.Int("max_conns", int(p.Config.MaxConns)),
			)
			go serve(p.Server, p.Logger, p.Shutdowner)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			stopCtx, cancel := shutdownContext(ctx, p.Config.ShutdownTimeout)
			defer cancel()

			if err := p.Server.Shutdown(stopCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("shutdown http server: %w", err)
			}
			p.Logger.Info("dispatch stopped")
			return nil
		},
	})
}

func serve(server *http.Server, logger *slog.Logger, shutdowner fx.Shutdowner) {
	err := server.ListenAndServe()
	if err == nil || errors.Is(err, http.ErrServerClosed) {
		return
	}
	logger.Error("http server terminated", slog.Any("error", err))
	if err := shutdowner.Shutdown(fx.ExitCode(1)); err != nil {
		logger.Error("request shutdown", slog.Any("error", err))
	}
}

// shutdownContext keeps a caller deadline and otherwise bounds the stop by timeout.
func shutdownContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok || timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
