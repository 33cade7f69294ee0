package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/fx"
)

const stopTimeout = 15 * time.Second

func run(ctx context.Context, app *fx.App) {
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start dispatch: %v\n", err)
		os.Exit(1)
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop dispatch: %v\n", err)
		os.Exit(1)
	}
}
