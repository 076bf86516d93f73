// Package main is the entry point of the bit CLI.
package main

import (
	"context"
	"os"

	"github.com/vadimmalykhin/binance-icons-toolkit/cmd/bit/app"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/constants"
)

// Version information populated by the release build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	application, err := app.New(version, commit, date)
	if err != nil {
		app.ExitOnError(err)
	}

	ctx, cancel := app.ContextWithSignals(context.Background())
	defer cancel()

	if err := application.Execute(ctx, os.Args[1:]); err != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer shutdownCancel()

		if shutdownErr := application.Shutdown(shutdownCtx); shutdownErr != nil {
			application.Logger().Error().Err(shutdownErr).Msg("Shutdown error during error handling")
		}
		app.ExitOnError(err)
	}
	_ = application.Shutdown(ctx)
}
