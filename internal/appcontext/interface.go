// Package appcontext defines what commands need from the application.
// cmd/bit/app implements it; tests use Mock.
package appcontext

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/vadimmalykhin/binance-icons-toolkit/internal/cmd/prompt"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/deps"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/exchange"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/paths"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/pipeline"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/repository"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/settings"
)

// Exchange is the part of the exchange client commands use.
type Exchange interface {
	FetchAll(ctx context.Context) (*exchange.Snapshot, error)
	FetchRestrictions(ctx context.Context) (*exchange.Restrictions, error)
}

// Cloner clones a branch of the icons repository.
type Cloner interface {
	Clone(ctx context.Context, dir, branch string, opts repository.CloneOptions) (*repository.Result, error)
}

// Interface is the application context handed to every command.
type Interface interface {
	// Logger returns the configured logger.
	Logger() *zerolog.Logger

	// OutputFormat returns the --format value (table, json, yaml) or "".
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Layout returns the application directory layout.
	Layout() paths.Layout

	// Settings opens the operator settings file.
	Settings() (*settings.Store, error)

	// Exchange returns a client authenticated with key and secret.
	Exchange(key, secret string) (Exchange, error)

	// Cloner returns the repository cloner.
	Cloner() Cloner

	// Dependencies lists the external tools bit shells out to.
	Dependencies() []deps.Dependency

	// Optimizer checks for svgo and returns the icon optimizer.
	Optimizer(ctx context.Context) (pipeline.Optimizer, error)

	// Builder returns a pipeline builder configured from the app config.
	Builder(opts ...pipeline.Option) *pipeline.Builder

	// Prompter returns the interactive prompter.
	Prompter() prompt.Prompter
}
