// Package app wires configuration, logging and the pipeline collaborators
// into the bit command tree.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/vadimmalykhin/binance-icons-toolkit/internal/appcontext"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/cmd/prompt"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/deps"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/exchange"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/icons"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/manifest"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/paths"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/pipeline"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/repository"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/settings"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/errors"
)

// App holds the dependencies of one bit invocation.
type App struct {
	version string
	commit  string
	date    string

	config *Config
	logger *zerolog.Logger
	layout paths.Layout
	// builders of one layout share the manifest lock
	store *manifest.Store

	prompter prompt.Prompter

	// exchange clients keep a response cache, so one is kept per key
	mu       sync.Mutex
	exchange *exchange.Client
	keyUsed  string
}

var _ appcontext.Interface = (*App)(nil)

// New creates an App from the default configuration sources.
func New(version, commit, date string, opts ...Option) (*App, error) {
	a := &App{
		version: version,
		commit:  commit,
		date:    date,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, err
	}
	a.config = config

	logger := NewLogger(config)
	a.logger = &logger

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	if err := a.resolveLayout(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *App) resolveLayout() error {
	layout, err := paths.New(a.config.Home)
	if err != nil {
		return err
	}
	a.layout = layout
	a.store = pipeline.NewStore(layout)
	return nil
}

// Version returns the version string.
func (a *App) Version() string { return a.version }

// Commit returns the git commit of the build.
func (a *App) Commit() string { return a.commit }

// Date returns the build date.
func (a *App) Date() string { return a.date }

// Config returns the application configuration.
func (a *App) Config() *Config { return a.config }

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger { return a.logger }

// OutputFormat returns the --format value.
func (a *App) OutputFormat() string { return a.config.Format }

// Layout returns the application directory layout.
func (a *App) Layout() paths.Layout { return a.layout }

// Settings opens the settings file.
func (a *App) Settings() (*settings.Store, error) {
	return settings.Open(a.layout.Settings())
}

// Exchange returns a client for key and secret. The client of the last
// key is reused so its response cache survives menu round trips.
func (a *App) Exchange(key, secret string) (appcontext.Exchange, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.exchange != nil && a.keyUsed == key+":"+secret {
		return a.exchange, nil
	}
	c, err := exchange.New(a.config.ExchangeURL, key, secret)
	if err != nil {
		return nil, err
	}
	a.exchange = c
	a.keyUsed = key + ":" + secret
	return c, nil
}

// Cloner returns the repository cloner.
func (a *App) Cloner() appcontext.Cloner {
	return repository.New(a.config.RepositoryURL)
}

// Dependencies returns svgo, honoring the configured executable.
func (a *App) Dependencies() []deps.Dependency {
	return []deps.Dependency{a.svgo()}
}

func (a *App) svgo() deps.Dependency {
	dep := deps.SVGO
	if a.config.SVGO != "" {
		dep.CheckCommands = []string{a.config.SVGO}
	}
	return dep
}

// Optimizer locates svgo and returns the icon optimizer.
func (a *App) Optimizer(ctx context.Context) (pipeline.Optimizer, error) {
	path, err := deps.Require(ctx, a.svgo())
	if err != nil {
		return nil, err
	}
	a.logger.Debug().Str("svgo", path).Msg("Using svgo")
	return icons.NewOptimizer(path, a.config.Workers), nil
}

// Builder returns a pipeline builder for the configured layout.
func (a *App) Builder(opts ...pipeline.Option) *pipeline.Builder {
	base := []pipeline.Option{
		pipeline.WithStore(a.store),
		pipeline.WithWorkers(a.config.Workers),
		pipeline.WithBaseURL(a.config.IconsBaseURL),
		pipeline.WithPackageVersion(a.config.PackageVersion),
	}
	return pipeline.New(a.layout, append(base, opts...)...)
}

// Prompter returns the terminal prompter unless one was injected.
func (a *App) Prompter() prompt.Prompter {
	if a.prompter != nil {
		return a.prompter
	}
	return prompt.Stdio()
}

// Shutdown releases the exchange client.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.exchange != nil {
		a.exchange.Invalidate()
		a.exchange = nil
	}
	return nil
}

// Option configures an App.
type Option func(*App) error

// WithConfig replaces the loaded configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return errors.NewConfigError("app", "nil config", nil)
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithPrompter sets the prompter.
func WithPrompter(p prompt.Prompter) Option {
	return func(a *App) error {
		a.prompter = p
		return nil
	}
}
