package appcontext

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/vadimmalykhin/binance-icons-toolkit/internal/cmd/prompt"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/deps"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/paths"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/pipeline"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/settings"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/errors"
)

// Mock implements Interface for tests. Nil function fields fall back to
// defaults rooted at LayoutRoot.
type Mock struct {
	LayoutRoot string
	Format     string

	LoggerFunc    func() *zerolog.Logger
	ExchangeFunc  func(key, secret string) (Exchange, error)
	ClonerFunc    func() Cloner
	OptimizerFunc func(ctx context.Context) (pipeline.Optimizer, error)
	PrompterFunc  func() prompt.Prompter

	// Deps is returned by Dependencies.
	Deps []deps.Dependency
}

var _ Interface = (*Mock)(nil)

// Logger returns the mock logger or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns Format.
func (m *Mock) OutputFormat() string { return m.Format }

// Version returns "dev".
func (m *Mock) Version() string { return "dev" }

// Layout returns the layout rooted at LayoutRoot.
func (m *Mock) Layout() paths.Layout { return paths.Layout{Root: m.LayoutRoot} }

// Settings opens the settings file of the layout.
func (m *Mock) Settings() (*settings.Store, error) {
	return settings.Open(m.Layout().Settings())
}

// Exchange returns the mock exchange or ErrAPIKeyRequired.
func (m *Mock) Exchange(key, secret string) (Exchange, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(key, secret)
	}
	return nil, errors.ErrAPIKeyRequired
}

// Cloner returns the mock cloner or nil.
func (m *Mock) Cloner() Cloner {
	if m.ClonerFunc != nil {
		return m.ClonerFunc()
	}
	return nil
}

// Dependencies returns Deps.
func (m *Mock) Dependencies() []deps.Dependency { return m.Deps }

// Optimizer returns the mock optimizer or a missing dependency error.
func (m *Mock) Optimizer(ctx context.Context) (pipeline.Optimizer, error) {
	if m.OptimizerFunc != nil {
		return m.OptimizerFunc(ctx)
	}
	return nil, errors.NewDependencyError("svgo", "", "", nil)
}

// Builder returns a builder for the layout.
func (m *Mock) Builder(opts ...pipeline.Option) *pipeline.Builder {
	return pipeline.New(m.Layout(), opts...)
}

// Prompter returns the mock prompter or an empty script.
func (m *Mock) Prompter() prompt.Prompter {
	if m.PrompterFunc != nil {
		return m.PrompterFunc()
	}
	return prompt.NewScripted()
}
