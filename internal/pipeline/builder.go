// Package pipeline runs the fetch, build, release and todo steps against
// the application directory.
package pipeline

import (
	"context"
	"os"

	"github.com/agentstation/utc"

	"github.com/vadimmalykhin/binance-icons-toolkit/internal/atomicfile"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/exchange"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/icons"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/manifest"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/paths"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/assets"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/constants"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/errors"
)

// AssetSource supplies the exchange asset feed.
type AssetSource interface {
	FetchAll(ctx context.Context) (*exchange.Snapshot, error)
}

// Optimizer optimizes a directory of source icons.
type Optimizer interface {
	OptimizeDir(ctx context.Context, srcDir, dstDir string, prefix icons.PrefixFunc) (int, error)
}

// Builder runs pipeline steps for one application directory.
type Builder struct {
	layout         paths.Layout
	store          *manifest.Store
	optimizer      Optimizer
	workers        int
	baseURL        string
	packageVersion string
	now            func() utc.Time
}

// Option configures a Builder.
type Option func(*Builder)

// WithStore shares a manifest store between builders of the same layout.
func WithStore(s *manifest.Store) Option {
	return func(b *Builder) {
		if s != nil {
			b.store = s
		}
	}
}

// WithOptimizer sets the icon optimizer used by BuildIcons.
func WithOptimizer(o Optimizer) Option {
	return func(b *Builder) { b.optimizer = o }
}

// WithWorkers caps concurrent icon checks.
func WithWorkers(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.workers = min(n, constants.MaxWorkers)
		}
	}
}

// WithBaseURL sets the icon URL root embedded in markdown tables.
func WithBaseURL(url string) Option {
	return func(b *Builder) { b.baseURL = url }
}

// WithPackageVersion pins the package version. Empty derives it from the date.
func WithPackageVersion(v string) Option {
	return func(b *Builder) { b.packageVersion = v }
}

// WithClock replaces the clock.
func WithClock(now func() utc.Time) Option {
	return func(b *Builder) { b.now = now }
}

// New returns a Builder for layout.
func New(layout paths.Layout, opts ...Option) *Builder {
	b := &Builder{
		layout:  layout,
		store:   NewStore(layout),
		workers: constants.DefaultWorkers,
		baseURL: constants.IconsBaseURL,
		now:     utc.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewStore returns the manifest store of layout.
func NewStore(layout paths.Layout) *manifest.Store {
	return &manifest.Store{
		Published: layout.PublishedManifest(),
		Output:    layout.Manifest(),
		Readable:  layout.ReadableManifest(),
	}
}

// Layout returns the directory layout.
func (b *Builder) Layout() paths.Layout {
	return b.layout
}

// Store returns the manifest store.
func (b *Builder) Store() *manifest.Store {
	return b.store
}

// iconDir returns the generated icon directory of c. A missing directory
// means the icons phase never ran for c.
func (b *Builder) iconDir(c assets.Category) (string, error) {
	dir := b.layout.Icons(c)
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewDependencyError(c.String()+" icons", dir, "Run 'bit build icons' first.", err)
		}
		return "", errors.WrapIO("stat", dir, err)
	}
	if !info.IsDir() {
		return "", errors.NewDependencyError(c.String()+" icons", dir, "Run 'bit build icons' first.", nil)
	}
	return dir, nil
}

// readCategory reads the intermediate file of c written by Fetch.
func (b *Builder) readCategory(c assets.Category) ([]assets.ClassifiedAsset, error) {
	path := b.layout.CategoryFile(c)
	if _, err := os.Stat(path); err != nil {
		return nil, errors.NewDependencyError(c.String()+" assets file", path, "Run 'bit fetch' first.", err)
	}
	var list []assets.ClassifiedAsset
	if err := atomicfile.ReadJSON(path, &list); err != nil {
		return nil, err
	}
	for i := range list {
		list[i].Category = c
	}
	return list, nil
}

// readNames reads the name index written by Fetch.
func (b *Builder) readNames() (assets.NameIndex, error) {
	path := b.layout.NamesFile()
	if _, err := os.Stat(path); err != nil {
		return nil, errors.NewDependencyError("names file", path, "Run 'bit fetch' first.", err)
	}
	names := assets.NameIndex{}
	if err := atomicfile.ReadJSON(path, &names); err != nil {
		return nil, err
	}
	return names, nil
}
