package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vadimmalykhin/binance-icons-toolkit/internal/atomicfile"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/icons"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/assets"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/constants"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/errors"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/logging"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/markdown"
)

// Phase is one build step.
type Phase string

// Phases.
const (
	PhaseIcons    Phase = "icons"
	PhaseManifest Phase = "manifest"
	PhaseMarkdown Phase = "markdown"
	PhasePackage  Phase = "package"
)

// Phases returns every phase in build order.
func Phases() []Phase {
	return []Phase{PhaseIcons, PhaseManifest, PhaseMarkdown, PhasePackage}
}

// ParsePhase parses a phase name. "npm" is accepted for the package phase.
func ParsePhase(s string) (Phase, error) {
	switch s {
	case "icons", "manifest", "markdown", "package":
		return Phase(s), nil
	case "npm":
		return PhasePackage, nil
	}
	return "", errors.NewValidationError("phase", s, "unknown build phase "+s)
}

// PhaseResult summarizes a finished phase.
type PhaseResult struct {
	Phase Phase
	Count int
}

// RunPhase runs a single phase.
func (b *Builder) RunPhase(ctx context.Context, p Phase) (PhaseResult, error) {
	res := PhaseResult{Phase: p}
	if err := ctx.Err(); err != nil {
		return res, err
	}
	ctx = logging.WithPhase(ctx, string(p))

	switch p {
	case PhaseIcons:
		counts, err := b.BuildIcons(ctx)
		for _, n := range counts {
			res.Count += n
		}
		return res, err
	case PhaseManifest:
		m, err := b.BuildManifest(ctx)
		res.Count = m.Len()
		return res, err
	case PhaseMarkdown:
		md, err := b.BuildMarkdown(ctx)
		if md != nil {
			res.Count = md.Rows
		}
		return res, err
	case PhasePackage:
		pkg, err := b.BuildPackage(ctx)
		if pkg != nil {
			res.Count = pkg.Files
		}
		return res, err
	}
	return res, errors.NewValidationError("phase", p, "unknown build phase")
}

// BuildAll runs every phase in order and stops at the first failure.
// Artifacts of completed phases are left as they are. done is called after
// each successful phase and may be nil.
func (b *Builder) BuildAll(ctx context.Context, done func(PhaseResult)) error {
	for _, p := range Phases() {
		res, err := b.RunPhase(ctx, p)
		if err != nil {
			return errors.WrapPhase(string(p), err)
		}
		if done != nil {
			done(res)
		}
	}
	return nil
}

// BuildIcons optimizes the source icons of every category into the
// generated directory. Crypto icons use their own name as id prefix.
func (b *Builder) BuildIcons(ctx context.Context) (map[assets.Category]int, error) {
	if b.optimizer == nil {
		return nil, errors.NewConfigError("build", "no icon optimizer configured", nil)
	}
	if err := b.layout.EnsureGenerated(); err != nil {
		return nil, err
	}

	counts := make(map[assets.Category]int, 3)
	for _, c := range assets.Categories() {
		prefix := icons.StaticPrefix(icons.DefaultPrefix)
		if c == assets.Crypto {
			prefix = icons.BaseNamePrefix
		}
		n, err := b.optimizer.OptimizeDir(ctx, b.layout.SourceIcons(c), b.layout.Icons(c), prefix)
		if err != nil {
			return counts, err
		}
		counts[c] = n
		logging.FromContext(ctx).Info().Str("category", c.String()).Int("count", n).Msg("Optimized icons")
	}
	return counts, nil
}

// BuildManifest merges the published manifest with every fetched asset that
// has a generated icon and writes manifest.json and manifest.readable.json.
func (b *Builder) BuildManifest(ctx context.Context) (assets.Manifest, error) {
	return b.store.Update(ctx, func(prior assets.Manifest) (assets.Manifest, error) {
		names, err := b.readNames()
		if err != nil {
			return assets.Manifest{}, err
		}

		var fresh assets.Classified
		for _, c := range assets.Categories() {
			list, err := b.readCategory(c)
			if err != nil {
				return assets.Manifest{}, err
			}
			dir, err := b.iconDir(c)
			if err != nil {
				return assets.Manifest{}, err
			}
			present, err := icons.FilterPresent(ctx, dir, list, b.workers)
			if err != nil {
				return assets.Manifest{}, err
			}
			switch c {
			case assets.Crypto:
				fresh.Crypto = present
			case assets.CryptoETF:
				fresh.ETF = present
			case assets.FiatCurrency:
				fresh.Currency = present
			}
			logging.FromContext(ctx).Debug().
				Str("category", c.String()).
				Int("fetched", len(list)).
				Int("with_icon", len(present)).
				Msg("Filtered assets by icon")
		}

		return assets.Merge(prior, fresh, names), nil
	})
}

// Template names.
const (
	ReadmeTemplate  = "README"
	PreviewTemplate = "PREVIEW"
)

// MarkdownResult summarizes BuildMarkdown.
type MarkdownResult struct {
	Tables markdown.Tables
	// Rows is the number of table body rows found in PREVIEW.md.
	Rows int
}

// BuildMarkdown renders the generated manifest into README.md and
// PREVIEW.md from the templates of the sources branch.
func (b *Builder) BuildMarkdown(ctx context.Context) (*MarkdownResult, error) {
	m, err := b.store.LoadGenerated()
	if err != nil {
		return nil, err
	}
	tables := markdown.Render(m, b.baseURL)
	res := &MarkdownResult{Tables: tables}

	for _, name := range []string{ReadmeTemplate, PreviewTemplate} {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		src := b.layout.Template(name)
		tpl, err := os.ReadFile(src)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.NewDependencyError(name+" template", src, "Run 'bit clone' first.", err)
			}
			return nil, errors.WrapIO("read", src, err)
		}

		out := []byte(markdown.Substitute(string(tpl), tables))
		if err := atomicfile.WriteFile(b.layout.GeneratedFile(name+".md"), out, constants.SecureFilePermissions); err != nil {
			return nil, err
		}

		if name == PreviewTemplate {
			for _, n := range markdown.CountTableRows(out) {
				res.Rows += n
			}
			if res.Rows != m.Len() {
				logging.FromContext(ctx).Warn().
					Int("rows", res.Rows).
					Int("assets", m.Len()).
					Msg("PREVIEW.md table rows do not match the manifest")
			}
		}
	}
	return res, nil
}

// PackageResult summarizes BuildPackage.
type PackageResult struct {
	Dir     string
	Version string
	Files   int
}

type packageJSON struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	License     string   `json:"license"`
	Repository  string   `json:"repository"`
	Keywords    []string `json:"keywords"`
	Files       []string `json:"files"`
	Main        string   `json:"main"`
}

// BuildPackage assembles the npm package directory from the generated
// manifest and icons.
func (b *Builder) BuildPackage(ctx context.Context) (*PackageResult, error) {
	m, err := b.store.LoadGenerated()
	if err != nil {
		return nil, err
	}

	dir := b.layout.Package()
	if err := atomicfile.EmptyDir(dir); err != nil {
		return nil, err
	}

	version := b.packageVersion
	if version == "" {
		t := b.now()
		version = fmt.Sprintf("%d.%d.%d", t.Year(), int(t.Month()), t.Day())
	}

	res := &PackageResult{Dir: dir, Version: version}
	for _, c := range assets.Categories() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := atomicfile.CopyDir(b.layout.Icons(c), filepath.Join(dir, markdown.Segment(c)), constants.FilePermissions)
		if err != nil {
			return nil, err
		}
		res.Files += n
	}

	if err := atomicfile.CopyFile(b.layout.Manifest(), filepath.Join(dir, "manifest.json"), constants.FilePermissions); err != nil {
		return nil, err
	}
	res.Files++

	pkg := packageJSON{
		Name:        constants.PackageName,
		Version:     version,
		Description: fmt.Sprintf("%d crypto, %d etf and %d currency icons of the Binance exchange", len(m.Crypto), len(m.ETF), len(m.Currency)),
		License:     "MIT",
		Repository:  constants.RepositoryURL,
		Keywords:    []string{"binance", "crypto", "icons", "svg"},
		Files:       []string{"crypto", "currency", "manifest.json"},
		Main:        "manifest.json",
	}
	if err := atomicfile.WriteJSON(filepath.Join(dir, "package.json"), pkg, "  ", constants.FilePermissions); err != nil {
		return nil, err
	}
	res.Files++
	return res, nil
}
