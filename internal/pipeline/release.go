package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	md "github.com/nao1215/markdown"

	"github.com/vadimmalykhin/binance-icons-toolkit/internal/atomicfile"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/assets"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/constants"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/errors"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/logging"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/markdown"
)

// ReleaseNotesFile is written into the release directory.
const ReleaseNotesFile = "RELEASE_NOTES.md"

// ReleaseResult summarizes a release.
type ReleaseResult struct {
	Dir   string                                       `json:"dir" yaml:"dir"`
	Files int                                          `json:"files" yaml:"files"`
	Added map[assets.Category][]assets.RepositoryAsset `json:"added" yaml:"added"`
}

// Release empties the release directory and copies the generated icons,
// manifest and markdown into it. ETF icons are released next to the crypto
// icons.
func (b *Builder) Release(ctx context.Context) (*ReleaseResult, error) {
	generated, err := b.store.LoadGenerated()
	if err != nil {
		return nil, err
	}
	for _, name := range []string{ReadmeTemplate, PreviewTemplate} {
		path := b.layout.GeneratedFile(name + ".md")
		if _, err := os.Stat(path); err != nil {
			return nil, errors.NewDependencyError(name+".md", path, "Run 'bit build markdown' first.", err)
		}
	}

	dir := b.layout.Release()
	if err := atomicfile.EmptyDir(dir); err != nil {
		return nil, err
	}

	res := &ReleaseResult{Dir: dir}
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

	for _, name := range []string{"manifest.json", ReadmeTemplate + ".md", PreviewTemplate + ".md"} {
		if err := atomicfile.CopyFile(b.layout.GeneratedFile(name), filepath.Join(dir, name), constants.FilePermissions); err != nil {
			return nil, err
		}
		res.Files++
	}

	published, err := b.store.LoadPublished()
	if err != nil {
		if !errors.IsMissingDependency(err) {
			return nil, err
		}
		logging.FromContext(ctx).Warn().Err(err).Msg("No published manifest, every icon is listed as added")
		published = assets.Manifest{}.Normalized()
	}
	res.Added = assets.Added(published, generated)

	notes, err := b.releaseNotes(generated, res.Added)
	if err != nil {
		return nil, err
	}
	if err := atomicfile.WriteFile(filepath.Join(dir, ReleaseNotesFile), notes, constants.FilePermissions); err != nil {
		return nil, err
	}
	res.Files++
	return res, nil
}

func (b *Builder) releaseNotes(m assets.Manifest, added map[assets.Category][]assets.RepositoryAsset) ([]byte, error) {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Binance Icons " + b.now().Format("2006-01-02"))
	doc.PlainTextf("%d icons in total.", m.Len()).LF()

	rows := make([][]string, 0, 3)
	for _, c := range assets.Categories() {
		rows = append(rows, []string{c.Title(), strconv.Itoa(len(m.Category(c))), strconv.Itoa(len(added[c]))})
	}
	doc.Table(md.TableSet{
		Header: []string{"Category", "Icons", "Added"},
		Rows:   rows,
	})

	for _, c := range assets.Categories() {
		list := added[c]
		if len(list) == 0 {
			continue
		}
		doc.H2("New " + c.Title() + " icons")
		items := make([]string, 0, len(list))
		for _, a := range list {
			items = append(items, fmt.Sprintf("%s %s", md.Code(a.Symbol), a.Name))
		}
		doc.BulletList(items...)
	}

	if err := doc.Build(); err != nil {
		return nil, errors.WrapIO("write", ReleaseNotesFile, err)
	}
	return buf.Bytes(), nil
}
