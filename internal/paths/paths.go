// Package paths resolves the on-disk layout of the application directory.
//
//	~/.binance-icons-toolkit/
//	  bit.json            operator settings
//	  git/main/           published branch clone
//	  git/dev/            sources branch clone
//	  generated/          fetch and build output
//	  npm/                package assembly
//	  release/            release directory
package paths

import (
	"os"
	"path/filepath"

	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/assets"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/constants"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/errors"
)

// Layout is rooted at the application directory.
type Layout struct {
	Root string
}

// New returns the layout rooted at root. An empty root resolves to the
// default directory in the user's home.
func New(root string) (Layout, error) {
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Layout{}, errors.NewConfigError("paths", "cannot resolve home directory", err)
		}
		root = filepath.Join(home, constants.AppDirName)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return Layout{}, errors.NewConfigError("paths", "invalid application directory", err)
	}
	return Layout{Root: abs}, nil
}

// Settings is the operator settings file.
func (l Layout) Settings() string { return filepath.Join(l.Root, constants.SettingsFile) }

// Branch is the clone directory of a branch.
func (l Layout) Branch(branch string) string { return filepath.Join(l.Root, "git", branch) }

// PublishedManifest is manifest.json of the main branch clone.
func (l Layout) PublishedManifest() string {
	return filepath.Join(l.Branch(constants.MainBranch), "manifest.json")
}

// Sources is the icon sources directory of the dev branch clone.
func (l Layout) Sources() string { return filepath.Join(l.Branch(constants.DevBranch), "sources") }

// SourceIcons is the source directory of one category.
func (l Layout) SourceIcons(c assets.Category) string { return filepath.Join(l.Sources(), c.String()) }

// Template is a markdown template of the dev branch, e.g. "README".
func (l Layout) Template(name string) string {
	return filepath.Join(l.Sources(), name+".template.md")
}

// Generated is the fetch and build output directory.
func (l Layout) Generated() string { return filepath.Join(l.Root, "generated") }

// GeneratedFile is a file inside Generated.
func (l Layout) GeneratedFile(name string) string { return filepath.Join(l.Generated(), name) }

// CategoryFile is the intermediate JSON file of a category, e.g. crypto.json.
func (l Layout) CategoryFile(c assets.Category) string { return l.GeneratedFile(c.String() + ".json") }

// NamesFile is the name index file.
func (l Layout) NamesFile() string { return l.GeneratedFile("cryptoNames.json") }

// AllFile is the raw exchange payload.
func (l Layout) AllFile() string { return l.GeneratedFile("all.json") }

// Icons is the optimized icon directory of a category.
func (l Layout) Icons(c assets.Category) string { return filepath.Join(l.Generated(), c.String()) }

// Manifest is the generated manifest.
func (l Layout) Manifest() string { return l.GeneratedFile("manifest.json") }

// ReadableManifest is the indented copy of the generated manifest.
func (l Layout) ReadableManifest() string { return l.GeneratedFile("manifest.readable.json") }

// Package is the package assembly directory.
func (l Layout) Package() string { return filepath.Join(l.Root, "npm") }

// Release is the release directory.
func (l Layout) Release() string { return filepath.Join(l.Root, "release") }

// EnsureGenerated creates the generated directory and one icon directory
// per category.
func (l Layout) EnsureGenerated() error {
	for _, c := range assets.Categories() {
		dir := l.Icons(c)
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return errors.WrapIO("create", dir, err)
		}
	}
	return nil
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
