package paths_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadimmalykhin/binance-icons-toolkit/internal/paths"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/assets"
)

func TestLayout(t *testing.T) {
	root := t.TempDir()
	l, err := paths.New(root)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "bit.json"), l.Settings())
	assert.Equal(t, filepath.Join(root, "git", "main", "manifest.json"), l.PublishedManifest())
	assert.Equal(t, filepath.Join(root, "git", "dev", "sources", "etf"), l.SourceIcons(assets.CryptoETF))
	assert.Equal(t, filepath.Join(root, "git", "dev", "sources", "README.template.md"), l.Template("README"))
	assert.Equal(t, filepath.Join(root, "generated", "currency.json"), l.CategoryFile(assets.FiatCurrency))
	assert.Equal(t, filepath.Join(root, "generated", "cryptoNames.json"), l.NamesFile())
	assert.Equal(t, filepath.Join(root, "generated", "manifest.readable.json"), l.ReadableManifest())

	require.NoError(t, l.EnsureGenerated())
	for _, c := range assets.Categories() {
		assert.DirExists(t, l.Icons(c))
	}
	assert.True(t, paths.Exists(l.Generated()))
	assert.False(t, paths.Exists(l.Release()))
}

func TestLayoutDefaultRoot(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	l, err := paths.New("")
	require.NoError(t, err)
	assert.Equal(t, ".binance-icons-toolkit", filepath.Base(l.Root))
}
