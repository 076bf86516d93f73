package manifest_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadimmalykhin/binance-icons-toolkit/internal/manifest"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/assets"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/errors"
)

func newStore(t *testing.T, published string) *manifest.Store {
	t.Helper()
	dir := t.TempDir()
	s := &manifest.Store{
		Published: filepath.Join(dir, "git", "main", "manifest.json"),
		Output:    filepath.Join(dir, "generated", "manifest.json"),
		Readable:  filepath.Join(dir, "generated", "manifest.readable.json"),
	}
	if published != "" {
		require.NoError(t, os.MkdirAll(filepath.Dir(s.Published), 0o755))
		require.NoError(t, os.WriteFile(s.Published, []byte(published), 0o644))
	}
	return s
}

func TestUpdateWritesBothForms(t *testing.T) {
	s := newStore(t, `{"crypto":[{"symbol":"btc","name":"Bitcoin"}],"etf":[],"currency":null}`)

	got, err := s.Update(context.Background(), func(prior assets.Manifest) (assets.Manifest, error) {
		prior.Crypto = append(prior.Crypto, assets.RepositoryAsset{Symbol: "eth", Name: "Ethereum"})
		return prior, nil
	})
	require.NoError(t, err)
	assert.Len(t, got.Crypto, 2)

	compact, err := os.ReadFile(s.Output)
	require.NoError(t, err)
	assert.Equal(t, `{"crypto":[{"symbol":"btc","name":"Bitcoin"},{"symbol":"eth","name":"Ethereum"}],"etf":[],"currency":[]}`+"\n", string(compact))

	readable, err := os.ReadFile(s.Readable)
	require.NoError(t, err)
	assert.Contains(t, string(readable), "{\n  \"crypto\": [\n    {\n      \"symbol\": \"btc\",")
	assert.Equal(t, byte('\n'), readable[len(readable)-1])

	generated, err := s.LoadGenerated()
	require.NoError(t, err)
	assert.Equal(t, got, generated)
}

func TestUpdateMissingPublished(t *testing.T) {
	s := newStore(t, "")
	called := false
	_, err := s.Update(context.Background(), func(m assets.Manifest) (assets.Manifest, error) {
		called = true
		return m, nil
	})
	assert.True(t, errors.IsMissingDependency(err))
	assert.Contains(t, err.Error(), "Run 'bit clone' first.")
	assert.False(t, called)
	assert.NoFileExists(t, s.Output)
}

func TestUpdateRejectsUnsortedResult(t *testing.T) {
	s := newStore(t, `{"crypto":[],"etf":[],"currency":[]}`)
	_, err := s.Update(context.Background(), func(m assets.Manifest) (assets.Manifest, error) {
		m.Crypto = []assets.RepositoryAsset{{Symbol: "b"}, {Symbol: "a"}}
		return m, nil
	})
	assert.True(t, errors.IsValidationError(err))
	assert.NoFileExists(t, s.Output)
}

func TestUpdateSerialized(t *testing.T) {
	s := newStore(t, `{"crypto":[],"etf":[],"currency":[]}`)

	var (
		mu      sync.Mutex
		inside  int
		maxSeen int
		wg      sync.WaitGroup
	)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Update(context.Background(), func(m assets.Manifest) (assets.Manifest, error) {
				mu.Lock()
				inside++
				maxSeen = max(maxSeen, inside)
				mu.Unlock()

				mu.Lock()
				inside--
				mu.Unlock()
				return m, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxSeen)
}

func TestLoadGeneratedWaitsForUpdate(t *testing.T) {
	s := newStore(t, `{"crypto":[],"etf":[],"currency":[]}`)

	entered := make(chan struct{})
	release := make(chan struct{})
	updated := make(chan error, 1)
	go func() {
		_, err := s.Update(context.Background(), func(m assets.Manifest) (assets.Manifest, error) {
			close(entered)
			<-release
			m.Crypto = []assets.RepositoryAsset{{Symbol: "btc", Name: "Bitcoin"}}
			return m, nil
		})
		updated <- err
	}()
	<-entered

	loaded := make(chan assets.Manifest, 1)
	go func() {
		m, err := s.LoadGenerated()
		assert.NoError(t, err)
		loaded <- m
	}()

	select {
	case <-loaded:
		t.Fatal("LoadGenerated returned while a merge was in progress")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	require.NoError(t, <-updated)
	m := <-loaded
	assert.Equal(t, []assets.RepositoryAsset{{Symbol: "btc", Name: "Bitcoin"}}, m.Crypto)
}

func TestReadCorrupt(t *testing.T) {
	s := newStore(t, "{")
	_, err := s.LoadPublished()
	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}
