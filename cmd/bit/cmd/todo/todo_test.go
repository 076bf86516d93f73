package todo

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadimmalykhin/binance-icons-toolkit/internal/appcontext"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/exchange"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/assets"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/errors"
)

type feed []assets.RawAsset

func (f feed) FetchAll(context.Context) (*exchange.Snapshot, error) {
	return &exchange.Snapshot{Assets: f}, nil
}

// prepare clones a published manifest and fetches a small feed.
func prepare(t *testing.T, format string) *appcontext.Mock {
	t.Helper()
	app := &appcontext.Mock{LayoutRoot: t.TempDir(), Format: format}
	published := app.Layout().PublishedManifest()
	require.NoError(t, os.MkdirAll(filepath.Dir(published), 0o755))
	require.NoError(t, os.WriteFile(published,
		[]byte(`{"crypto":[{"symbol":"btc","name":"Bitcoin"}],"etf":[],"currency":[{"symbol":"usd","name":"US Dollar"}]}`), 0o644))

	_, err := app.Builder().Fetch(context.Background(), feed{
		{Coin: "BTC", Name: "Bitcoin"},
		{Coin: "ETH", Name: "Ethereum"},
		{Coin: "USD", Name: "US Dollar", IsLegalMoney: true},
		{Coin: "EUR", Name: "Euro", IsLegalMoney: true},
	})
	require.NoError(t, err)
	return app
}

func TestPrint(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		var out bytes.Buffer
		Print(&out, assets.Report{
			Category: assets.FiatCurrency,
			Missing:  []assets.Missing{{Coin: "eur", Name: "Euro", Grapheme: "€"}, {Coin: "xyz", Name: "Unknown"}},
			Total:    3,
		})
		assert.Equal(t, "\ni Currencies\n\n▶ eur  Euro  €\n▶ xyz  Unknown\n\n● Displayed 2 of 3\n", out.String())
	})

	t.Run("done", func(t *testing.T) {
		var out bytes.Buffer
		Print(&out, assets.Report{Category: assets.CryptoETF, Missing: []assets.Missing{}, Total: 4})
		assert.Equal(t, "\ni ETFs\n\n✨ Awesome!\n   Nothing to do here.\n\n● Displayed 0 of 4\n", out.String())
	})
}

func TestRun(t *testing.T) {
	app := prepare(t, "")

	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), app, &out))
	assert.Contains(t, out.String(), "▶ eth  Ethereum\n")
	assert.Contains(t, out.String(), "▶ eur  Euro  €\n")
	assert.NotContains(t, out.String(), "btc  Bitcoin")
	assert.Contains(t, out.String(), "Nothing to do here.")
}

func TestRunJSON(t *testing.T) {
	app := prepare(t, "json")

	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), app, &out))

	var reports []struct {
		Category string           `json:"category"`
		Missing  []assets.Missing `json:"missing"`
		Total    int              `json:"total"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &reports))
	require.Len(t, reports, 3)
	assert.Equal(t, "crypto", reports[0].Category)
	assert.Equal(t, 2, reports[0].Total)
	require.Len(t, reports[0].Missing, 1)
	assert.Equal(t, "eth", reports[0].Missing[0].Coin)
}

func TestRunRequiresClone(t *testing.T) {
	app := &appcontext.Mock{LayoutRoot: t.TempDir()}
	err := Run(context.Background(), app, &bytes.Buffer{})
	assert.True(t, errors.IsMissingDependency(err))
}
