package exchange_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadimmalykhin/binance-icons-toolkit/internal/exchange"
	"github.com/vadimmalykhin/binance-icons-toolkit/internal/transport"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/errors"
)

const allCoins = `[
  {"coin":"BTC","name":"Bitcoin","free":"0","locked":"0","isLegalMoney":false,"trading":true,
   "networkList":[{"network":"BTC","coin":"BTC","withdrawFee":"0.0005","isDefault":true}]},
  {"coin":"EUR","name":"Euro","isLegalMoney":true,"trading":true,"networkList":[]}
]`

func newServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if r.Header.Get(transport.APIKeyHeader) != "key" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"code":-2014,"msg":"API-key format invalid."}`))
			return
		}
		assert.Equal(t, "60000", r.URL.Query().Get("recvWindow"))
		assert.NotEmpty(t, r.URL.Query().Get("signature"))

		switch r.URL.Path {
		case exchange.AllCoinsPath:
			assert.Equal(t, "true", r.URL.Query().Get("includeEtf"))
			_, _ = w.Write([]byte(allCoins))
		case exchange.RestrictionsPath:
			_, _ = w.Write([]byte(`{"ipRestrict":false,"enableReading":true,"enableWithdrawals":true}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchAll(t *testing.T) {
	var hits int32
	srv := newServer(t, &hits)

	c, err := exchange.New(srv.URL, "key", "secret")
	require.NoError(t, err)

	snap, err := c.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Assets, 2)
	assert.Equal(t, "BTC", snap.Assets[0].Coin)
	assert.Equal(t, "0.0005", snap.Assets[0].NetworkList[0].WithdrawFee.String())
	assert.True(t, snap.Assets[1].IsLegalMoney)
	assert.JSONEq(t, allCoins, string(snap.Raw))

	// second call is served from cache
	_, err = c.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))

	c.Invalidate()
	_, err = c.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestFetchAllKeepsMalformedRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"coin":"BTC","name":"Bitcoin","free":"0.1","networkList":[]},{"coin":"XYZ","name":"Weird","free":"","networkList":[]}]`))
	}))
	t.Cleanup(srv.Close)

	c, err := exchange.New(srv.URL, "key", "secret")
	require.NoError(t, err)

	snap, err := c.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Assets, 2)
	assert.True(t, snap.Assets[0].Free.Valid())
	assert.Equal(t, `""`, snap.Assets[1].Free.Invalid)
}

func TestFetchRestrictions(t *testing.T) {
	var hits int32
	srv := newServer(t, &hits)

	c, err := exchange.New(srv.URL, "key", "secret")
	require.NoError(t, err)

	r, err := c.FetchRestrictions(context.Background())
	require.NoError(t, err)
	assert.True(t, r.EnableReading)
	assert.True(t, r.Unsafe())
	assert.False(t, exchange.Restrictions{EnableReading: true}.Unsafe())
}

func TestInvalidKey(t *testing.T) {
	var hits int32
	srv := newServer(t, &hits)

	c, err := exchange.New(srv.URL, "wrong", "secret")
	require.NoError(t, err)

	_, err = c.FetchRestrictions(context.Background())
	assert.ErrorIs(t, err, errors.ErrAPIKeyInvalid)
}

func TestNewRequiresCredentials(t *testing.T) {
	_, err := exchange.New("", "", "secret")
	assert.ErrorIs(t, err, errors.ErrAPIKeyRequired)
}
