package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/errors"
)

func TestSign(t *testing.T) {
	// example from the exchange's SIGNED endpoint documentation
	secret := "NhqPtmdSJYdKjVHjA7PZj4Mge3R5YNiP1e3UZjInClVN65XAbvqqM6A7H5fATj0j"
	payload := "symbol=LTCBTC&side=BUY&type=LIMIT&timeInForce=GTC&quantity=1&price=0.1&recvWindow=5000&timestamp=1499827319559"
	assert.Equal(t, "c8db56825ae71d6d79447849e617115f4a920fa2acdcab2b053c4b2838bd6b71", Sign(secret, payload))
}

func TestHMACAuthSignsRequest(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	clock := func() time.Time { return time.UnixMilli(1700000000000) }
	c := New("binance", srv.URL, &HMACAuth{Key: "api-key", Secret: "secret", Clock: clock})

	resp, err := c.Get(context.Background(), "/sapi/v1/account/apiRestrictions", url.Values{"recvWindow": {"60000"}})
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "api-key", got.Header.Get(APIKeyHeader))
	payload := "recvWindow=60000&timestamp=1700000000000"
	assert.Equal(t, payload+"&signature="+Sign("secret", payload), got.URL.RawQuery)

	var body struct{ OK bool }
	require.NoError(t, c.DecodeResponse(resp, &body))
	assert.True(t, body.OK)
}

func TestNoAuth(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New("binance", srv.URL, nil)
	_, err := c.Get(context.Background(), "/ping", nil)
	require.NoError(t, err)
	assert.Equal(t, "", got.URL.RawQuery)
	assert.Equal(t, "", got.Header.Get(APIKeyHeader))
	assert.Equal(t, "application/json", got.Header.Get("Accept"))
}

func TestDecodeResponseErrors(t *testing.T) {
	c := New("binance", "http://localhost", nil)

	t.Run("exchange error body", func(t *testing.T) {
		err := c.DecodeResponse(&Response{StatusCode: 401, Endpoint: "/x", Body: []byte(`{"code":-2015,"msg":"Invalid API-key, IP, or permissions for action."}`)}, nil)
		var apiErr *errors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, -2015, apiErr.Code)
		assert.True(t, errors.IsAPIKeyError(err))
	})

	t.Run("plain status", func(t *testing.T) {
		err := c.DecodeResponse(&Response{StatusCode: 503, Endpoint: "/x", Body: []byte("<html>")}, nil)
		assert.ErrorIs(t, err, errors.ErrUnavailable)
		assert.Contains(t, err.Error(), "Service Unavailable")
	})

	t.Run("malformed json", func(t *testing.T) {
		var v []int
		err := c.DecodeResponse(&Response{StatusCode: 200, Endpoint: "/x", Body: []byte("{")}, &v)
		var parseErr *errors.ParseError
		assert.ErrorAs(t, err, &parseErr)
	})
}
