// Package exchange fetches asset metadata and key restrictions from the
// Binance REST API.
package exchange

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	gocache "github.com/patrickmn/go-cache"

	"github.com/vadimmalykhin/binance-icons-toolkit/internal/transport"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/assets"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/constants"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/errors"
)

// Endpoints.
const (
	AllCoinsPath     = "/sapi/v1/capital/config/getall"
	RestrictionsPath = "/sapi/v1/account/apiRestrictions"
)

const (
	serviceName      = "binance"
	cacheKeyAll      = "getall"
	cacheKeyRestrict = "restrictions"
)

// Snapshot is one fetch of the "all coins" feed.
type Snapshot struct {
	// Raw is the response body as received.
	Raw    json.RawMessage
	Assets []assets.RawAsset
}

// Restrictions are the permissions of an API key.
type Restrictions struct {
	IPRestrict                 bool  `json:"ipRestrict"`
	CreateTime                 int64 `json:"createTime"`
	EnableReading              bool  `json:"enableReading"`
	EnableSpotAndMarginTrading bool  `json:"enableSpotAndMarginTrading"`
	EnableMargin               bool  `json:"enableMargin"`
	EnableFutures              bool  `json:"enableFutures"`
	EnableVanillaOptions       bool  `json:"enableVanillaOptions"`
	EnableWithdrawals          bool  `json:"enableWithdrawals"`
	EnableInternalTransfer     bool  `json:"enableInternalTransfer"`
	PermitsUniversalTransfer   bool  `json:"permitsUniversalTransfer"`
}

// Unsafe reports whether the key can do anything beyond reading.
func (r Restrictions) Unsafe() bool {
	return r.EnableSpotAndMarginTrading ||
		r.EnableMargin ||
		r.EnableFutures ||
		r.EnableVanillaOptions ||
		r.EnableInternalTransfer ||
		r.PermitsUniversalTransfer ||
		r.EnableWithdrawals
}

// Client is a Binance API client. Responses are cached for a short TTL so
// repeated actions of one interactive session do not hit the API again.
type Client struct {
	http  *transport.Client
	cache *gocache.Cache
}

// New creates a client authenticated with key and secret.
func New(baseURL, key, secret string) (*Client, error) {
	if key == "" || secret == "" {
		return nil, errors.ErrAPIKeyRequired
	}
	if baseURL == "" {
		baseURL = constants.ExchangeURL
	}
	return &Client{
		http:  transport.New(serviceName, baseURL, &transport.HMACAuth{Key: key, Secret: secret}),
		cache: gocache.New(constants.ExchangeCacheTTL, constants.ExchangeCacheCleanup),
	}, nil
}

// FetchAll returns every asset of the account, ETF tokens included.
func (c *Client) FetchAll(ctx context.Context) (*Snapshot, error) {
	if v, ok := c.cache.Get(cacheKeyAll); ok {
		return v.(*Snapshot), nil
	}

	resp, err := c.http.Get(ctx, AllCoinsPath, signedQuery(url.Values{"includeEtf": {"true"}}))
	if err != nil {
		return nil, err
	}
	var list []assets.RawAsset
	if err := c.http.DecodeResponse(resp, &list); err != nil {
		return nil, err
	}

	snap := &Snapshot{Raw: resp.Body, Assets: list}
	c.cache.SetDefault(cacheKeyAll, snap)
	return snap, nil
}

// FetchRestrictions returns the permissions of the configured key.
func (c *Client) FetchRestrictions(ctx context.Context) (*Restrictions, error) {
	if v, ok := c.cache.Get(cacheKeyRestrict); ok {
		return v.(*Restrictions), nil
	}

	resp, err := c.http.Get(ctx, RestrictionsPath, signedQuery(nil))
	if err != nil {
		return nil, err
	}
	var r Restrictions
	if err := c.http.DecodeResponse(resp, &r); err != nil {
		return nil, err
	}
	c.cache.SetDefault(cacheKeyRestrict, &r)
	return &r, nil
}

// Invalidate drops cached responses.
func (c *Client) Invalidate() {
	c.cache.Flush()
}

func signedQuery(q url.Values) url.Values {
	if q == nil {
		q = url.Values{}
	}
	q.Set("recvWindow", strconv.Itoa(constants.RecvWindow))
	return q
}
