// Package transport provides the HTTP client used to talk to the exchange.
package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/constants"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/errors"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client provides HTTP client functionality with authentication.
type Client struct {
	http    *resty.Client
	auth    Authenticator
	service string
}

// New creates a new transport client for the service at hostURL.
func New(service, hostURL string, auth Authenticator) *Client {
	if auth == nil {
		auth = &NoAuth{}
	}
	return &Client{
		http: resty.New().
			SetHostURL(strings.TrimRight(hostURL, "/")).
			SetTimeout(DefaultHTTPTimeout).
			SetHeader("Accept", "application/json"),
		auth:    auth,
		service: service,
	}
}

// Response is a received HTTP response.
type Response struct {
	StatusCode int
	Endpoint   string
	Body       []byte
}

// Get performs a GET request on path with the given query.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	req := c.http.R().SetContext(ctx)

	target := path
	if raw := c.auth.Apply(req, query); raw != "" {
		target += "?" + raw
	}

	resp, err := req.Get(target)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.ErrCanceled
		}
		return nil, &errors.APIError{
			Service:  c.service,
			Endpoint: path,
			Message:  "request failed",
			Err:      err,
		}
	}
	return &Response{StatusCode: resp.StatusCode(), Endpoint: path, Body: resp.Body()}, nil
}

// errorBody is the exchange's error envelope.
type errorBody struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// DecodeResponse decodes a JSON response into target. Non-2xx responses are
// returned as *errors.APIError carrying the exchange code when present.
func (c *Client) DecodeResponse(resp *Response, target any) error {
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &errors.APIError{
			Service:    c.service,
			StatusCode: resp.StatusCode,
			Endpoint:   resp.Endpoint,
			Message:    http.StatusText(resp.StatusCode),
		}
		var body errorBody
		if json.Unmarshal(resp.Body, &body) == nil && body.Msg != "" {
			apiErr.Code = body.Code
			apiErr.Message = body.Msg
		}
		return apiErr
	}

	if err := json.Unmarshal(resp.Body, target); err != nil {
		return errors.WrapParse("json", resp.Endpoint, err)
	}
	return nil
}
