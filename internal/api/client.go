// Package api is the HTTP transport to httagd.
//
// PUT defines or overwrites a tag (idempotent under TAGL); POST appends a
// predicate (replays append again). Both send a single TAGL statement as a
// text/plain body to /<percent-encoded tag id> on the server origin.
package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"httag-cli/internal/tagl"
)

const statementContentType = "text/plain; charset=utf-8"

// Response is a successful (2xx) reply.
type Response struct {
	Status int
	URL    string
	Header http.Header
	Body   []byte
}

type Client struct {
	origin string
	resty  *resty.Client
	log    *zap.Logger
}

type Option func(*Client)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithHTTPClient replaces the underlying http.Client (tests, custom transports).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.resty = newResty(hc)
		}
	}
}

// New builds a client for server. Only the scheme and host of server are
// kept; they form the origin for every request made by this client.
func New(server string, opts ...Option) (*Client, error) {
	origin, err := Origin(server)
	if err != nil {
		return nil, err
	}
	c := &Client{
		origin: origin,
		resty:  newResty(&http.Client{}),
		log:    zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	c.resty.SetLogger(c.log.Sugar())
	return c, nil
}

func newResty(hc *http.Client) *resty.Client {
	// No client-side timeout and no retries: a failed submission is reported
	// once and the user decides what to do.
	return resty.NewWithClient(hc).
		SetRetryCount(0).
		SetHeader("User-Agent", "httag")
}

// Origin returns scheme://host for raw. A missing scheme means http.
func Origin(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty server url")
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse server url: %w", err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("server url has no host: %q", raw)
	}
	return u.Scheme + "://" + u.Host, nil
}

// Origin returns the origin computed at construction.
func (c *Client) Origin() string { return c.origin }

// TagURL is origin + "/" + the percent-encoded tag id as a single path segment.
func (c *Client) TagURL(tagID string) string {
	return c.origin + "/" + url.PathEscape(tagID)
}

// Put sends a TAGL PUT statement keyed by tagID.
func (c *Client) Put(ctx context.Context, tagID string, body tagl.Statement) (*Response, error) {
	return c.send(ctx, http.MethodPut, tagID, body)
}

// Post appends a TAGL statement to tagID.
func (c *Client) Post(ctx context.Context, tagID string, body tagl.Statement) (*Response, error) {
	return c.send(ctx, http.MethodPost, tagID, body)
}

func (c *Client) send(ctx context.Context, method, tagID string, body tagl.Statement) (*Response, error) {
	if err := tagl.CheckID(tagID); err != nil {
		return nil, err
	}
	u := c.TagURL(tagID)
	req := c.resty.R().
		SetContext(ctx).
		SetHeader("Content-Type", statementContentType).
		SetBody(body.String())
	return c.do(req, method, u)
}

// Get fetches a rendered page. pageURL must be absolute.
func (c *Client) Get(ctx context.Context, pageURL string) (*Response, error) {
	req := c.resty.R().
		SetContext(ctx).
		SetHeader("Accept", "text/html")
	return c.do(req, http.MethodGet, pageURL)
}

func (c *Client) do(req *resty.Request, method, u string) (*Response, error) {
	c.log.Debug("request", zap.String("method", method), zap.String("url", u))

	resp, err := req.Execute(method, u)
	if err != nil {
		c.log.Warn("transport failure", zap.String("method", method), zap.String("url", u), zap.Error(err))
		return nil, &NetworkError{Method: method, URL: u, Err: err}
	}
	if !resp.IsSuccess() {
		msg := strings.TrimSpace(resp.String())
		c.log.Warn("server rejected request",
			zap.String("method", method),
			zap.String("url", u),
			zap.Int("status", resp.StatusCode()),
			zap.String("diagnostic", msg),
		)
		return nil, &ServerError{Method: method, URL: u, Status: resp.StatusCode(), Message: msg}
	}

	c.log.Debug("response", zap.String("method", method), zap.String("url", u), zap.Int("status", resp.StatusCode()))
	return &Response{
		Status: resp.StatusCode(),
		URL:    u,
		Header: resp.Header(),
		Body:   resp.Body(),
	}, nil
}
