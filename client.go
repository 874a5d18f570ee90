package xatadb

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/xatadb/xatadb.go/pkg/constants"
	"github.com/xatadb/xatadb.go/pkg/credentials"
	"github.com/xatadb/xatadb.go/pkg/logger"
)

const applicationJSON = "application/json"

// Client is a wrapper to more easily make HTTP calls against a Xata
// database. It holds the resolved credential triple and nothing else;
// every method is a single request/response round trip. A Client is
// immutable after construction and safe for concurrent use.
type Client struct {
	creds      credentials.Credentials
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option customises a Client at construction time.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Callers wanting
// per-call timeouts or custom transports configure them here.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the timeout on the underlying HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithLogger injects the logger requests are traced through at debug
// level. Without it, nothing is logged.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithBranch overrides the branch the credentials resolved to.
func WithBranch(branch string) Option {
	return func(c *Client) {
		c.creds.Branch = branch
	}
}

// New creates a Client from an already-resolved credential triple. The
// credentials are validated eagerly; no network call is made.
func New(creds credentials.Credentials, opts ...Option) (*Client, error) {
	if creds.Branch == "" {
		creds.Branch = constants.DefaultBranch
	}
	creds.DBURL = strings.TrimRight(creds.DBURL, "/")

	c := &Client{
		creds: creds,
		httpClient: &http.Client{
			Timeout: constants.DefaultTimeout,
		},
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.creds.Validate(); err != nil {
		return nil, &ConfigError{Err: err}
	}

	return c, nil
}

// Connect resolves credentials from the given providers (falling back to
// the environment) and constructs a Client.
func Connect(providers []credentials.Provider, opts ...Option) (*Client, error) {
	creds, err := credentials.Resolve(providers...)
	if err != nil {
		return nil, &ConfigError{Err: err}
	}
	return New(creds, opts...)
}

// Credentials returns a copy of the resolved credential triple.
func (c *Client) Credentials() credentials.Credentials {
	return c.creds
}

// Branch returns the branch data-plane requests are scoped to.
func (c *Client) Branch() string {
	return c.creds.Branch
}

// branchURL is the database base URL with the branch scope appended,
// e.g. https://ws-1234.us-east-1.xata.sh/db/app:main
func (c *Client) branchURL() string {
	return c.creds.DBURL + ":" + c.creds.Branch
}

// tableURL builds a branch-scoped table endpoint from path segments.
func (c *Client) tableURL(table string, segments ...string) string {
	parts := []string{c.branchURL(), "tables", url.PathEscape(table)}
	for _, s := range segments {
		parts = append(parts, url.PathEscape(s))
	}
	return strings.Join(parts, "/")
}

// Do makes a request against the remote API with the stored credentials
// and returns the raw response envelope. The target is either an
// absolute URL or a path relative to the branch-scoped database URL.
// A string or []byte body is sent as-is; anything else is marshaled to
// JSON. This is the escape hatch for endpoints without a wrapper method.
func (c *Client) Do(ctx context.Context, method, target string, body any) (*Response, error) {
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		if !strings.HasPrefix(target, "/") {
			target = "/" + target
		}
		target = c.branchURL() + target
	}

	var bodyBytes []byte
	switch v := body.(type) {
	case nil:
	case string:
		bodyBytes = []byte(v)
	case []byte:
		bodyBytes = v
	case json.RawMessage:
		bodyBytes = v
	default:
		var err error
		bodyBytes, err = json.Marshal(v)
		if err != nil {
			return nil, errors.Wrap(err, "could not marshal request body")
		}
	}

	var reader io.Reader = http.NoBody
	if bodyBytes != nil {
		reader = bytes.NewReader(bodyBytes)
	}
	return c.do(ctx, method, target, reader, applicationJSON)
}

// do performs a single round trip. Status >= 400 becomes a *ServerError
// carrying the original status code and body.
func (c *Client) do(ctx context.Context, method, target string, body io.Reader, contentType string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, errors.Wrapf(err, "could not build %s request to %s", method, target)
	}
	req.Header.Set("Authorization", "Bearer "+c.creds.APIKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "request to %s failed", target)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "could not read response body")
	}

	c.logger.Debug().
		Str("method", method).
		Str("url", target).
		Int("status", resp.StatusCode).
		Msg("request completed")

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &ServerError{StatusCode: resp.StatusCode, Body: data}
	}

	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}

func validateTable(table string) error {
	if strings.TrimSpace(table) == "" {
		return validationErrorf("table name must not be empty")
	}
	return nil
}

func validateRecordID(id string) error {
	if strings.TrimSpace(id) == "" {
		return validationErrorf("record id must not be empty")
	}
	return nil
}

// columnsQuery renders a columns projection as a query string suffix.
func columnsQuery(columns []string) string {
	if len(columns) == 0 {
		return ""
	}
	v := url.Values{}
	v.Set("columns", strings.Join(columns, ","))
	return "?" + v.Encode()
}
