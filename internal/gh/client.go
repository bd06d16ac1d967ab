// Package gh provides a GraphQL client for the GitHub Projects v2 and
// Issues APIs. It implements a deep module interface - simple methods
// hiding complex GraphQL queries.
package gh

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/machinebox/graphql"
)

// DefaultEndpoint is the production GitHub GraphQL endpoint.
const DefaultEndpoint = "https://api.github.com/graphql"

// DefaultLabelColor is the hex color (without '#') used when a requested
// label does not exist and is created on demand.
const DefaultLabelColor = "ededed"

// Client is a GitHub GraphQL API client for Projects v2 and Issues.
// It is stateless between calls: no caches, no retries, at-most-once
// semantics matching the remote API's own.
type Client struct {
	gql        *graphql.Client
	token      string
	log        *slog.Logger
	labelColor string
}

// Option configures a Client.
type Option func(*options)

type options struct {
	endpoint   string
	httpClient *http.Client
	labelColor string
}

// WithEndpoint overrides the GraphQL endpoint. Tests point this at a
// local fake upstream.
func WithEndpoint(url string) Option {
	return func(o *options) { o.endpoint = url }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithLabelColor overrides the color used for labels created on demand.
func WithLabelColor(color string) Option {
	return func(o *options) { o.labelColor = color }
}

// New creates a GitHub GraphQL client authenticating with token and
// logging request diagnostics to log.
func New(token string, log *slog.Logger, opts ...Option) *Client {
	o := options{
		endpoint:   DefaultEndpoint,
		labelColor: DefaultLabelColor,
	}
	for _, opt := range opts {
		opt(&o)
	}

	var gqlOpts []graphql.ClientOption
	if o.httpClient != nil {
		gqlOpts = append(gqlOpts, graphql.WithHTTPClient(o.httpClient))
	}

	return &Client{
		gql:        graphql.NewClient(o.endpoint, gqlOpts...),
		token:      token,
		log:        log,
		labelColor: o.labelColor,
	}
}

// run executes a GraphQL request with authentication. This is a helper
// method to avoid repeating the authorization header setup.
func (c *Client) run(ctx context.Context, req *graphql.Request, resp interface{}) error {
	req.Header.Set("Authorization", "Bearer "+c.token)
	err := c.gql.Run(ctx, req, resp)
	if err != nil {
		c.log.Error("graphql request failed", "error", err)
	}
	return err
}
