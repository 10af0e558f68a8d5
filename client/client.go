package client

import (
	"context"
	"net/http"

	"github.com/kbukum/restkit/config"
	"github.com/kbukum/restkit/httpclient"
	"github.com/kbukum/restkit/logger"
	"github.com/kbukum/restkit/lro"
	"github.com/kbukum/restkit/observability"
	"github.com/kbukum/restkit/paging"
	"github.com/kbukum/restkit/util"
)

// Client bundles a configured HTTP adapter with the defaults used by
// long-running operations and pageable lists.
type Client struct {
	cfg     config.Config
	adapter *httpclient.Adapter
	log     *logger.Logger
	metrics *observability.Metrics
}

// Option configures a Client.
type Option func(*options)

type options struct {
	log        *logger.Logger
	metrics    *observability.Metrics
	httpClient *http.Client
}

// WithLogger overrides the logger built from the logging section.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics overrides the instruments used for polls and pages.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// New validates cfg and builds a Client from it.
func New(cfg config.Config, opts ...Option) (*Client, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := o.log
	if log == nil {
		log = logger.New(&cfg.Logging, cfg.Name)
	}
	metrics := o.metrics
	if metrics == nil {
		metrics = observability.DefaultMetrics()
	}

	var adapterOpts []httpclient.Option
	if o.httpClient != nil {
		adapterOpts = append(adapterOpts, httpclient.WithHTTPClient(o.httpClient))
	}
	adapter, err := httpclient.New(cfg.AdapterConfig(), adapterOpts...)
	if err != nil {
		return nil, err
	}

	fields := logger.Fields(
		"name", cfg.Name,
		logger.FieldURL, cfg.HTTP.BaseURL,
		"environment", cfg.Environment,
	)
	if secret := util.Coalesce(cfg.HTTP.BearerToken, cfg.HTTP.APIKey); secret != "" {
		fields["credential"] = util.MaskSecret(secret, 4)
	}
	log.Debug("client initialized", fields)

	return &Client{
		cfg:     cfg,
		adapter: adapter,
		log:     log,
		metrics: metrics,
	}, nil
}

// Adapter returns the HTTP adapter for direct requests.
func (c *Client) Adapter() *httpclient.Adapter { return c.adapter }

// Logger returns the client logger.
func (c *Client) Logger() *logger.Logger { return c.log }

// Config returns the effective configuration.
func (c *Client) Config() config.Config { return c.cfg }

// Close releases the adapter's idle connections.
func (c *Client) Close(ctx context.Context) error {
	return c.adapter.Close(ctx)
}

// BeginOperation sends the request that starts a long-running operation and
// returns a handle tracking it. A non-2xx initial response is returned as an
// error without creating a handle.
func BeginOperation[T any](ctx context.Context, c *Client, req httpclient.Request, selector lro.ResultSelector[T], opts *lro.GetOperationOptions) (*lro.Operation[T], error) {
	resp, err := c.adapter.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	var o lro.GetOperationOptions
	if opts != nil {
		o = *opts
	}
	if o.Logger == nil {
		o.Logger = c.log.WithComponent("lro")
	}
	if o.Metrics == nil {
		o.Metrics = c.metrics
	}
	return lro.CreateOperation(c.adapter, resp, selector, &o)
}

// Wait blocks until op finishes, polling at the configured interval.
func Wait[T any](ctx context.Context, c *Client, op *lro.Operation[T]) (T, error) {
	return op.WaitForCompletion(ctx, c.cfg.Polling)
}

// List describes the paginated collection at path. opts apply to the first
// request only; next links are followed as returned by the service.
func List[T any](c *Client, path string, projector paging.Projector[T], opts ...httpclient.RequestOption) *paging.Pageable[T] {
	first := func(ctx context.Context) (*httpclient.Response, error) {
		return c.adapter.SendGet(ctx, path, opts...)
	}
	return paging.New(first, c.adapter, projector, &paging.Options{
		ItemProperty:     c.cfg.Paging.ItemProperty,
		NextLinkProperty: c.cfg.Paging.NextLinkProperty,
		Logger:           c.log.WithComponent("paging"),
		Metrics:          c.metrics,
	})
}
