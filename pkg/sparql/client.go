package sparql

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/NCATS-Tangerine/rhea-beacon/internal/metrics"
	"github.com/NCATS-Tangerine/rhea-beacon/pkg/common/errors"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

// DefaultEndpoint is the public Rhea SPARQL endpoint.
const DefaultEndpoint = "https://sparql.rhea-db.org/sparql"

// Querier executes SPARQL SELECT queries.
type Querier interface {
	Records(ctx context.Context, query string) ([]Binding, error)
}

// Options configures a Client.
type Options struct {
	Endpoint string
	Timeout  time.Duration
	// RetryMax is the number of retries after the first attempt for
	// transport errors and 5xx responses.
	RetryMax int
	// RetryWaitMin bounds the backoff between attempts. Zero keeps the
	// retryablehttp default.
	RetryWaitMin time.Duration
	Logger       *zap.Logger
	Metrics      *metrics.Metrics
}

// Client queries a SPARQL endpoint over HTTP GET.
type Client struct {
	endpoint string
	http     *retryablehttp.Client
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// NewClient creates a new Client.
func NewClient(opts Options) *Client {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = max(opts.RetryMax, 0)
	if opts.RetryWaitMin > 0 {
		rc.RetryWaitMin = opts.RetryWaitMin
		rc.RetryWaitMax = 4 * opts.RetryWaitMin
	}
	if opts.Timeout > 0 {
		rc.HTTPClient.Timeout = opts.Timeout
	}
	rc.Logger = RetryLogger(opts.Logger)

	return &Client{
		endpoint: opts.Endpoint,
		http:     rc,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
	}
}

// Query executes query and decodes the JSON results document.
func (c *Client) Query(ctx context.Context, query string) (*Response, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("format", ResultsFormat)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "build sparql request")
	}
	req.Header.Set("Accept", ResultsFormat)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveSPARQL("error", time.Since(start))
		c.logger.Warn("sparql request failed", zap.String("endpoint", c.endpoint), zap.Error(err))
		return nil, errors.Upstream(err, "sparql query")
	}
	defer resp.Body.Close()

	c.metrics.ObserveSPARQL(strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Warn("sparql endpoint returned error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return nil, errors.Upstream(fmt.Errorf("status code %d: %s", resp.StatusCode, body), "sparql query")
	}

	var data Response
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, errors.Upstream(err, "decode sparql results")
	}

	c.logger.Debug("sparql query executed",
		zap.Int("rows", len(data.Results.Bindings)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return &data, nil
}

// Records executes query and returns only the result bindings.
func (c *Client) Records(ctx context.Context, query string) ([]Binding, error) {
	data, err := c.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return data.Results.Bindings, nil
}

// RetryLogger adapts zap to retryablehttp.LeveledLogger. Per-attempt Info
// messages are logged at debug level.
func RetryLogger(l *zap.Logger) retryablehttp.LeveledLogger {
	return retryLogger{l.Sugar()}
}

type retryLogger struct {
	l *zap.SugaredLogger
}

func (r retryLogger) Error(msg string, kv ...interface{}) { r.l.Errorw(msg, kv...) }
func (r retryLogger) Info(msg string, kv ...interface{})  { r.l.Debugw(msg, kv...) }
func (r retryLogger) Debug(msg string, kv ...interface{}) { r.l.Debugw(msg, kv...) }
func (r retryLogger) Warn(msg string, kv ...interface{})  { r.l.Warnw(msg, kv...) }
