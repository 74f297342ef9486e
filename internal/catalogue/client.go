// Package catalogue implements a client for the Copernicus Data Space
// Ecosystem OData catalogue.
package catalogue

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"github.com/cdsetool/cdsego/internal/log"
)

// DefaultBaseURL is the production catalogue endpoint.
const DefaultBaseURL = "https://catalogue.dataspace.copernicus.eu/odata/v1"

const (
	defaultTimeout           = 30 * time.Second
	defaultRetryMax          = 4
	defaultPageRetryAttempts = 10
	defaultPageRetryWait     = time.Minute
	breakerThreshold         = 5
	breakerResetTimeout      = 30 * time.Second
)

// Options configures a Client. The zero value yields production defaults.
type Options struct {
	// HTTPClient overrides the retrying client built by New. Mainly for tests.
	HTTPClient *http.Client
	// Timeout bounds each catalogue request.
	Timeout time.Duration
	// RequestsPerSecond throttles catalogue requests. Zero disables throttling.
	RequestsPerSecond float64
	// PageRetryAttempts bounds the page-level retry loop on non-200 responses.
	PageRetryAttempts int
	// PageRetryWait is the base wait between page-level retries.
	PageRetryWait time.Duration
}

// Client queries the catalogue's Products and Attributes endpoints.
type Client struct {
	baseURL           string
	http              *http.Client
	limiter           *rate.Limiter
	breaker           *CircuitBreaker
	logger            zerolog.Logger
	pageRetryAttempts int
	pageRetryWait     time.Duration
}

// New creates a catalogue client for baseURL.
func New(baseURL string, opts Options) *Client {
	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = newRetryingClient(timeout)
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	attempts := opts.PageRetryAttempts
	if attempts <= 0 {
		attempts = defaultPageRetryAttempts
	}
	wait := opts.PageRetryWait
	if wait <= 0 {
		wait = defaultPageRetryWait
	}

	host := base
	if u, err := url.Parse(base); err == nil && u.Host != "" {
		host = u.Host
	}

	return &Client{
		baseURL:           base,
		http:              httpClient,
		limiter:           limiter,
		breaker:           NewCircuitBreaker(host, breakerThreshold, breakerResetTimeout),
		logger:            log.WithComponent("catalogue"),
		pageRetryAttempts: attempts,
		pageRetryWait:     wait,
	}
}

// newRetryingClient builds an *http.Client that retries transient transport
// and 5xx failures, with traced outbound requests.
func newRetryingClient(timeout time.Duration) *http.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = defaultRetryMax
	rc.Logger = retryLogger{log.WithComponent("catalogue.http")}
	rc.HTTPClient.Timeout = timeout
	rc.HTTPClient.Transport = otelhttp.NewTransport(http.DefaultTransport)
	return rc.StandardClient()
}

// retryLogger adapts zerolog to retryablehttp's LeveledLogger.
type retryLogger struct {
	l zerolog.Logger
}

func (r retryLogger) Error(msg string, kv ...any) { r.emit(r.l.Error(), msg, kv) }
func (r retryLogger) Warn(msg string, kv ...any)  { r.emit(r.l.Warn(), msg, kv) }
func (r retryLogger) Info(msg string, kv ...any)  { r.emit(r.l.Debug(), msg, kv) }
func (r retryLogger) Debug(msg string, kv ...any) { r.emit(r.l.Debug(), msg, kv) }

func (retryLogger) emit(ev *zerolog.Event, msg string, kv []any) {
	for i := 0; i+1 < len(kv); i += 2 {
		if key, ok := kv[i].(string); ok {
			ev = ev.Interface(key, kv[i+1])
		}
	}
	ev.Msg(msg)
}

// BaseURL returns the catalogue endpoint this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// getJSON performs one rate-limited, breaker-guarded GET and decodes the JSON
// body into out. The returned status is the HTTP status code, or 0 when the
// request never produced a response.
func (c *Client) getJSON(ctx context.Context, endpoint, rawURL string, out any) (int, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return 0, err
		}
	}

	var status int
	err := c.breaker.Execute(func() error {
		start := time.Now()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return &APIError{Sentinel: ErrBadResponse, Operation: endpoint, Err: err}
		}
		req.Header.Set("Accept", "application/json")

		res, err := c.http.Do(req)
		if err != nil {
			observeRequest(endpoint, "error", time.Since(start).Seconds())
			return &APIError{Sentinel: ErrUnavailable, Operation: endpoint, Err: err}
		}
		defer res.Body.Close()

		status = res.StatusCode
		observeRequest(endpoint, strconv.Itoa(res.StatusCode), time.Since(start).Seconds())

		switch {
		case res.StatusCode == http.StatusOK:
		case res.StatusCode == http.StatusNotFound:
			return &APIError{Sentinel: ErrNotFound, Operation: endpoint, Status: res.StatusCode}
		case res.StatusCode >= 500:
			return &APIError{Sentinel: ErrServerError, Operation: endpoint, Status: res.StatusCode, Body: readBodyHead(res.Body)}
		default:
			return &APIError{Sentinel: ErrBadResponse, Operation: endpoint, Status: res.StatusCode, Body: readBodyHead(res.Body)}
		}

		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			return &APIError{Sentinel: ErrBadResponse, Operation: endpoint, Status: res.StatusCode, Err: err}
		}
		return nil
	})
	return status, err
}

// readBodyHead returns at most the first 512 bytes of a response body for
// error context.
func readBodyHead(r io.Reader) string {
	head, err := io.ReadAll(io.LimitReader(r, 512))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(head))
}

// sleepContext waits for d or until ctx is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
