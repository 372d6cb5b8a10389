package datasource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// HTTPClientConfig holds configuration for HTTP clients
type HTTPClientConfig struct {
	Timeout           time.Duration
	MaxRetries        int
	RetryWaitMin      time.Duration
	RetryWaitMax      time.Duration
	RateLimit         float64 // requests per second
	Burst             int
	CircuitBreakerMax int // max consecutive failures before circuit break

	// CircuitBreakerTimeout is how long the breaker stays open before a trial request
	CircuitBreakerTimeout time.Duration
}

// DefaultHTTPClientConfig returns recommended defaults
func DefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:           30 * time.Second,
		MaxRetries:        3,
		RetryWaitMin:      100 * time.Millisecond,
		RetryWaitMax:      5 * time.Second,
		RateLimit:         5.0,
		Burst:             1,
		CircuitBreakerMax: 5,

		CircuitBreakerTimeout: 30 * time.Second,
	}
}

// RateLimitedHTTPClient wraps retryablehttp.Client with rate limiting and a circuit breaker
type RateLimitedHTTPClient struct {
	client     *retryablehttp.Client
	limiter    *rate.Limiter
	breakerMax int
	breakerTTL time.Duration
	logger     *logrus.Entry

	mu      sync.Mutex
	breaker *gobreaker.CircuitBreaker
}

// NewRateLimitedHTTPClient creates a new rate-limited HTTP client
func NewRateLimitedHTTPClient(cfg HTTPClientConfig, logger *logrus.Logger) *RateLimitedHTTPClient {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	entry := logger.WithField("component", "http_client")

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.CheckRetry = customRetryPolicy()
	retryClient.Logger = nil

	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	defaults := DefaultHTTPClientConfig()
	breakerMax := cfg.CircuitBreakerMax
	if breakerMax <= 0 {
		breakerMax = defaults.CircuitBreakerMax
	}
	breakerTTL := cfg.CircuitBreakerTimeout
	if breakerTTL <= 0 {
		breakerTTL = defaults.CircuitBreakerTimeout
	}

	c := &RateLimitedHTTPClient{
		client:     retryClient,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimit), burst),
		breakerMax: breakerMax,
		breakerTTL: breakerTTL,
		logger:     entry,
	}
	c.breaker = c.newBreaker()
	return c
}

func (c *RateLimitedHTTPClient) newBreaker() *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "http-client",
		MaxRequests: 1,
		Timeout:     c.breakerTTL,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(c.breakerMax)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			c.logger.WithFields(logrus.Fields{
				"from_state": from.String(),
				"to_state":   to.String(),
			}).Warn("Circuit breaker state changed")
		},
	})
}

func (c *RateLimitedHTTPClient) currentBreaker() *gobreaker.CircuitBreaker {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.breaker
}

// Do executes an HTTP request with rate limiting and circuit breaker
func (c *RateLimitedHTTPClient) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	breaker := c.currentBreaker()
	if breaker.State() == gobreaker.StateOpen {
		return nil, fmt.Errorf("circuit breaker open: %w", gobreaker.ErrOpenState)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	retryReq, err := retryablehttp.FromRequest(req)
	if err != nil {
		return nil, err
	}

	out, err := breaker.Execute(func() (interface{}, error) {
		return c.client.Do(retryReq.WithContext(ctx))
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("circuit breaker open: %w", err)
	}
	if err != nil {
		return nil, err
	}
	return out.(*http.Response), nil
}

// Get executes a GET request
func (c *RateLimitedHTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, req)
}

// Post executes a POST request
func (c *RateLimitedHTTPClient) Post(ctx context.Context, url string, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	return c.Do(ctx, req)
}

// IsOpen reports whether the circuit breaker is currently rejecting requests
func (c *RateLimitedHTTPClient) IsOpen() bool {
	return c.currentBreaker().State() == gobreaker.StateOpen
}

// Reset closes the circuit breaker
func (c *RateLimitedHTTPClient) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.breaker = c.newBreaker()
}

// Close closes any resources held by the client
func (c *RateLimitedHTTPClient) Close() error {
	c.client.HTTPClient.CloseIdleConnections()
	return nil
}

// customRetryPolicy defines which HTTP responses should trigger a retry
func customRetryPolicy() retryablehttp.CheckRetry {
	return func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, ctxErr
		}
		if err != nil {
			// Retry on network errors
			return true, err
		}

		// Retry on rate limit (429) and server errors
		switch resp.StatusCode {
		case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true, nil
		}

		return false, nil
	}
}
