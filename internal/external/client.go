// Package external provides the anti-corruption layer between the AgroMind
// controllers and the remote inference and weather services. All outbound
// HTTP calls are routed through the BaseClient, which enforces consistent
// behavior: circuit breaking, request correlation, metrics and error mapping.
// Calls are never retried.
package external

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"

	"agromind/internal/metrics"
	"agromind/internal/types"
)

// BreakerSettings configures the circuit breaker guarding one remote service.
type BreakerSettings struct {
	// MaxFailures is the number of consecutive failures that opens the breaker.
	MaxFailures uint32
	// Cooldown is how long the breaker stays open before letting a probe through.
	Cooldown time.Duration
}

// DefaultBreakerSettings returns sensible defaults for the remote services.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxFailures: 5,
		Cooldown:    30 * time.Second,
	}
}

// BaseClient wraps an *http.Client and a circuit breaker. Service clients
// embed BaseClient to inherit this behavior.
type BaseClient struct {
	name      string
	client    *http.Client
	breaker   *gobreaker.CircuitBreaker[*http.Response]
	userAgent string
	logger    *slog.Logger
}

// BaseClientOption is a functional option for configuring a BaseClient.
type BaseClientOption func(*BaseClient)

// WithLogger sets the logger used for transport diagnostics.
func WithLogger(logger *slog.Logger) BaseClientOption {
	return func(c *BaseClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewBaseClient creates a BaseClient. The name identifies the remote service
// in breaker state, logs and metrics labels.
func NewBaseClient(
	httpClient *http.Client,
	name string,
	breaker BreakerSettings,
	userAgent string,
	opts ...BaseClientOption,
) *BaseClient {
	maxFailures := breaker.MaxFailures
	if maxFailures == 0 {
		maxFailures = DefaultBreakerSettings().MaxFailures
	}

	cb := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     breaker.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil
		},
	})

	return NewBaseClientWithBreaker(httpClient, name, cb, userAgent, opts...)
}

// NewBaseClientWithBreaker creates a BaseClient with a caller-provided circuit
// breaker. This is useful for testing or when sharing a breaker across clients.
func NewBaseClientWithBreaker(
	httpClient *http.Client,
	name string,
	breaker *gobreaker.CircuitBreaker[*http.Response],
	userAgent string,
	opts ...BaseClientOption,
) *BaseClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	bc := &BaseClient{
		name:      name,
		client:    httpClient,
		breaker:   breaker,
		userAgent: userAgent,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(bc)
	}

	return bc
}

// Name returns the service name this client talks to.
func (c *BaseClient) Name() string {
	return c.name
}

// Do executes the HTTP request with:
//  1. Request ID injection (X-Request-Id, from context or freshly generated)
//  2. User-Agent header injection
//  3. Circuit breaker wrapping
//  4. Metrics recording
//  5. Error mapping to types.AppError
//
// Responses with status below 500 (other than 429) are returned as-is and the
// caller is responsible for closing the body. 5xx and 429 responses, network
// failures and an open breaker produce a types.AppError with an upstream code.
func (c *BaseClient) Do(req *http.Request) (*http.Response, error) {
	requestID := types.GetRequestID(req.Context())
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set("X-Request-Id", requestID)

	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	endpoint := req.URL.Path
	start := time.Now()

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		r, doErr := c.client.Do(req)
		if doErr != nil {
			return nil, doErr
		}
		// 5xx and 429 count as failures for the circuit breaker.
		if r.StatusCode >= 500 || r.StatusCode == http.StatusTooManyRequests {
			return r, fmt.Errorf("upstream returned %d", r.StatusCode)
		}
		return r, nil
	})

	metrics.ServiceCallLatency.WithLabelValues(c.name, endpoint).Observe(time.Since(start).Seconds())

	if err == nil {
		metrics.ServiceCallsTotal.WithLabelValues(c.name, endpoint, strconv.Itoa(resp.StatusCode)).Inc()
		return resp, nil
	}

	status := "error"
	if resp != nil {
		status = strconv.Itoa(resp.StatusCode)
		resp.Body.Close()
	}
	metrics.ServiceCallsTotal.WithLabelValues(c.name, endpoint, status).Inc()

	c.logger.Warn("service call failed",
		"service", c.name,
		"method", req.Method,
		"endpoint", endpoint,
		"request_id", requestID,
		"status", status,
		"error", err,
	)

	return nil, c.mapError(resp, err)
}

// mapError translates HTTP-level failures into domain-level AppErrors.
func (c *BaseClient) mapError(resp *http.Response, err error) *types.AppError {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return types.NewAppError(
			types.ErrCodeUpstreamCircuitOpen,
			fmt.Sprintf("circuit breaker is open; %s service unavailable", c.name),
			err,
		)
	}

	if resp != nil {
		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return types.NewAppError(
				types.ErrCodeUpstreamRateLimited,
				"upstream rate limit exceeded",
				err,
			).WithDetails(map[string]any{"status": resp.StatusCode})
		case resp.StatusCode >= 500:
			return types.NewAppError(
				types.ErrCodeUpstreamUnavailable,
				fmt.Sprintf("upstream returned %d", resp.StatusCode),
				err,
			).WithDetails(map[string]any{"status": resp.StatusCode})
		}
	}

	// Generic transport failure (connection refused, DNS, timeout, etc.).
	return types.NewAppError(
		types.ErrCodeUpstreamUnavailable,
		"upstream request failed",
		err,
	)
}
