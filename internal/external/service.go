package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"agromind/internal/types"
)

// maxResponseBodySize caps how much of a service response is read (10 MB).
const maxResponseBodySize = 10 << 20

// defaultImageMediaType is declared for images whose type is unknown.
const defaultImageMediaType = "application/octet-stream"

// Response is a fully read service response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports whether the status code is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// DecodeJSON unmarshals the body into dst. Any failure, including an empty
// body, is reported as an upstream decode error.
func (r *Response) DecodeJSON(dst any) error {
	if err := json.Unmarshal(r.Body, dst); err != nil {
		return types.NewAppError(
			types.ErrCodeUpstreamDecodeFailed,
			"response body is not valid JSON",
			err,
		).WithDetails(map[string]any{"status": r.StatusCode})
	}
	return nil
}

// StatusError returns an upstream error describing an unexpected status.
func (r *Response) StatusError() error {
	return types.NewAppError(
		types.ErrCodeUpstreamBadStatus,
		fmt.Sprintf("unexpected status %d", r.StatusCode),
		nil,
	).WithDetails(map[string]any{"status": r.StatusCode})
}

// APIClientConfig holds the configuration for creating an APIClient.
type APIClientConfig struct {
	Name      string // Service name for breaker, logs and metrics.
	BaseURL   string
	UserAgent string
	Breaker   BreakerSettings
	Logger    *slog.Logger
}

// APIClient implements ServiceClient against one remote service through
// BaseClient.
type APIClient struct {
	base    *BaseClient
	baseURL string
	logger  *slog.Logger
}

var _ ServiceClient = (*APIClient)(nil)

// NewAPIClient creates an APIClient. The httpClient timeout bounds each call.
func NewAPIClient(httpClient *http.Client, cfg APIClientConfig) *APIClient {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	base := NewBaseClient(httpClient, cfg.Name, cfg.Breaker, cfg.UserAgent, WithLogger(logger))
	return NewAPIClientWithBase(base, cfg)
}

// NewAPIClientWithBase creates an APIClient with a pre-configured BaseClient.
// This is useful for testing when you want to control the breaker.
func NewAPIClientWithBase(base *BaseClient, cfg APIClientConfig) *APIClient {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &APIClient{
		base:    base,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		logger:  logger,
	}
}

// PostMultipart implements ServiceClient.
func (c *APIClient) PostMultipart(ctx context.Context, path, field string, image types.UploadedImage) (*Response, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	filename := image.Filename
	if filename == "" {
		filename = field
	}
	mediaType := image.MediaType
	if mediaType == "" {
		mediaType = defaultImageMediaType
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(field), escapeQuotes(filename)))
	header.Set("Content-Type", mediaType)

	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalUnexpected, "failed to build multipart body", err)
	}
	if _, err := part.Write(image.Data); err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalUnexpected, "failed to build multipart body", err)
	}
	if err := mw.Close(); err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalUnexpected, "failed to build multipart body", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &body)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalUnexpected, "failed to create request", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	return c.send(req)
}

// PostJSON implements ServiceClient.
func (c *APIClient) PostJSON(ctx context.Context, path string, payload any) (*Response, error) {
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalUnexpected, "failed to serialize request payload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalUnexpected, "failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.send(req)
}

// Get implements ServiceClient.
func (c *APIClient) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalUnexpected, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")

	return c.send(req)
}

// send executes the request through BaseClient and reads the body in full.
func (c *APIClient) send(req *http.Request) (*Response, error) {
	resp, err := c.base.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeUpstreamUnavailable, "failed to read response body", err)
	}

	c.logger.DebugContext(req.Context(), "service call completed",
		"service", c.base.Name(),
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"bytes", len(body),
	)

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
