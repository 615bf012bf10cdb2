// Package backend is the HTTP client for the Codesage REST API. The gateway
// never talks to a database; everything it shows or mutates goes through
// these calls.
package backend

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
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/Pravin-Jalodiya/codesage-web/internal/app/observability/metrics"
)

// Sentinel errors mapped from the distinguished application codes. Callers
// match with errors.Is and translate into the corresponding redirect.
var (
	// ErrUnauthorized means the backend rejected the bearer token. The
	// session must be torn down and the caller sent to the login route.
	ErrUnauthorized = errors.New("backend: unauthorized")

	// ErrForbidden means the token is fine but the role is not allowed to
	// perform the operation.
	ErrForbidden = errors.New("backend: forbidden")
)

// APIError carries the backend's application code and human-readable message
// for any non-success envelope.
type APIError struct {
	HTTPStatus int
	Code       int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Unwrap maps the distinguished codes onto the sentinels so that
// errors.Is(err, ErrUnauthorized) works on any wrapped APIError.
func (e *APIError) Unwrap() error {
	switch e.Code {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	}
	return nil
}

// Client talks to the Codesage backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// envelope is the minimal decode used to pull code/message out of every
// response before the caller-specific payload decode.
type envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// do performs a JSON request against the backend and decodes the response
// into out. Authorization and Accept headers are attached for every call
// that carries a token; login and signup pass token == "".
func (c *Client) do(ctx context.Context, method, path string, query url.Values, token string, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "marshal request")
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.observe(ctx, method, path, start, err)
	if err != nil {
		c.logger.Error("Backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return errors.Wrap(err, "backend request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read response")
	}

	c.logger.Debug("Backend response",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return errors.Wrapf(err, "parse response (status %d)", resp.StatusCode)
	}

	if apiErr := c.checkEnvelope(resp.StatusCode, env); apiErr != nil {
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return errors.Wrap(err, "decode response payload")
		}
	}
	return nil
}

// observe feeds the call into the backend latency and error instruments.
func (c *Client) observe(ctx context.Context, method, path string, start time.Time, err error) {
	m := metrics.Get()
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("path", path),
	)
	m.BackendCallDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	if err != nil {
		m.BackendCallErrorsTotal.Add(ctx, 1, attrs)
	}
}

// checkEnvelope turns error envelopes into APIError. The application code
// wins over the HTTP status when both are present; some backend revisions
// return 200 with an error code in the body.
func (c *Client) checkEnvelope(httpStatus int, env envelope) *APIError {
	code := env.Code
	if code == 0 {
		code = httpStatus
	}
	if code >= 200 && code < 300 {
		return nil
	}
	return &APIError{
		HTTPStatus: httpStatus,
		Code:       code,
		Message:    env.Message,
	}
}
