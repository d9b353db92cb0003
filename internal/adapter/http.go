package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-minter/internal/logger"
)

// DEFAULT_MAX_RESPONSE_SIZE caps response bodies when no size is configured
const DEFAULT_MAX_RESPONSE_SIZE = 1 << 20

// StatusError is returned when a server answers with a non-2xx status code
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d: %s", e.StatusCode, e.Body)
}

// ErrResponseTooLarge is returned when a response body exceeds the client's cap
var ErrResponseTooLarge = errors.New("response body too large")

// HTTPClient defines an interface for HTTP client operations to enable mocking
//
//go:generate mockgen -source=http.go -destination=../mocks/http.go -package=mocks -mock_names=HTTPClient=MockHTTPClient
type HTTPClient interface {
	// Get performs a GET request and unmarshals the response into result
	Get(ctx context.Context, url string, result interface{}) error

	// Post performs a POST request with the given headers and returns the response body
	Post(ctx context.Context, url string, contentType string, body io.Reader, headers map[string]string) ([]byte, error)
}

// RealHTTPClient implements HTTPClient using the standard http package.
// Requests are issued once; retrying is left to the user.
type RealHTTPClient struct {
	client          *http.Client
	maxResponseSize int64
}

// NewHTTPClient creates a new real HTTP client reading at most maxResponseSize bytes
// of any response body. A non-positive size falls back to DEFAULT_MAX_RESPONSE_SIZE.
func NewHTTPClient(timeout time.Duration, maxResponseSize int64) HTTPClient {
	if maxResponseSize <= 0 {
		maxResponseSize = DEFAULT_MAX_RESPONSE_SIZE
	}
	return &RealHTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		maxResponseSize: maxResponseSize,
	}
}

// do executes the request and returns the body of a 2xx response
func (c *RealHTTPClient) do(req *http.Request) ([]byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.WarnCtx(req.Context(), "failed to close response body", zap.Error(err), zap.String("url", req.URL.String()))
		}
	}()

	// One byte past the cap tells an oversized body apart from one that fits exactly
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, c.maxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(respBody)) > c.maxResponseSize {
		return nil, fmt.Errorf("%w: more than %d bytes from %s", ErrResponseTooLarge, c.maxResponseSize, req.URL.Redacted())
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}

// Get performs a GET request and unmarshals the response into result
func (c *RealHTTPClient) Get(ctx context.Context, url string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	respBody, err := c.do(req)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// Post performs a POST request and returns the response body
func (c *RealHTTPClient) Post(ctx context.Context, url string, contentType string, body io.Reader, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return c.do(req)
}
