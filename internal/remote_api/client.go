// Package remote_api is the HTTP transport to the problem catalogue api.
// Typed endpoints live with the services that use them.
package remote_api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/algodex/internal/algo_errors"
	"github.com/tcp_snm/algodex/internal/metrics"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://0.0.0.0:8000"
	DefaultTimeout = 10 * time.Second

	HeaderRequestID = "X-Request-Id"

	maxErrorBody = 4096
)

type Options struct {
	BaseURL string
	// bearer token forwarded on every request, empty disables
	Token   string
	Timeout time.Duration
	// requests per second, zero disables client side limiting
	RPS     float64
	Burst   int
	Metrics *metrics.Metrics
	// HTTPClient overrides the default client, mostly for tests
	HTTPClient *http.Client
}

type Client struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *metrics.Metrics
}

func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w, invalid remote api base url %q, %w", algo_errors.ErrInvalidInput, opts.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w, remote api base url %q must be absolute", algo_errors.ErrInvalidInput, opts.BaseURL)
	}

	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	var limiter *rate.Limiter
	if opts.RPS > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RPS), burst)
	}

	return &Client{
		baseURL:    base,
		token:      opts.Token,
		httpClient: httpClient,
		limiter:    limiter,
		metrics:    opts.Metrics,
	}, nil
}

// BaseURL returns the api root requests are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) Get(ctx context.Context, operation, path string, out any) error {
	return c.Do(ctx, operation, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, operation, path string, body, out any) error {
	return c.Do(ctx, operation, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, operation, path string, body, out any) error {
	return c.Do(ctx, operation, http.MethodPut, path, body, out)
}

func (c *Client) Delete(ctx context.Context, operation, path string) error {
	return c.Do(ctx, operation, http.MethodDelete, path, nil, nil)
}

// Do sends one request and decodes a successful JSON response into out.
// out may be nil when the response body is not needed.
func (c *Client) Do(
	ctx context.Context,
	operation, method, path string,
	body, out any,
) (err error) {
	start := time.Now()
	status := 0
	defer func() {
		c.metrics.ObserveRemoteRequest(operation, status, time.Since(start))
	}()

	if c.limiter != nil {
		if err = c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w, rate limiter wait for %s, %w", algo_errors.ErrInternal, operation, err)
		}
	}

	var reader io.Reader = http.NoBody
	if body != nil {
		payload, marshalErr := json.Marshal(body)
		if marshalErr != nil {
			err = fmt.Errorf("%w, cannot marshal %s request, %w", algo_errors.ErrInternal, operation, marshalErr)
			log.Error(err)
			return err
		}
		reader = bytes.NewReader(payload)
	}

	requestID := uuid.NewString()
	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path), reader)
	if err != nil {
		return fmt.Errorf("%w, create %s request, %w", algo_errors.ErrInternal, operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, requestID)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	logger := log.WithFields(log.Fields{
		"operation":  operation,
		"method":     method,
		"path":       path,
		"request_id": requestID,
	})
	logger.Debug("calling remote api")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w, %s cancelled, %w", algo_errors.ErrInternal, operation, err)
		}
		err = algo_errors.WrapIPCError(err)
		logger.Error(err)
		return err
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		remoteErr := &algo_errors.RemoteError{
			StatusCode: resp.StatusCode,
			Message:    decodeErrorDetail(data),
		}
		return algo_errors.HandleRemoteError(remoteErr, fmt.Sprintf("failed to %s", operation))
	}

	if out == nil {
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			// empty body on success, nothing to decode
			return nil
		}
		err = fmt.Errorf("%w, cannot decode %s response, %w", algo_errors.ErrRemoteApi, operation, err)
		logger.Error(err)
		return err
	}
	return nil
}

func (c *Client) resolve(path string) string {
	return c.baseURL.String() + "/" + strings.TrimLeft(path, "/")
}

// decodeErrorDetail extracts the message of an error body shaped like
// {"detail": {"message": "..."}}, {"detail": {"error": "..."}} or
// {"detail": "..."}, falling back to the raw body.
func decodeErrorDetail(data []byte) string {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return ""
	}

	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil || len(envelope.Detail) == 0 {
		return trimmed
	}

	var text string
	if err := json.Unmarshal(envelope.Detail, &text); err == nil {
		return text
	}

	var detail struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(envelope.Detail, &detail); err == nil {
		if detail.Message != "" {
			return detail.Message
		}
		if detail.Error != "" {
			return detail.Error
		}
	}
	return trimmed
}

// PathEscape escapes a single path segment such as a slug or category name.
func PathEscape(segment string) string {
	return url.PathEscape(segment)
}
