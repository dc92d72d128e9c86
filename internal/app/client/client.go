package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finki-emc/aas-client/internal/pkg/apperrors"
	"github.com/finki-emc/aas-client/internal/pkg/logger"
)

// TokenSource returns the current bearer token, or "" when not logged in.
// It is read fresh on every request.
type TokenSource func() string

// Client is the shared HTTP adapter. It attaches the bearer token to every
// outgoing request and performs no retries, caching or payload transformation.
type Client struct {
	baseURL string
	http    *http.Client
	token   TokenSource
}

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// New creates a Client for the given API base URL
func New(baseURL string, token TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		token:   token,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured API base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetJSON issues a GET request and decodes the JSON response into out
func (c *Client) GetJSON(ctx context.Context, endpoint string, out interface{}) error {
	return c.doJSON(ctx, http.MethodGet, endpoint, nil, out)
}

// PostJSON issues a POST request with a JSON body and decodes the response into out.
// out may be nil when the response body is not needed.
func (c *Client) PostJSON(ctx context.Context, endpoint string, body, out interface{}) error {
	return c.doJSON(ctx, http.MethodPost, endpoint, body, out)
}

// PutJSON issues a PUT request with a JSON body and decodes the response into out
func (c *Client) PutJSON(ctx context.Context, endpoint string, body, out interface{}) error {
	return c.doJSON(ctx, http.MethodPut, endpoint, body, out)
}

// Delete issues a DELETE request
func (c *Client) Delete(ctx context.Context, endpoint string) error {
	return c.doJSON(ctx, http.MethodDelete, endpoint, nil, nil)
}

// GetBlob issues a GET request and returns the raw response body.
// Used for CSV downloads; the caller is responsible for saving the bytes.
func (c *Client) GetBlob(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil, "")
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.NewTransportError(http.MethodGet, endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewTransportError(http.MethodGet, endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.NewStatusError(http.MethodGet, endpoint, resp.StatusCode, string(data))
	}

	return data, nil
}

// PostMultipart uploads a single file as multipart form data and decodes the
// JSON response into out when out is non-nil
func (c *Client) PostMultipart(ctx context.Context, endpoint, field, filename string, data []byte, out interface{}) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return apperrors.NewTransportError(http.MethodPost, endpoint, err)
	}
	if _, err := part.Write(data); err != nil {
		return apperrors.NewTransportError(http.MethodPost, endpoint, err)
	}
	if err := writer.Close(); err != nil {
		return apperrors.NewTransportError(http.MethodPost, endpoint, err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, endpoint, &buf, writer.FormDataContentType())
	if err != nil {
		return err
	}

	return c.execute(req, endpoint, out)
}

// doJSON performs a request with an optional JSON body
func (c *Client) doJSON(ctx context.Context, method, endpoint string, body, out interface{}) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apperrors.NewTransportError(method, endpoint, err)
		}
		reader = bytes.NewReader(encoded)
		contentType = "application/json"
	}

	req, err := c.newRequest(ctx, method, endpoint, reader, contentType)
	if err != nil {
		return err
	}

	return c.execute(req, endpoint, out)
}

// newRequest builds a request with the bearer token and a correlation id
func (c *Client) newRequest(ctx context.Context, method, endpoint string, body io.Reader, contentType string) (*http.Request, error) {
	url := c.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, apperrors.NewTransportError(method, endpoint, err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	// Token is read fresh per request; login/logout between calls takes effect immediately
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}

// execute sends the request and decodes a JSON response into out when non-nil
func (c *Client) execute(req *http.Request, endpoint string, out interface{}) error {
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.NewTransportError(req.Method, endpoint, err)
	}
	defer resp.Body.Close()

	logger.Debug().
		Str("method", req.Method).
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("API request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return apperrors.NewStatusError(req.Method, endpoint, resp.StatusCode, string(body))
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.NewDecodeError(req.Method, endpoint, fmt.Errorf("decoding %T: %w", out, err))
	}

	return nil
}
