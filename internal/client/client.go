// Package client is the HTTP transport to the assessment platform API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/SAP-F-2025/assessment-console/internal/errors"
	"github.com/SAP-F-2025/assessment-console/internal/utils"
	"github.com/google/uuid"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "assessment-console"
)

// TokenSource supplies the session token for each request. An empty token
// sends the request unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a fixed token, e.g. API_TOKEN from the environment.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) {
	return string(t), nil
}

// Client performs one HTTP exchange per call; it never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     utils.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the timeout on a copy of the current http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

func WithLogger(l utils.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		tokens:     StaticToken(""),
		logger:     utils.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithTokens returns a shallow copy that authenticates with ts.
func (c *Client) WithTokens(ts TokenSource) *Client {
	cp := *c
	cp.tokens = ts
	return &cp
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.doJSON(ctx, http.MethodGet, path, query, nil, out)
}

// List fetches a collection endpoint into out, a pointer to a slice, accepting
// either a bare array or a {"results": [...]} envelope.
func (c *Client) List(ctx context.Context, path string, query url.Values, out interface{}) error {
	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, path, query, nil, &raw); err != nil {
		return err
	}
	missing, err := decodeCollection(raw, out)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if missing {
		c.logger.WarnContext(ctx, "collection response without results, treating as empty", "path", path)
	}
	return nil
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.doJSON(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.doJSON(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) error {
	return c.doJSON(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil)
}

// DeleteJSON is a DELETE carrying a JSON body, as remove_skill expects.
func (c *Client) DeleteJSON(ctx context.Context, path string, body interface{}) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, body, nil)
}

// Upload posts a multipart form with fields and a single file part.
func (c *Client) Upload(ctx context.Context, path string, fields map[string]string, fileField, fileName string, file io.Reader, out interface{}) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("failed to write field %s: %w", k, err)
		}
	}
	part, err := w.CreateFormFile(fileField, fileName)
	if err != nil {
		return fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to read %s: %w", fileName, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish multipart body: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, path, nil, &buf, w.FormDataContentType())
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeBody(resp, out)
}

// Download streams a successful response body to w.
func (c *Client) Download(ctx context.Context, path string, query url.Values, w io.Writer) error {
	resp, err := c.do(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
		contentType = "application/json"
	}

	resp, err := c.do(ctx, method, path, query, reader, contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeBody(resp, out)
}

// do sends the request and returns the response only for 2xx statuses;
// everything else is mapped to the error taxonomy.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Response, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	requestID := uuid.NewString()
	req.Header.Set(utils.RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "request failed", "request_id", requestID, "method", method, "path", path, "error", err)
		return nil, apperrors.NewUnreachableError(fmt.Errorf("%s %s: %w", method, path, err))
	}

	c.logger.DebugContext(ctx, "api request",
		"request_id", requestID,
		"method", method,
		"path", path,
		"status_code", resp.StatusCode,
		"duration", time.Since(start).String())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, mapError(resp, path)
	}
	return resp, nil
}

func decodeBody(resp *http.Response, out interface{}) error {
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
