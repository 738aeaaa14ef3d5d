// Package api is the HTTP client for the user-directory backend (/api/1.0).
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"userdir-cli/internal/logging"
	"userdir-cli/internal/model"
)

const (
	basePath        = "/api/1.0"
	defaultLanguage = "en"
	maxErrorBody    = 64 << 10
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	language   func() string
	log        logging.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLanguage sets the source of the Accept-Language header; it is consulted on every request.
func WithLanguage(fn func() string) Option {
	return func(c *Client) { c.language = fn }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = logging.OrNop(l) }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: http.DefaultClient,
		log:        logging.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// SignUp registers a new (inactive) account.
func (c *Client) SignUp(ctx context.Context, req model.SignUpRequest) error {
	return c.do(ctx, http.MethodPost, "/users", req, nil)
}

func (c *Client) Activate(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/users/token/"+url.PathEscape(token), nil, nil)
}

// ListUsers fetches one 0-based page of the directory.
func (c *Client) ListUsers(ctx context.Context, page int) (model.PageResult, error) {
	var out model.PageResult
	err := c.do(ctx, http.MethodGet, "/users?page="+strconv.Itoa(page), nil, &out)
	if out.Items == nil {
		out.Items = []model.UserSummary{}
	}
	return out, err
}

func (c *Client) GetUser(ctx context.Context, id int64) (model.UserSummary, error) {
	var out model.UserSummary
	err := c.do(ctx, http.MethodGet, "/users/"+strconv.FormatInt(id, 10), nil, &out)
	return out, err
}

func (c *Client) Login(ctx context.Context, creds model.Credentials) (model.Identity, error) {
	var out model.Identity
	err := c.do(ctx, http.MethodPost, "/auth", creds, &out)
	return out, err
}

func (c *Client) acceptLanguage() string {
	if c.language == nil {
		return defaultLanguage
	}
	if l := strings.TrimSpace(c.language()); l != "" {
		return l
	}
	return defaultLanguage
}

type errorBody struct {
	Message          string            `json:"message"`
	ValidationErrors map[string]string `json:"validationErrors"`
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+basePath+path, rdr)
	if err != nil {
		return &TransportError{Method: method, Path: path, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", c.acceptLanguage())
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warnw("request failed", "method", method, "path", path, "requestId", reqID, "err", err)
		return &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()
	c.log.Debugw("request done", "method", method, "path", path, "status", resp.StatusCode,
		"requestId", reqID, "took", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Method: method, Path: path, Status: resp.StatusCode}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var eb errorBody
		if len(bytes.TrimSpace(raw)) > 0 && json.Unmarshal(raw, &eb) == nil {
			apiErr.Message = eb.Message
			apiErr.ValidationErrors = eb.ValidationErrors
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Method: method, Path: path, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
