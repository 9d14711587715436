// Package api is the HTTP client for the codecheck backend: identity,
// logout, repository and directory listings, file content, and code
// submission.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/zhubert/codecheck/internal/config"
	"github.com/zhubert/codecheck/internal/errors"
	"github.com/zhubert/codecheck/internal/logger"
)

// RequestIDHeader carries a per-request id that also appears in the log.
const RequestIDHeader = "X-Request-ID"

// maxDetailLen bounds how much of an error body is surfaced to the user.
const maxDetailLen = 200

// Client talks to one backend. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// New creates a client for the configured server, seeding its cookie jar
// with the configured session cookie.
func New(cfg *config.Config) (*Client, error) {
	base := cfg.GetServerURL()
	u, err := url.Parse(base)
	if err != nil {
		return nil, errors.E(errors.Op("api.New"), errors.KindConfig, "invalid server URL", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.E(errors.Op("api.New"), errors.KindConfig, err)
	}
	name, value := cfg.GetSessionCookie()
	if name == "" {
		name = config.DefaultCookieName
	}
	if value != "" {
		jar.SetCookies(u, []*http.Cookie{{Name: name, Value: value, Path: "/"}})
	}

	hc := &http.Client{
		Timeout:   cfg.RequestTimeout(),
		Jar:       jar,
		Transport: &headerTransport{base: http.DefaultTransport},
	}
	return NewWithClient(base, hc), nil
}

// NewWithClient creates a client with a custom HTTP client and base URL (for testing).
func NewWithClient(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Transport: &headerTransport{base: http.DefaultTransport}}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: hc,
		log:        logger.WithComponent("api"),
	}
}

// BaseURL returns the server the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// headerTransport adds the headers every backend call carries.
type headerTransport struct {
	base http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	if r.Header.Get(RequestIDHeader) == "" {
		r.Header.Set(RequestIDHeader, uuid.NewString())
	}
	if r.Header.Get("Accept") == "" {
		r.Header.Set("Accept", "application/json")
	}
	r.Header.Set("User-Agent", "codecheck")
	return t.base.RoundTrip(r)
}

// StatusError is a non-success response from a reachable endpoint.
type StatusError struct {
	StatusCode int
	Detail     string // server-provided message or a trimmed body excerpt
}

func (e *StatusError) Error() string {
	text := fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if e.Detail != "" {
		return text + ": " + e.Detail
	}
	return text
}

// StatusCode returns the HTTP status of a StatusError in err's chain, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// do sends one request and returns the body of a 2xx response. Transport
// failures are KindNetwork, non-2xx answers are KindStatus.
func (c *Client) do(ctx context.Context, op errors.Op, method, path string, query url.Values, body any) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.E(op, errors.KindInvalid, "failed to encode request", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, errors.E(op, errors.KindInvalid, "failed to create request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	log := c.log.With("request_id", requestID, "method", method, "path", path)
	log.Debug("request sent")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("request failed", "error", err)
		return nil, errors.E(op, errors.KindNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn("failed to read response body", "status", resp.StatusCode, "error", err)
		return nil, errors.E(op, errors.KindNetwork, "failed to read response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{StatusCode: resp.StatusCode, Detail: detailFromBody(data)}
		log.Warn("unexpected status", "status", resp.StatusCode, "detail", se.Detail)
		return nil, errors.E(op, errors.KindStatus, se)
	}

	log.Debug("response received", "status", resp.StatusCode, "bytes", len(data))
	return data, nil
}

// detailFromBody extracts a human-readable message from an error body: the
// "message" or "error" field of a JSON object, otherwise the trimmed text.
func detailFromBody(data []byte) string {
	var obj struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(data, &obj) == nil {
		if obj.Message != "" {
			return truncate(obj.Message)
		}
		if obj.Error != "" {
			return truncate(obj.Error)
		}
	}
	text := strings.TrimSpace(string(data))
	if text == "" || text == "[]" || text == "{}" {
		return ""
	}
	return truncate(text)
}

func truncate(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= maxDetailLen {
		return s
	}
	return s[:maxDetailLen] + "..."
}
