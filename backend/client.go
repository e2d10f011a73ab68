// Package backend talks to the chat service. A request carries the user's
// message as the q query parameter and expects
// {"success": true, "result": {"message": "..."}} back.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"chatterm/log"
)

const (
	DefaultTimeout = 30 * time.Second
	askPath        = "/api/chatgpt/"
	// maxBodyBytes caps how much of a response is read.
	maxBodyBytes = 4 << 20
)

// Asker answers one user message.
type Asker interface {
	Ask(ctx context.Context, query string) (string, error)
}

type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

type Option func(*Client)

// WithHTTPClient replaces the HTTP client. Its transport is wrapped so
// requests still show up in the activity log.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds each request. Zero keeps DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// New returns a client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	transport := c.http.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	wrapped := *c.http
	wrapped.Transport = &activityTransport{next: transport}
	c.http = &wrapped
	return c
}

type askResponse struct {
	Success bool `json:"success"`
	Result  *struct {
		Message string `json:"message"`
	} `json:"result"`
}

// Ask sends query and returns the assistant's reply. Every failure is an
// *Error.
func (c *Client) Ask(ctx context.Context, query string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + askPath + "?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", &Error{Kind: KindUnknown, Err: fmt.Errorf("failed to build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", classifyTransport(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return "", classifyStatus(resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", classifyTransport(ctx, err)
	}

	var decoded askResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", &Error{Kind: KindMalformed, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if !decoded.Success || decoded.Result == nil || decoded.Result.Message == "" {
		return "", &Error{Kind: KindMalformed, Err: errors.New("response has no message")}
	}
	return decoded.Result.Message, nil
}

func classifyTransport(ctx context.Context, err error) *Error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded), errors.Is(err, context.DeadlineExceeded):
		return &Error{Kind: KindTimeout, Err: err}
	case errors.Is(err, context.Canceled):
		return &Error{Kind: KindCanceled, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindTimeout, Err: err}
	}
	return &Error{Kind: KindNetwork, Err: err}
}

// activityTransport reports every round trip to the activity log.
type activityTransport struct {
	next http.RoundTripper
}

func (t *activityTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	entry := log.Request{
		Method:  req.Method,
		URL:     redactQuery(req.URL),
		Elapsed: time.Since(start),
		Err:     err,
	}
	if resp != nil {
		entry.Status = resp.StatusCode
	}
	log.LogBackendRequest(entry, "backend")
	return resp, err
}

// redactQuery keeps the user's message out of the logs.
func redactQuery(u *url.URL) string {
	clean := *u
	if clean.RawQuery != "" {
		clean.RawQuery = "q=…"
	}
	return clean.String()
}
