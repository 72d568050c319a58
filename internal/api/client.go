// Package api is the gateway to the LMS HTTP API: one method per remote
// operation, each mapping the response to typed records.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "https://localhost:44340/api"

type Config struct {
	BaseURL string
	Timeout time.Duration
	// Tokens supplies the bearer token per request; an empty access token
	// sends the request unauthenticated. Usually a *session.Store.
	Tokens oauth2.TokenSource
	// Transport defaults to http.DefaultTransport.
	Transport http.RoundTripper
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(cfg Config) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	rt := cfg.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}
	if cfg.Tokens != nil {
		rt = &bearerTransport{src: cfg.Tokens, base: rt}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{baseURL: base, http: &http.Client{Transport: rt, Timeout: timeout}}
}

// bearerTransport attaches "Authorization: Bearer <token>" when the source
// holds a token.
type bearerTransport struct {
	src  oauth2.TokenSource
	base http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	tok, err := t.src.Token()
	if err != nil {
		return nil, err
	}
	if tok == nil || tok.AccessToken == "" {
		return t.base.RoundTrip(req)
	}
	r2 := req.Clone(req.Context())
	tok.SetAuthHeader(r2)
	return t.base.RoundTrip(r2)
}

// do sends in as JSON (when non-nil) and decodes the response into out (when
// non-nil). op is the display text used for failures.
func (c *Client) do(ctx context.Context, op, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return &RequestError{Op: op, Err: err}
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &RequestError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		glog.V(1).Infof("%s %s failed after %s (request_id=%s): %v", method, path, time.Since(start), reqID, err)
		return &RequestError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	glog.V(1).Infof("%s %s -> %d in %s (request_id=%s)", method, path, resp.StatusCode, time.Since(start), reqID)

	if resp.StatusCode/100 != 2 {
		return httpErr(op, resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RequestError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}
	return nil
}
