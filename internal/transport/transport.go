// Package transport performs the HTTP calls against the Toggl API.
//
// The rest of the program talks to the Caller interface; endpoints are paths
// relative to the configured API base, possibly with a query string already
// attached. Each call is a single attempt: no retries, non-2xx statuses are
// surfaced as errors unmodified.
package transport

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/swcurran/toggl-cli/internal/errors"
)

// Caller executes one request against the remote store and returns the raw
// response body.
type Caller interface {
	Call(ctx context.Context, method, endpoint string, body []byte) ([]byte, error)
}

// Client implements Caller using the Toggl API with token basic auth.
type Client struct {
	baseURL  string
	apiToken string
	http     *http.Client
	log      *slog.Logger
}

// NewClient creates a transport client. baseURL should include the API
// version prefix, e.g. https://api.track.toggl.com/api/v8.
func NewClient(baseURL, apiToken string, log *slog.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiToken: apiToken,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

func (c *Client) Call(ctx context.Context, method, endpoint string, body []byte) ([]byte, error) {
	if c.apiToken == "" {
		return nil, errors.ErrMissingToken
	}

	url := c.baseURL + endpoint
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, &errors.TransportError{Method: method, Endpoint: endpoint, Cause: err}
	}

	// Basic auth: api_token as username, literal "api_token" as password.
	auth := base64.StdEncoding.EncodeToString([]byte(c.apiToken + ":api_token"))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("toggl api call", "method", method, "endpoint", endpoint)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &errors.TransportError{Method: method, Endpoint: endpoint, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &errors.TransportError{
			Method:   method,
			Endpoint: endpoint,
			Status:   resp.StatusCode,
			Body:     string(msg),
		}
	}

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errors.TransportError{Method: method, Endpoint: endpoint, Cause: err}
	}
	return out, nil
}
