package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client issues requests against a single feed endpoint.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient returns a client for feedURL. A zero timeout leaves the request
// deadline to the transport and the caller's context.
func NewClient(feedURL string, timeout time.Duration) *Client {
	return &Client{
		url:        feedURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// URL returns the endpoint the client talks to.
func (c *Client) URL() string {
	return c.url
}

// Probe sends HEAD to the endpoint. It returns the status code whenever a
// response was received, and a *StatusError for anything outside 2xx.
func (c *Client) Probe(ctx context.Context) (int, error) {
	res, err := c.do(ctx, http.MethodHead)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)

	if !ok(res.StatusCode) {
		return res.StatusCode, &StatusError{Method: http.MethodHead, StatusCode: res.StatusCode}
	}

	return res.StatusCode, nil
}

// Fetch downloads and decodes the post list. Posts are returned in the
// order the endpoint sent them.
func (c *Client) Fetch(ctx context.Context) ([]Post, int, error) {
	res, err := c.do(ctx, http.MethodGet)
	if err != nil {
		return nil, 0, err
	}
	defer res.Body.Close()

	if !ok(res.StatusCode) {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil, res.StatusCode, &StatusError{Method: http.MethodGet, StatusCode: res.StatusCode}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, res.StatusCode, &TransportError{Method: http.MethodGet, URL: c.url, Err: err}
	}

	posts, err := decodePosts(body)
	if err != nil {
		return nil, res.StatusCode, err
	}

	return posts, res.StatusCode, nil
}

func (c *Client) do(ctx context.Context, method string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url, nil)
	if err != nil {
		return nil, &TransportError{Method: method, URL: c.url, Err: err}
	}
	if method == http.MethodGet {
		req.Header.Set("Accept", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, URL: c.url, Err: err}
	}

	return res, nil
}

func decodePosts(body []byte) ([]Post, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &DecodeError{Err: errors.New("body is not a JSON array")}
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, &DecodeError{Err: err}
	}

	posts := make([]Post, len(raw))
	for i, item := range raw {
		if err := json.Unmarshal(item, &posts[i]); err != nil {
			return nil, &DecodeError{Err: fmt.Errorf("post %d: %w", i, err)}
		}
	}

	return posts, nil
}

func ok(status int) bool {
	return status >= 200 && status < 300
}
