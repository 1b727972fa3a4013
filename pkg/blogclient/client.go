// Package blogclient is a small Go client for the blog API. Instead of an
// ambient token store, the token pair lives in an explicit Session created
// by Login and torn down by Logout, and every request is built through it.
package blogclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// APIError is a non-2xx response decoded from the server's `{msg}` body.
type APIError struct {
	StatusCode int
	Msg        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Msg)
}

func (c *Client) Signup(ctx context.Context, name, username, password string) error {
	body := map[string]string{"name": name, "username": username, "password": password}
	return c.post(ctx, "/signup", body, nil)
}

// Login authenticates and returns an initialized Session holding the token
// pair. The Session is the only place the tokens live.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	var out struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
		Name         string `json:"name"`
		Username     string `json:"username"`
	}

	body := map[string]string{"username": username, "password": password}
	if err := c.post(ctx, "/login", body, &out); err != nil {
		return nil, err
	}

	return &Session{
		client:       c,
		accessToken:  out.AccessToken,
		refreshToken: out.RefreshToken,
		name:         out.Name,
		username:     out.Username,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.do(ctx, http.MethodPost, path, body, "", out)
}

func (c *Client) do(ctx context.Context, method, path string, body any, accessToken string, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var msg struct {
			Msg string `json:"msg"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&msg)
		return &APIError{StatusCode: resp.StatusCode, Msg: msg.Msg}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response body: %w", err)
		}
	}
	return nil
}
