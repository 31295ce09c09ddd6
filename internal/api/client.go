// Package api is the HTTP client for the ListingCrew backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"listingcrew/internal/config"
	"listingcrew/internal/content"
)

const (
	pathLogin    = "/api/login"
	pathRegister = "/api/register"
	pathLogout   = "/api/logout"
	pathGenerate = "/api/v1/generate_text"

	maxErrorBody = 64 << 10
)

// Client ListingCrew 后端客户端；不做重试
// Client talks to the ListingCrew backend; it never retries
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient 根据配置创建客户端
// NewClient creates a client from the api config section
func NewClient(cfg config.APIConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Login 调用 POST /api/login
// Login calls POST /api/login
func (c *Client) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	return c.authenticate(ctx, pathLogin, email, password)
}

// Register 调用 POST /api/register
// Register calls POST /api/register
func (c *Client) Register(ctx context.Context, email, password string) (AuthResponse, error) {
	return c.authenticate(ctx, pathRegister, email, password)
}

func (c *Client) authenticate(ctx context.Context, path, email, password string) (AuthResponse, error) {
	var out AuthResponse
	if err := c.postJSON(ctx, path, "", credentialsRequest{Email: email, Password: password}, &out); err != nil {
		return AuthResponse{}, err
	}
	if strings.TrimSpace(out.Token) == "" {
		return AuthResponse{}, fmt.Errorf("%s: missing token: %w", path, ErrMalformedResponse)
	}
	return out, nil
}

// Logout 调用 POST /api/logout，携带 Bearer token
// Logout calls POST /api/logout with the bearer token
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.postJSON(ctx, pathLogout, token, nil, nil)
}

// GenerateText 调用 POST /api/v1/generate_text
// GenerateText calls POST /api/v1/generate_text
func (c *Client) GenerateText(ctx context.Context, token, url string) (content.Generated, error) {
	var out GenerateResponse
	if err := c.postJSON(ctx, pathGenerate, token, generateRequest{URL: url}, &out); err != nil {
		return content.Generated{}, err
	}
	return out, nil
}

func (c *Client) postJSON(ctx context.Context, path, token string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create %s request: %w", path, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send %s request: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{StatusCode: resp.StatusCode, Detail: parseDetail(data)}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w: %v", path, ErrMalformedResponse, err)
	}
	return nil
}
