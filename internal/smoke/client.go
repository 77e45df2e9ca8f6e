// Package smoke drives ad-hoc requests against the deployed API: login,
// authenticated data retrieval, and envelope validation. Every failure is
// classified and carries the raw server response for manual diagnosis.
package smoke

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/minzf581/crypto-intel-engine-sub004/internal/check"
)

const maxBody = 1 << 20

// Client calls the versioned API with bearer-token authorization.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// envelope is the API's uniform response shape.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, payload any) (json.RawMessage, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, check.Wrap(check.KindNetwork, "build request", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, check.Wrap(check.ClassifyNet(err), path+" request failed", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxBody))

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, check.Fail(check.KindAuth,
			fmt.Sprintf("%s returned %d, body: %s", path, resp.StatusCode, raw))
	}
	if resp.StatusCode >= 400 {
		return nil, check.Fail(check.KindInvalidResponse,
			fmt.Sprintf("%s returned %d, body: %s", path, resp.StatusCode, raw))
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, check.Wrap(check.KindInvalidResponse,
			fmt.Sprintf("%s body is not JSON: %s", path, raw), err)
	}
	if !env.Success {
		return nil, check.Fail(check.KindInvalidResponse,
			fmt.Sprintf("%s reported success=false: %s", path, env.Error))
	}
	return env.Data, nil
}

// Login exchanges credentials for a bearer token and stores it on the client.
func (c *Client) Login(ctx context.Context, email, password string) error {
	data, err := c.do(ctx, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"email": email, "password": password})
	if err != nil {
		return err
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &out); err != nil || out.Token == "" {
		return check.Fail(check.KindInvalidResponse, "login response lacks a token")
	}
	c.Token = out.Token
	return nil
}

// GetJSON fetches an authenticated endpoint and returns the data payload.
func (c *Client) GetJSON(ctx context.Context, path string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Checks assembles the API smoke registry: one authenticated call per
// endpoint the app's clients depend on.
func (c *Client) Checks(coin string) check.Registry {
	if coin == "" {
		coin = "BTC"
	}
	get := func(path string) func(ctx context.Context) error {
		return func(ctx context.Context) error {
			_, err := c.GetJSON(ctx, path)
			return err
		}
	}
	return check.Registry{
		check.New("recommended accounts", get("/api/v1/analysis/recommended-accounts/"+coin),
			"Supply a valid bearer token via --token or SMOKE_TOKEN"),
		check.New("signals feed", get("/api/v1/signals"),
			"Supply a valid bearer token via --token or SMOKE_TOKEN"),
		check.New("account search", get("/api/v1/accounts/search?q=whale"),
			"Supply a valid bearer token via --token or SMOKE_TOKEN"),
	}
}
