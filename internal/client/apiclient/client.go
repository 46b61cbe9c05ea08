// Package apiclient talks to the tracker HTTP API on behalf of the CLI. It
// keeps the token pair of the current session and transparently refreshes
// an expired access token once per call.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/climatetracker/internal/client/models"
	"github.com/dmitrijs2005/climatetracker/internal/common"
	"github.com/dmitrijs2005/climatetracker/internal/insight"
)

// tokenExpiredMessage is the server's error text for an expired access token.
const tokenExpiredMessage = "token expired"

type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

func New(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid server address %q", baseURL)
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}, nil
}

func (c *HTTPClient) tokens() (string, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken, c.refreshToken
}

func (c *HTTPClient) setTokens(p *models.TokenPair) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p == nil {
		c.accessToken, c.refreshToken = "", ""
		return
	}
	c.accessToken, c.refreshToken = p.AccessToken, p.RefreshToken
}

// LoggedIn reports whether a session token is held.
func (c *HTTPClient) LoggedIn() bool {
	access, _ := c.tokens()
	return access != ""
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/ping", "", nil, nil)
}

func (c *HTTPClient) Register(ctx context.Context, username string, password []byte) error {
	return c.do(ctx, http.MethodPost, "/api/users/register", "", credentials(username, password), nil)
}

// Login authenticates and keeps the returned token pair for later calls.
func (c *HTTPClient) Login(ctx context.Context, username string, password []byte) error {
	var pair models.TokenPair
	if err := c.do(ctx, http.MethodPost, "/api/users/login", "", credentials(username, password), &pair); err != nil {
		return err
	}
	c.setTokens(&pair)
	return nil
}

// Logout forgets the current session.
func (c *HTTPClient) Logout() {
	c.setTokens(nil)
}

func (c *HTTPClient) Preview(ctx context.Context, u insight.Usage) (*insight.Assessment, error) {
	var a insight.Assessment
	if err := c.authorized(ctx, http.MethodPost, "/api/emissions/preview", u, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *HTTPClient) Calculate(ctx context.Context, u insight.Usage) (*models.Report, error) {
	var r models.Report
	if err := c.authorized(ctx, http.MethodPost, "/api/emissions", u, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *HTTPClient) History(ctx context.Context) ([]float64, error) {
	var out struct {
		History []float64 `json:"history"`
	}
	if err := c.authorized(ctx, http.MethodGet, "/api/emissions/history", nil, &out); err != nil {
		return nil, err
	}
	return out.History, nil
}

func (c *HTTPClient) Leaderboard(ctx context.Context) ([]models.RankEntry, error) {
	var out struct {
		Ranking []models.RankEntry `json:"ranking"`
	}
	if err := c.authorized(ctx, http.MethodGet, "/api/leaderboard", nil, &out); err != nil {
		return nil, err
	}
	return out.Ranking, nil
}

func (c *HTTPClient) Prediction(ctx context.Context) (*models.Prediction, error) {
	var p models.Prediction
	if err := c.authorized(ctx, http.MethodGet, "/api/prediction", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) Export(ctx context.Context) (*models.ExportResult, error) {
	var r models.ExportResult
	if err := c.authorized(ctx, http.MethodPost, "/api/emissions/export", nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// authorized performs a bearer-authenticated call. When the access token has
// expired it rotates the token pair and retries once.
func (c *HTTPClient) authorized(ctx context.Context, method, path string, in, out any) error {
	access, refresh := c.tokens()
	if access == "" {
		return ErrNotLoggedIn
	}

	err := c.do(ctx, method, path, access, in, out)

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized ||
		apiErr.Message != tokenExpiredMessage || refresh == "" {
		return err
	}

	var pair models.TokenPair
	if err := c.do(ctx, http.MethodPost, "/api/users/refresh", "", map[string]string{"refresh_token": refresh}, &pair); err != nil {
		c.setTokens(nil)
		return err
	}
	c.setTokens(&pair)

	return c.do(ctx, method, path, pair.AccessToken, in, out)
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func credentials(username string, password []byte) map[string]string {
	return map[string]string{"username": username, "password": string(password)}
}
