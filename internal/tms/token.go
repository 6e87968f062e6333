package tms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"shipdesk/internal/config"
)

// expiryMargin is subtracted from the upstream-declared token lifetime so the
// token is refreshed before it can expire mid-request.
const expiryMargin = 60 * time.Second

const tokenPath = "/v1/oauth/token"

// TokenProvider supplies a valid bearer token for upstream calls.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// TokenSource holds the single process-wide cached bearer token and refreshes
// it from the upstream password-grant endpoint when missing or expired.
//
// The mutex is held across the refresh call, so concurrent callers arriving
// at expiry block on one refresh instead of each issuing their own.
type TokenSource struct {
	cfg  config.TMSConfig
	http *http.Client
	now  func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewTokenSource builds a TokenSource using the given HTTP client for the
// auth endpoint.
func NewTokenSource(cfg config.TMSConfig, hc *http.Client) *TokenSource {
	return &TokenSource{
		cfg:  cfg,
		http: hc,
		now:  time.Now,
	}
}

// Token returns the cached bearer token if its expiry is still in the future,
// otherwise performs one refresh call and caches the result.
func (s *TokenSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && s.expiresAt.After(s.now()) {
		return s.token, nil
	}
	return s.refresh(ctx)
}

// refresh calls the password-grant endpoint. client_id/client_secret travel
// as query parameters and the API key as a header; that is the upstream's
// contract, not standard OAuth2.
func (s *TokenSource) refresh(ctx context.Context) (string, error) {
	u, err := url.Parse(s.cfg.BaseURL + tokenPath)
	if err != nil {
		return "", fmt.Errorf("parse token url: %w", err)
	}
	q := u.Query()
	q.Set("client_id", s.cfg.ClientID)
	q.Set("client_secret", s.cfg.ClientSecret)
	u.RawQuery = q.Encode()

	body, err := json.Marshal(map[string]string{
		"grant_type": "password",
		"username":   s.cfg.Username,
		"password":   s.cfg.Password,
		"scope":      "read+trust+write",
	})
	if err != nil {
		return "", fmt.Errorf("marshal token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", s.cfg.APIKey)

	resp, err := s.http.Do(req)
	if err != nil {
		s.clear()
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.clear()
		return "", &AuthError{Status: resp.StatusCode}
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		s.clear()
		return "", fmt.Errorf("decode token response: %w", err)
	}

	s.token = tr.AccessToken
	s.expiresAt = s.now().Add(time.Duration(tr.ExpiresIn)*time.Second - expiryMargin)
	return s.token, nil
}

func (s *TokenSource) clear() {
	s.token = ""
	s.expiresAt = time.Time{}
}
