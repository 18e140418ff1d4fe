package taskflowsdk

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// Session is an authenticated user. Access tokens are refreshed
// transparently shortly before they expire. Safe for concurrent use.
type Session struct {
	client *Client

	mu           sync.RWMutex
	user         User
	accessToken  string
	refreshToken string
	expiresAt    time.Time
}

const refreshBuffer = 30 * time.Second

func newSession(c *Client, auth AuthResponse) *Session {
	return &Session{
		client:       c,
		user:         auth.User,
		accessToken:  auth.AccessToken,
		refreshToken: auth.RefreshToken,
		expiresAt:    expiry(auth.ExpiresIn),
	}
}

// NewSessionFromTokens resumes a session from stored tokens.
func (c *Client) NewSessionFromTokens(accessToken, refreshToken string, expiresIn int) *Session {
	return &Session{
		client:       c,
		accessToken:  accessToken,
		refreshToken: refreshToken,
		expiresAt:    expiry(expiresIn),
	}
}

func expiry(expiresIn int) time.Time {
	return time.Now().Add(time.Duration(expiresIn)*time.Second - refreshBuffer)
}

// User is the account the session was opened for. It is empty for sessions
// resumed from tokens until Me is called.
func (s *Session) User() User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// Refresh rotates the token pair now.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshLocked(ctx)
}

func (s *Session) refreshLocked(ctx context.Context) error {
	if s.refreshToken == "" {
		return fmt.Errorf("access token expired and no refresh token available")
	}
	tok, err := s.client.Refresh(ctx, s.refreshToken)
	if err != nil {
		return fmt.Errorf("failed to refresh token: %w", err)
	}
	s.accessToken = tok.AccessToken
	s.refreshToken = tok.RefreshToken
	s.expiresAt = expiry(tok.ExpiresIn)
	return nil
}

func (s *Session) validToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	if time.Now().Before(s.expiresAt) {
		token := s.accessToken
		s.mu.RUnlock()
		return token, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if time.Now().Before(s.expiresAt) {
		return s.accessToken, nil
	}
	if err := s.refreshLocked(ctx); err != nil {
		return "", err
	}
	return s.accessToken, nil
}

// Logout revokes the refresh token. The session is unusable afterwards.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	refresh := s.refreshToken
	s.refreshToken = ""
	s.expiresAt = time.Time{}
	s.mu.Unlock()
	return s.client.Logout(ctx, refresh)
}

func call[T any](ctx context.Context, s *Session, method, path string, body any, expected int) (T, error) {
	var zero T
	token, err := s.validToken(ctx)
	if err != nil {
		return zero, err
	}
	resp, err := s.client.do(ctx, method, path, token, body)
	if err != nil {
		return zero, err
	}
	return decode[T](resp, expected)
}

// ============================================================================
// Profile
// ============================================================================

func (s *Session) Me(ctx context.Context) (*User, error) {
	u, err := call[User](ctx, s, http.MethodGet, "/v1/auth/me", nil, http.StatusOK)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
	return &u, nil
}

func (s *Session) UpdateProfile(ctx context.Context, name string) (*User, error) {
	u, err := call[User](ctx, s, http.MethodPut, "/v1/auth/update-profile", UpdateProfileRequest{Name: name}, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
