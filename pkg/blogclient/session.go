package blogclient

import (
	"context"
	"errors"
	"sync"
)

// ErrSessionClosed is returned when a request is made through a session that
// has already been logged out.
var ErrSessionClosed = errors.New("session is closed")

// Session holds the access/refresh token pair for one logged-in user. It is
// created by Client.Login and invalidated by Logout; requests built through
// it carry the current access token.
type Session struct {
	client *Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string
	name         string
	username     string
	closed       bool
}

func (s *Session) Username() string { return s.username }
func (s *Session) Name() string     { return s.name }

// Refresh exchanges the stored refresh token for a new access token and
// swaps it in place. The refresh token itself does not change.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	refreshToken := s.refreshToken
	s.mu.Unlock()

	var out struct {
		AccessToken string `json:"accessToken"`
	}
	if err := s.client.post(ctx, "/token", map[string]string{"token": refreshToken}, &out); err != nil {
		return err
	}

	s.mu.Lock()
	s.accessToken = out.AccessToken
	s.mu.Unlock()
	return nil
}

// Logout revokes the refresh token server-side and tears the session down.
// After Logout every call through the session fails with ErrSessionClosed.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	refreshToken := s.refreshToken
	s.mu.Unlock()

	if err := s.client.post(ctx, "/logout", map[string]string{"token": refreshToken}, nil); err != nil {
		return err
	}

	s.mu.Lock()
	s.closed = true
	s.accessToken = ""
	s.refreshToken = ""
	s.mu.Unlock()
	return nil
}

// Do issues an authenticated request with the session's current access token.
func (s *Session) Do(ctx context.Context, method, path string, body any, out any) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	accessToken := s.accessToken
	s.mu.Unlock()

	return s.client.do(ctx, method, path, body, accessToken, out)
}
