package api

import (
	"context"
	"fmt"
	"log/slog"

	"finview/internal/core"
)

// SessionWriter is the slice of the session store the auth service needs.
type SessionWriter interface {
	Save(token string, user core.User) error
	Clear() error
}

// AuthService wraps the /auth endpoints. Login is the only operation with a
// side effect beyond the network call: it persists the returned credential.
type AuthService struct {
	c        *Client
	sessions SessionWriter
}

func NewAuthService(c *Client, sessions SessionWriter) *AuthService {
	return &AuthService{c: c, sessions: sessions}
}

// Login authenticates and, on success, persists the session. Nothing is
// stored on failure.
func (s *AuthService) Login(ctx context.Context, email, password string) (core.Session, error) {
	var sess core.Session
	body := map[string]string{"email": email, "password": password}
	if err := s.c.post(ctx, "/auth/login", body, &sess); err != nil {
		return core.Session{}, err
	}
	if err := s.sessions.Save(sess.Token, sess.User); err != nil {
		return core.Session{}, fmt.Errorf("persist session: %w", err)
	}
	slog.InfoContext(ctx, "Login succeeded",
		"component", "api_client", "operation", "login", "user_email", sess.User.Email)
	return sess, nil
}

// Register creates an account. The credential is not persisted; the user
// signs in afterwards.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (core.Session, error) {
	var sess core.Session
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := s.c.post(ctx, "/auth/register", body, &sess); err != nil {
		return core.Session{}, err
	}
	return sess, nil
}

// Logout clears the stored session unconditionally. No network call.
func (s *AuthService) Logout() error {
	return s.sessions.Clear()
}

// UpdateProfile updates the account's name and email, refreshing the stored
// user record so the navigation greeting stays current.
func (s *AuthService) UpdateProfile(ctx context.Context, token string, name, email string) (core.User, error) {
	var user core.User
	body := map[string]string{"name": name, "email": email}
	if err := s.c.put(ctx, "/auth/profile", body, &user); err != nil {
		return core.User{}, err
	}
	if token != "" {
		if err := s.sessions.Save(token, user); err != nil {
			return core.User{}, fmt.Errorf("refresh stored user: %w", err)
		}
	}
	return user, nil
}

// ChangePassword swaps the account password. The session stays valid.
func (s *AuthService) ChangePassword(ctx context.Context, current, newPassword string) error {
	body := map[string]string{"currentPassword": current, "newPassword": newPassword}
	return s.c.put(ctx, "/auth/password", body, nil)
}
