// Package session persists the login credential and user record so a
// restart keeps the user signed in. It is the single source of truth for
// "is logged in"; nothing here validates the token against the backend.
package session

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"finview/internal/core"
)

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the session database and runs migrations.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save stores the session, replacing any previous one.
func (s *Store) Save(token string, user core.User) error {
	if token == "" {
		return errors.New("empty session token")
	}
	_, err := s.db.Exec(`
		INSERT INTO session (id, token, user_id, user_name, user_email)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			token = excluded.token,
			user_id = excluded.user_id,
			user_name = excluded.user_name,
			user_email = excluded.user_email`,
		token, user.ID, user.Name, user.Email)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	slog.Info("Session saved", "component", "session", "user_email", user.Email)
	return nil
}

// Current returns the stored session, or nil when none exists.
func (s *Store) Current() (*core.Session, error) {
	row := s.db.QueryRow(`SELECT token, user_id, user_name, user_email FROM session WHERE id = 1`)
	var sess core.Session
	err := row.Scan(&sess.Token, &sess.User.ID, &sess.User.Name, &sess.User.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	return &sess, nil
}

// Clear removes the stored session. Clearing an empty store is not an error.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM session WHERE id = 1`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	slog.Info("Session cleared", "component", "session")
	return nil
}

// IsAuthenticated reports whether a token is stored. It performs no backend
// validation; an expired token surfaces only when a later call fails with an
// authorization error.
func (s *Store) IsAuthenticated() bool {
	sess, err := s.Current()
	return err == nil && sess != nil && sess.Token != ""
}

// Token returns the stored credential, or "" when logged out. Implements the
// api client's token source.
func (s *Store) Token() string {
	sess, err := s.Current()
	if err != nil || sess == nil {
		return ""
	}
	return sess.Token
}
