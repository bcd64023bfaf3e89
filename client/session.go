package client

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

type SessionUser struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Session is the login state persisted across restarts; admin views
// check it before rendering.
type Session struct {
	User            SessionUser `json:"user"`
	Token           string      `json:"token"`
	IsAuthenticated bool        `json:"isAuthenticated"`
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.IsAuthenticated && s.User.Role == "admin"
}

// RequireRole reports whether a role-gated view may render.
func (s *Session) RequireRole(role string) bool {
	return s != nil && s.IsAuthenticated && s.User.Role == role
}

// SessionStore persists the session as a JSON file, the durable-storage
// analogue of the browser's local storage.
type SessionStore struct {
	Path string
}

func NewSessionStore(path string) *SessionStore { return &SessionStore{Path: path} }

// Load returns nil (not an error) when no session was saved.
func (st *SessionStore) Load() (*Session, error) {
	b, err := os.ReadFile(st.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (st *SessionStore) Save(s *Session) error {
	if err := os.MkdirAll(filepath.Dir(st.Path), 0o755); err != nil {
		return err
	}
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(st.Path, b, 0o600)
}

func (st *SessionStore) Clear() error {
	err := os.Remove(st.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
