package client

import (
	"encoding/json"
	"errors"
	"os"
	"time"
)

// Session is the authentication context for API calls. It is an explicit
// value handed to the Client rather than process-global state, so two
// sessions can coexist in one process.
type Session struct {
	BaseURL   string    `json:"base_url"`
	Token     string    `json:"token,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoggedIn reports whether the session carries a token.
func (s *Session) LoggedIn() bool {
	return s.Token != ""
}

// Clear drops the credential but keeps the endpoint.
func (s *Session) Clear() {
	s.Token = ""
	s.UserID = ""
	s.UpdatedAt = time.Now()
}

// LoadSession reads a session from a JSON file. A missing file yields an
// empty session pointed at baseURL, not an error.
func LoadSession(path, baseURL string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Session{BaseURL: baseURL}, nil
		}
		return nil, err
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.BaseURL == "" {
		s.BaseURL = baseURL
	}
	return &s, nil
}

// Save writes the session to a JSON file readable only by the owner.
func (s *Session) Save(path string) error {
	s.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
