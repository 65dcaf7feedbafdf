package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/autoshop/console/internal/kv"
	"github.com/autoshop/console/internal/models"
)

const authNamespace = "auth-storage"

// authState is the persisted layout of the auth namespace: the current
// session, if any, plus remembered per-user settings keyed by user id.
type authState struct {
	Session  *models.Session            `json:"session"`
	Settings map[string]models.Settings `json:"settings"`
}

// UserDirectory is the user lookup the auth store depends on.
type UserDirectory interface {
	FindActiveByUsername(username, password string) (models.User, bool)
}

// AuthStore holds the single active session and per-user UI settings.
// A session survives process restart until explicit logout.
type AuthStore struct {
	base
	users    UserDirectory
	session  *models.Session
	settings map[string]models.Settings
}

// NewAuthStore rehydrates the session state from its namespace.
func NewAuthStore(ctx context.Context, store kv.Store, users UserDirectory, log *zap.Logger) (*AuthStore, error) {
	s := &AuthStore{
		base:     newBase(store, authNamespace, log),
		users:    users,
		settings: make(map[string]models.Settings),
	}
	var state authState
	found, err := s.load(ctx, &state)
	if err != nil {
		return nil, fmt.Errorf("load auth state: %w", err)
	}
	if found {
		s.session = state.Session
		if state.Settings != nil {
			s.settings = state.Settings
		}
	}
	return s, nil
}

// Login looks the username up in the directory and establishes the session
// on a match. The settings default to an open sidebar merged over whatever
// this user had stored from previous sessions. On failure the caller gets
// ErrInvalidCredentials with no detail about which part was wrong.
func (s *AuthStore) Login(username, password string) (models.Session, error) {
	user, ok := s.users.FindActiveByUsername(username, password)
	if !ok {
		return models.Session{}, ErrInvalidCredentials
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	settings := models.Settings{SidebarOpen: true}
	if stored, ok := s.settings[user.ID]; ok {
		settings = stored
	}
	session := models.Session{
		User:     user,
		Settings: settings,
		Token:    uuid.NewString(),
	}
	s.session = &session
	s.persist(authState{Session: s.session, Settings: s.settings})
	return session, nil
}

// Logout clears the session. Remembered per-user settings are kept.
func (s *AuthStore) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	s.persist(authState{Session: nil, Settings: s.settings})
}

// Session returns the current session, if one is established.
func (s *AuthStore) Session() (models.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return models.Session{}, false
	}
	return *s.session, true
}

// UpdateSettings merges the patch into the current session's settings and
// into the per-user memory. It never writes back to the user directory.
func (s *AuthStore) UpdateSettings(patch models.SettingsPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return ErrNoSession
	}
	if patch.SidebarOpen != nil {
		s.session.Settings.SidebarOpen = *patch.SidebarOpen
	}
	s.settings[s.session.User.ID] = s.session.Settings
	s.persist(authState{Session: s.session, Settings: s.settings})
	return nil
}
