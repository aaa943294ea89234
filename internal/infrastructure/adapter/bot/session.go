package bot

import (
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

// SessionState represents where an admin is in a multi-step command
type SessionState string

const (
	// StateIdle means no command is in progress
	StateIdle SessionState = "idle"
	// StateAwaitingInput means the bot asked for free-form input
	StateAwaitingInput SessionState = "awaiting_input"
	// StateAwaitingConfirmation means the bot showed a confirm keyboard
	StateAwaitingConfirmation SessionState = "awaiting_confirmation"
)

// Session carries the state of one admin's in-progress command
type Session struct {
	State  SessionState
	Action string
	Data   map[string]any
}

// SessionManager tracks per-admin command sessions. Sessions expire after
// the configured TTL so an abandoned flow cannot swallow a later message.
type SessionManager struct {
	store *cache.Cache
}

// NewSessionManager creates a session manager with the given TTL
func NewSessionManager(ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &SessionManager{
		store: cache.New(ttl, ttl),
	}
}

// Get returns the session for the admin, or an idle one if none exists
func (m *SessionManager) Get(adminID int64) *Session {
	if raw, found := m.store.Get(sessionKey(adminID)); found {
		if session, ok := raw.(*Session); ok {
			return session
		}
	}
	return &Session{State: StateIdle, Data: map[string]any{}}
}

// Set stores a session for the admin, resetting its expiry
func (m *SessionManager) Set(adminID int64, state SessionState, action string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	m.store.Set(sessionKey(adminID), &Session{
		State:  state,
		Action: action,
		Data:   data,
	}, cache.DefaultExpiration)
}

// Clear drops the admin's session, returning them to idle
func (m *SessionManager) Clear(adminID int64) {
	m.store.Delete(sessionKey(adminID))
}

func sessionKey(adminID int64) string {
	return "session_" + strconv.FormatInt(adminID, 10)
}
