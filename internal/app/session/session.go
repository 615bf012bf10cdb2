package session

import (
	"github.com/gin-gonic/gin"

	"github.com/Pravin-Jalodiya/codesage-web/internal/app/models"
)

// State is the per-request view of the session, re-derived from the stored
// token on every use. LoggedIn is never a cached flag: the invariant is that
// it reads false whenever the token is absent, expired or banned, so every
// consumer goes through the same inspector predicate.
type State struct {
	store     TokenStore
	inspector *Inspector
}

func NewState(store TokenStore) *State {
	return &State{store: store, inspector: NewInspector(store)}
}

// FromContext builds the session state over the request's cookie store.
func FromContext(c *gin.Context) *State {
	return NewState(StoreFromContext(c))
}

func (s *State) LoggedIn() bool {
	return s.inspector.IsValid()
}

// Token returns the bearer token for outbound backend calls, or "" when the
// session is not valid.
func (s *State) Token() string {
	if !s.inspector.IsValid() {
		return ""
	}
	token, _ := s.store.Token()
	return token
}

// Role prefers the persisted mirror (written after the authoritative backend
// confirmation) and falls back to the token claim before that confirmation
// has happened.
func (s *State) Role() models.Role {
	if !s.inspector.IsValid() {
		return ""
	}
	if role, ok := s.store.Role(); ok {
		return models.Role(role)
	}
	return models.Role(s.inspector.Role())
}

func (s *State) Username() string {
	return s.inspector.Username()
}

// EstablishLogin persists the token and role after a successful login.
func (s *State) EstablishLogin(token, role string) {
	s.store.SetToken(token)
	s.store.SetRole(role)
}

// ConfirmRole persists the authoritative role fetched from the backend.
func (s *State) ConfirmRole(role string) {
	s.store.SetRole(role)
}

// Clear tears the session down. Used by logout and by every guard that
// detects an invalid session.
func (s *State) Clear() {
	s.store.Clear()
}

// Inspector exposes the underlying token inspector.
func (s *State) Inspector() *Inspector {
	return s.inspector
}

// Snapshot is what the header and profile components consume.
type Snapshot struct {
	LoggedIn bool        `json:"loggedIn"`
	Role     models.Role `json:"role,omitempty"`
	Username string      `json:"username,omitempty"`
}

func (s *State) Snapshot() Snapshot {
	if !s.LoggedIn() {
		return Snapshot{}
	}
	return Snapshot{
		LoggedIn: true,
		Role:     s.Role(),
		Username: s.Username(),
	}
}
