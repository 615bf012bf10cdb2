// Package session owns the persisted bearer token and everything derived
// from it: claim inspection, validity judgement and the logged-in state the
// guards and handlers consult. It is the single writer of session state;
// everything else observes.
package session

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Storage keys. They mirror the browser localStorage keys the product has
// always used, so the backend-facing semantics stay identical.
const (
	TokenKey = "authToken"
	RoleKey  = "userRole"
)

// TokenStore is the persistent slot the bearer token and its role mirror
// live in. The production implementation rides the encrypted session cookie;
// tests use MemStore.
type TokenStore interface {
	Token() (string, bool)
	SetToken(token string)
	Role() (string, bool)
	SetRole(role string)
	// Clear wipes both the token and the role mirror.
	Clear()
}

// cookieStore adapts the per-request gin session to TokenStore.
type cookieStore struct {
	s sessions.Session
}

// StoreFromContext returns the TokenStore backed by the request's session
// cookie.
func StoreFromContext(c *gin.Context) TokenStore {
	return &cookieStore{s: sessions.Default(c)}
}

func (cs *cookieStore) Token() (string, bool) {
	v := cs.s.Get(TokenKey)
	token, ok := v.(string)
	return token, ok && token != ""
}

func (cs *cookieStore) SetToken(token string) {
	cs.s.Set(TokenKey, token)
	cs.s.Save()
}

func (cs *cookieStore) Role() (string, bool) {
	v := cs.s.Get(RoleKey)
	role, ok := v.(string)
	return role, ok && role != ""
}

func (cs *cookieStore) SetRole(role string) {
	cs.s.Set(RoleKey, role)
	cs.s.Save()
}

func (cs *cookieStore) Clear() {
	cs.s.Delete(TokenKey)
	cs.s.Delete(RoleKey)
	cs.s.Save()
}

// MemStore is an in-memory TokenStore for tests.
type MemStore struct {
	token   string
	role    string
	hasTok  bool
	hasRole bool
}

func NewMemStore(token string) *MemStore {
	s := &MemStore{}
	if token != "" {
		s.SetToken(token)
	}
	return s
}

func (m *MemStore) Token() (string, bool) { return m.token, m.hasTok }

func (m *MemStore) SetToken(token string) {
	m.token = token
	m.hasTok = token != ""
}

func (m *MemStore) Role() (string, bool) { return m.role, m.hasRole }

func (m *MemStore) SetRole(role string) {
	m.role = role
	m.hasRole = role != ""
}

func (m *MemStore) Clear() {
	m.token, m.role = "", ""
	m.hasTok, m.hasRole = false, false
}
