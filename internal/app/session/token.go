package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload the backend issues.
type Claims struct {
	Username string `json:"username"`
	UserID   int64  `json:"userId"`
	Role     string `json:"role"`
	BanState bool   `json:"banState"`
	jwt.RegisteredClaims
}

// Inspector decodes the stored bearer token and judges its validity. The
// gateway holds no signing key; like the browser client it replaces, it
// inspects claims without verifying the signature — the backend is the
// authority and re-checks the token on every call.
//
// Inspector methods never return errors: any decode or parse failure maps to
// "invalid/absent", and the corrupt token is removed so the next check
// starts from a clean logged-out state.
type Inspector struct {
	store TokenStore
	now   func() time.Time
}

func NewInspector(store TokenStore) *Inspector {
	return &Inspector{store: store, now: time.Now}
}

// IsValid reports whether the stored token grants a live session: present,
// decodable, carrying an unexpired exp claim and not flagged banned. Any
// failure clears the stored token.
func (i *Inspector) IsValid() bool {
	_, ok := i.claims()
	return ok
}

// Claim returns a named claim if the token passes the same validity checks
// IsValid applies. Unknown names report !ok.
func (i *Inspector) Claim(name string) (any, bool) {
	claims, ok := i.claims()
	if !ok {
		return nil, false
	}
	switch name {
	case "username":
		return claims.Username, true
	case "userId":
		return claims.UserID, true
	case "role":
		return claims.Role, true
	case "banState":
		return claims.BanState, true
	case "exp":
		if claims.ExpiresAt == nil {
			return nil, false
		}
		return claims.ExpiresAt.Unix(), true
	}
	return nil, false
}

// Username is the subject identity, or "" when the session is invalid.
func (i *Inspector) Username() string {
	claims, ok := i.claims()
	if !ok {
		return ""
	}
	return claims.Username
}

// Role is the role claim held in the token. Guards that need the
// authoritative role still confirm it with the backend.
func (i *Inspector) Role() string {
	claims, ok := i.claims()
	if !ok {
		return ""
	}
	return claims.Role
}

func (i *Inspector) claims() (*Claims, bool) {
	token, ok := i.store.Token()
	if !ok {
		return nil, false
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		// Corrupt state reads as logged-out.
		i.store.Clear()
		return nil, false
	}

	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(i.now()) {
		i.store.Clear()
		return nil, false
	}
	if claims.BanState {
		i.store.Clear()
		return nil, false
	}
	return claims, true
}
