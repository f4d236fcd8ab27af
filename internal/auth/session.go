package auth

import (
	"crypto/sha256"
	"net/http"

	"github.com/gorilla/sessions"
)

// SessionName is the name of the admin session cookie.
const SessionName = "portfolio-session"

// Session value keys.
const (
	SessionKeyEmail = "email"
	SessionKeyState = "oauth_state"
)

const sessionMaxAge = 7 * 24 * 60 * 60

// SessionManager wraps the signed cookie store holding the OAuth state and,
// after a successful Google sign-in, the admin's email.
type SessionManager struct {
	store sessions.Store
}

// NewSessionManager builds a cookie store keyed by the SHA-256 of secret.
// SameSite is Lax because the OAuth callback is a cross-site redirect.
func NewSessionManager(secret string, secure bool) *SessionManager {
	key := sha256.Sum256([]byte(secret))

	store := sessions.NewCookieStore(key[:])
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionManager{store: store}
}

// Get retrieves the session from the request, creating a new one if needed.
func (m *SessionManager) Get(r *http.Request) (*sessions.Session, error) {
	return m.store.Get(r, SessionName)
}

// Email returns the signed-in email stored in the session, if any.
func (m *SessionManager) Email(r *http.Request) (string, bool) {
	session, err := m.Get(r)
	if err != nil {
		return "", false
	}
	email, ok := session.Values[SessionKeyEmail].(string)
	if !ok || email == "" {
		return "", false
	}
	return email, true
}

// Clear expires the session cookie.
func (m *SessionManager) Clear(r *http.Request, w http.ResponseWriter) error {
	session, err := m.Get(r)
	if err != nil && session == nil {
		return err
	}
	session.Values = map[interface{}]interface{}{}
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
