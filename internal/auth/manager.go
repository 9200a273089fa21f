package auth

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
	"sync"
	"time"
)

var (
	CookieName     = "overlay-auth"
	cookieLifespan = 24 * time.Hour
)

// SessionStore holds active mirror viewer sessions
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]SessionData
	now      func() time.Time
}

// SessionData contains viewer session information
type SessionData struct {
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Global session store
var Sessions = NewSessionStore()

// NewSessionStore returns an empty store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]SessionData),
		now:      time.Now,
	}
}

// GenerateToken creates a random token
func GenerateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// Create starts a session for username and returns its token
func (s *SessionStore) Create(username string) (string, error) {
	token, err := GenerateToken()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sessions[token] = SessionData{
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(cookieLifespan),
	}
	return token, nil
}

// Validate returns the username for a live token. Expired tokens are
// dropped.
func (s *SessionStore) Validate(token string) (string, bool) {
	if token == "" {
		return "", false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.sessions[token]
	if !exists {
		return "", false
	}
	if s.now().After(session.ExpiresAt) {
		delete(s.sessions, token)
		return "", false
	}
	return session.Username, true
}

// Delete removes a session (logout)
func (s *SessionStore) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// Len returns the number of stored sessions
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// CreateSession creates a session in the global store
func CreateSession(username string) (string, error) {
	return Sessions.Create(username)
}

// ValidateSession checks a token against the global store
func ValidateSession(token string) (string, bool) {
	return Sessions.Validate(token)
}

// DeleteSession removes a session from the global store
func DeleteSession(token string) {
	Sessions.Delete(token)
}

// SetCookie sets an HTTP cookie with the session token
func SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(cookieLifespan),
	})
}

// ClearCookie removes the session cookie
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Unix(0, 0),
	})
}

// TokenFromRequest reads the session token from the cookie, falling back
// to an Authorization header ("Bearer <token>" or the bare token)
func TokenFromRequest(r *http.Request) (string, bool) {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	return strings.TrimPrefix(header, "Bearer "), true
}

// TokenFromCookieHeader extracts the session token from a raw Cookie header
func TokenFromCookieHeader(header string) string {
	for _, part := range strings.Split(header, ";") {
		part = strings.TrimSpace(part)
		if token, ok := strings.CutPrefix(part, CookieName+"="); ok {
			return token
		}
	}
	return ""
}

// IsAuthenticated checks if the request has a valid session
func IsAuthenticated(r *http.Request) (string, bool) {
	token, ok := TokenFromRequest(r)
	if !ok {
		return "", false
	}
	return ValidateSession(token)
}
