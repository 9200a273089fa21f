package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/zishang520/socket.io/servers/socket/v3"
	"github.com/zishang520/socket.io/v3/pkg/types"
)

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore()
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	token, err := store.Create("viewer")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(token) != 64 {
		t.Errorf("token length = %d, want 64 hex chars", len(token))
	}

	if user, ok := store.Validate(token); !ok || user != "viewer" {
		t.Errorf("Validate = %q, %v; want viewer, true", user, ok)
	}
	if _, ok := store.Validate("bogus"); ok {
		t.Error("Validate accepted an unknown token")
	}
	if _, ok := store.Validate(""); ok {
		t.Error("Validate accepted an empty token")
	}

	now = now.Add(cookieLifespan + time.Second)
	if _, ok := store.Validate(token); ok {
		t.Error("Validate accepted an expired token")
	}
	if store.Len() != 0 {
		t.Errorf("expired session kept: Len() = %d", store.Len())
	}
}

func TestSessionStoreDelete(t *testing.T) {
	store := NewSessionStore()
	token, err := store.Create("viewer")
	if err != nil {
		t.Fatal(err)
	}
	store.Delete(token)
	if _, ok := store.Validate(token); ok {
		t.Error("Validate accepted a deleted token")
	}
}

func TestTokenFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/snapshot", nil)
	if _, ok := TokenFromRequest(r); ok {
		t.Error("token found on a bare request")
	}

	r.Header.Set("Authorization", "Bearer abc")
	if token, ok := TokenFromRequest(r); !ok || token != "abc" {
		t.Errorf("bearer token = %q, %v", token, ok)
	}

	r.AddCookie(&http.Cookie{Name: CookieName, Value: "fromcookie"})
	if token, _ := TokenFromRequest(r); token != "fromcookie" {
		t.Errorf("cookie token = %q, want it to win over the header", token)
	}
}

func TestTokenFromCookieHeader(t *testing.T) {
	header := "theme=dark; " + CookieName + "=tok123; other=1"
	if got := TokenFromCookieHeader(header); got != "tok123" {
		t.Errorf("TokenFromCookieHeader = %q, want tok123", got)
	}
	if got := TokenFromCookieHeader("theme=dark"); got != "" {
		t.Errorf("TokenFromCookieHeader without cookie = %q", got)
	}
}

func TestRequireAuth(t *testing.T) {
	saved := Sessions
	Sessions = NewSessionStore()
	t.Cleanup(func() { Sessions = saved })

	called := false
	handler := RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/snapshot", nil))
	if rec.Code != http.StatusUnauthorized || called {
		t.Errorf("anonymous request: code=%d called=%v", rec.Code, called)
	}

	token, err := CreateSession("viewer")
	if err != nil {
		t.Fatal(err)
	}
	r := httptest.NewRequest(http.MethodGet, "/api/snapshot", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler(rec, r)
	if !called {
		t.Error("authenticated request did not reach the handler")
	}
}

func TestHandshakeToken(t *testing.T) {
	tests := []struct {
		name      string
		handshake *socket.Handshake
		want      string
	}{
		{"nil handshake", nil, ""},
		{"empty", &socket.Handshake{}, ""},
		{
			"auth payload",
			&socket.Handshake{Auth: map[string]any{"token": "from-auth"}},
			"from-auth",
		},
		{
			"auth wins over cookie",
			&socket.Handshake{
				Auth:    map[string]any{"token": "from-auth"},
				Headers: types.IncomingHttpHeaders{"cookie": CookieName + "=from-cookie"},
			},
			"from-auth",
		},
		{
			"cookie string",
			&socket.Handshake{Headers: types.IncomingHttpHeaders{"cookie": "theme=dark; " + CookieName + "=from-cookie"}},
			"from-cookie",
		},
		{
			"cookie slice",
			&socket.Handshake{Headers: types.IncomingHttpHeaders{"Cookie": []string{CookieName + "=from-slice"}}},
			"from-slice",
		},
		{
			"other cookies only",
			&socket.Handshake{Headers: types.IncomingHttpHeaders{"cookie": "theme=dark"}},
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HandshakeToken(tt.handshake); got != tt.want {
				t.Errorf("HandshakeToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAuthorizeHandshake(t *testing.T) {
	token, err := CreateSession("viewer")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	defer DeleteSession(token)

	if err := AuthorizeHandshake(&socket.Handshake{Auth: map[string]any{"token": token}}); err != nil {
		t.Errorf("valid auth token rejected: %v", err)
	}
	cookie := &socket.Handshake{Headers: types.IncomingHttpHeaders{"cookie": CookieName + "=" + token}}
	if err := AuthorizeHandshake(cookie); err != nil {
		t.Errorf("valid cookie rejected: %v", err)
	}

	err = AuthorizeHandshake(&socket.Handshake{Auth: map[string]any{"token": "bogus"}})
	if err == nil || err.Error() != "Unauthorized" {
		t.Errorf("bogus token: err = %v, want Unauthorized", err)
	}
	if err := AuthorizeHandshake(&socket.Handshake{}); err == nil {
		t.Error("handshake without credentials admitted")
	}
}
