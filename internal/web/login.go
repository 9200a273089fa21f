package web

import (
	"encoding/json"
	"net/http"

	"perfoverlay/internal/auth"
	"perfoverlay/internal/netx"
)

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// StartLogin registers all login-related routes with the given mux
func StartLogin(mux *http.ServeMux) {
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/logout", handleLogout)
	mux.HandleFunc("/check-auth", handleCheckAuth)
}

func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		netx.WriteMethodNotAllowed(w)
		return
	}

	var loginReq LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		netx.WriteBadRequest(w, "Invalid request format")
		return
	}

	if !auth.VerifyPassword(loginReq.Username, loginReq.Password) {
		netx.WriteUnauthorized(w, "Invalid username or password")
		return
	}

	token, err := auth.CreateSession(loginReq.Username)
	if err != nil {
		netx.WriteInternalServerError(w, "Failed to create session", err)
		return
	}

	// cookie for browsers, token for the socket.io handshake
	auth.SetCookie(w, token)
	netx.WriteAuthSuccess(w, "Login successful", loginReq.Username, token)
}

func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		netx.WriteMethodNotAllowed(w)
		return
	}

	if token, exists := auth.TokenFromRequest(r); exists {
		auth.DeleteSession(token)
	}
	auth.ClearCookie(w)

	netx.WriteAuthSuccess(w, "Logout successful", "", "")
}

func handleCheckAuth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		netx.WriteMethodNotAllowed(w)
		return
	}

	username, authenticated := auth.IsAuthenticated(r)
	if !authenticated {
		netx.WriteUnauthorized(w, "Not authenticated")
		return
	}
	netx.WriteAuthSuccess(w, "Authenticated", username, "")
}
