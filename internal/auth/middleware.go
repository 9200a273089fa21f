package auth

import (
	"net/http"

	"github.com/spf13/cast"
	"github.com/zishang520/socket.io/servers/socket/v3"
)

// RequireAuth rejects requests without a valid session
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, authenticated := IsAuthenticated(r); !authenticated {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

// RequireAuthSocketIO admits socket.io clients that present a session
// token in the handshake auth payload ({"token": ...}) or the cookie
func RequireAuthSocketIO(client *socket.Socket, next func(*socket.ExtendedError)) {
	next(AuthorizeHandshake(client.Handshake()))
}

// AuthorizeHandshake returns nil when the handshake carries a valid
// session, an Unauthorized error otherwise
func AuthorizeHandshake(handshake *socket.Handshake) *socket.ExtendedError {
	if _, ok := ValidateSession(HandshakeToken(handshake)); ok {
		return nil
	}
	return socket.NewExtendedError("Unauthorized", "")
}

// SocketToken finds the session token in a client's handshake
func SocketToken(client *socket.Socket) string {
	return HandshakeToken(client.Handshake())
}

// HandshakeToken reads the auth payload token, then the session cookie
func HandshakeToken(handshake *socket.Handshake) string {
	if handshake == nil {
		return ""
	}
	if token := cast.ToString(handshake.Auth["token"]); token != "" {
		return token
	}
	return TokenFromCookieHeader(handshake.Headers.Header().Get("Cookie"))
}
