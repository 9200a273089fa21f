package web

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/spf13/cast"
	"github.com/zishang520/socket.io/servers/socket/v3"

	"perfoverlay/internal/auth"
	"perfoverlay/internal/netx"
	"perfoverlay/internal/system"
)

// MirrorNamespace is the socket.io namespace remote viewers join
const MirrorNamespace = "/overlay"

// viewer is the part of a socket.io client the mirror talks to
type viewer interface {
	Emit(ev string, args ...any) error
}

// MirrorSession is one connected remote viewer
type MirrorSession struct {
	Client   viewer
	Username string
}

// Mirror pushes every overlay snapshot to connected viewers. Publish is
// called from the overlay thread; the socket.io handlers run on server
// goroutines, hence the lock.
type Mirror struct {
	sessions map[string]*MirrorSession
	mutex    sync.RWMutex

	latest    system.Snapshot
	hasLatest bool

	info   func() (*system.SystemInfo, error)
	logger *slog.Logger
}

// NewMirror creates a mirror. info is queried once per connecting viewer.
func NewMirror(info func() (*system.SystemInfo, error), logger *slog.Logger) *Mirror {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mirror{
		sessions: make(map[string]*MirrorSession),
		info:     info,
		logger:   logger,
	}
}

// Setup registers the mirror namespace on server
func (m *Mirror) Setup(server *netx.Socket) {
	namespace := server.GetNamespace(MirrorNamespace)

	namespace.AddEvent("connect_overlay", m.handleConnect)
	namespace.AddEvent("refresh_data", m.handleRefresh)
	namespace.AddEvent("disconnect", m.handleDisconnect)
	namespace.RegisterEvents()

	namespace.AddMiddleware(auth.RequireAuthSocketIO)
}

// Publish implements overlay.Sink
func (m *Mirror) Publish(snapshot system.Snapshot) {
	m.mutex.Lock()
	m.latest = snapshot
	m.hasLatest = true
	clients := make([]viewer, 0, len(m.sessions))
	for _, session := range m.sessions {
		clients = append(clients, session.Client)
	}
	m.mutex.Unlock()

	for _, client := range clients {
		client.Emit("sensor_snapshot", snapshot)
	}
}

// Latest returns the most recent published snapshot
func (m *Mirror) Latest() (system.Snapshot, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.latest, m.hasLatest
}

// ActiveSessions returns the number of connected viewers
func (m *Mirror) ActiveSessions() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.sessions)
}

func (m *Mirror) handleConnect(client *socket.Socket, data ...any) {
	username, _ := auth.ValidateSession(auth.SocketToken(client))
	m.connect(string(client.Id()), username, client)
}

// connect registers a viewer, then sends it the system info, the latest
// snapshot and a connected notice, in that order
func (m *Mirror) connect(id, username string, client viewer) {
	m.mutex.Lock()
	m.sessions[id] = &MirrorSession{Client: client, Username: username}
	m.mutex.Unlock()
	m.logger.Info("mirror viewer connected", "id", id, "user", username)

	if m.info != nil {
		info, err := m.info()
		if err != nil {
			client.Emit("overlay_error", fmt.Sprintf("Failed to get system info: %v", err))
		} else {
			client.Emit("basic_system_info", info)
		}
	}
	m.sendLatest(client)

	client.Emit("overlay_connected", map[string]any{
		"status":   "connected",
		"interval": "1s",
	})
}

// handleRefresh resends the latest snapshot. An optional {"reason": ...}
// payload is only logged.
func (m *Mirror) handleRefresh(client *socket.Socket, data ...any) {
	if len(data) > 0 {
		if payload, ok := data[0].(map[string]any); ok {
			m.logger.Debug("mirror refresh", "id", string(client.Id()), "reason", cast.ToString(payload["reason"]))
		}
	}
	m.sendLatest(client)
}

func (m *Mirror) handleDisconnect(client *socket.Socket, data ...any) {
	var reason string
	if len(data) > 0 {
		reason = cast.ToString(data[0])
	}
	m.disconnect(string(client.Id()), reason)
}

func (m *Mirror) disconnect(id, reason string) {
	m.mutex.Lock()
	delete(m.sessions, id)
	m.mutex.Unlock()
	m.logger.Info("mirror viewer disconnected", "id", id, "reason", reason)
}

func (m *Mirror) sendLatest(client viewer) {
	snapshot, ok := m.Latest()
	if !ok {
		return
	}
	client.Emit("sensor_snapshot", snapshot)
}
