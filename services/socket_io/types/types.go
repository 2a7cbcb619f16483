package socketio_types

import (
	"sync"

	"github.com/zishang520/socket.io/v2/socket"
)

// SocketServer is a struct that contains the socket.io server, a map of
// socket connections, and the disconnect-hook registry. It is used to handle
// socket.io connections.
type SocketServer struct {
	Sio_server *socket.Server
	// Map to track username -> socket connections
	UserConnections map[string]*socket.Socket
	mutex           sync.RWMutex

	// Compensating actions tied to the connection lifecycle. These are the
	// "run this mutation when the connection drops" registrations: lobby
	// entry removal, pending-invite retraction. Keyed per user and per hook
	// so application logic can arm and disarm them individually.
	disconnectHooks map[string]map[string]func()
	hooksMutex      sync.Mutex
}

func NewSocketServer() *SocketServer {
	return &SocketServer{
		UserConnections: make(map[string]*socket.Socket),
		disconnectHooks: make(map[string]map[string]func()),
	}
}

// Add methods to manage connections
func (s *SocketServer) AddConnection(username string, socket *socket.Socket) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.UserConnections[username] = socket
}

func (s *SocketServer) RemoveConnection(username string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.UserConnections, username)
}

func (s *SocketServer) GetConnection(username string) (*socket.Socket, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	socket, exists := s.UserConnections[username]
	return socket, exists
}

// RegisterDisconnectHook arms a compensating action that runs when the
// user's connection drops. Re-registering under the same key replaces the
// previous action.
func (s *SocketServer) RegisterDisconnectHook(username string, key string, fn func()) {
	s.hooksMutex.Lock()
	defer s.hooksMutex.Unlock()
	if s.disconnectHooks == nil {
		s.disconnectHooks = make(map[string]map[string]func())
	}
	if s.disconnectHooks[username] == nil {
		s.disconnectHooks[username] = make(map[string]func())
	}
	s.disconnectHooks[username][key] = fn
}

// UnregisterDisconnectHook disarms a previously registered action, used when
// the application performs the cleanup explicitly (leave, consume, cancel).
func (s *SocketServer) UnregisterDisconnectHook(username string, key string) {
	s.hooksMutex.Lock()
	defer s.hooksMutex.Unlock()
	delete(s.disconnectHooks[username], key)
}

// RunDisconnectHooks pops and runs every armed action for the user. Called
// from the "disconnecting" handler; this is the only cleanup guaranteed to
// happen when a client vanishes mid-protocol.
func (s *SocketServer) RunDisconnectHooks(username string) {
	s.hooksMutex.Lock()
	hooks := s.disconnectHooks[username]
	delete(s.disconnectHooks, username)
	s.hooksMutex.Unlock()

	for _, fn := range hooks {
		fn()
	}
}
