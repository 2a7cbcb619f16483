package handlers

import (
	socketio_types "TuneDuel/services/socket_io/types"
	"log"
)

// Function to handle socket.io client disconnections. Every compensating
// action the user armed during this connection runs here: lobby entries
// disappear, pending invites are retracted. This is the only cleanup path
// that survives crashes and closed tabs; accepted sessions are deliberately
// not touched (they are abandoned, not cleaned).
func HandleDisconnecting(username string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[DISCONNECT] HandleDisconnecting - user: %s", username)

		sio.RunDisconnectHooks(username)

		// Finally remove connection from map
		sio.RemoveConnection(username)
		log.Printf("[DISCONNECT-DONE] User disconnected: %s", username)
	}
}
