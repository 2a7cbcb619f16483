package handlers

import (
	redis_models "TuneDuel/models/redis"
	"TuneDuel/services/duel"
	"TuneDuel/services/redis"
	redis_utils "TuneDuel/services/redis/utils"
	socketio_types "TuneDuel/services/socket_io/types"
	socketio_utils "TuneDuel/services/socket_io/utils"
	syncpkg "TuneDuel/sync"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// Function to handle a participant (re)joining its session room, e.g. after
// consuming an accepted invite or reconnecting mid-duel. Emits the full
// session snapshot to the caller.
func HandleJoinSession(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, username string) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing session id"})
			return
		}
		sessionID, ok := args[0].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid session id"})
			return
		}

		session, err := socketio_utils.ValidateSessionMembership(redisClient, client, username, sessionID)
		if err != nil {
			return
		}

		states, err := redisClient.GetSessionPlayers(session)
		if err != nil {
			log.Printf("[SESSION-ERROR] Error reading players for %s: %v", sessionID, err)
			client.Emit("error", gin.H{"error": "Error reading session"})
			return
		}

		client.Join(socket.Room(redis_utils.FormatSessionKey(sessionID)))
		client.Emit("session_state", gin.H{
			"session": session,
			"players": states,
		})
	}
}

// Function to handle a player streaming its own state: score, lives, status.
// The write goes to the caller's own subtree only; the whole session (both
// subtrees) is then broadcast so each side can evaluate the termination
// predicate independently.
func HandlePlayerUpdate(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, username string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 4 {
			client.Emit("error", gin.H{"error": "Missing player update fields"})
			return
		}
		sessionID, ok1 := args[0].(string)
		score, ok2 := args[1].(float64)
		lives, ok3 := args[2].(float64)
		status, ok4 := args[3].(string)
		if !ok1 || !ok2 || !ok3 || !ok4 || !socketio_utils.ValidPlayerStatus(status) {
			client.Emit("error", gin.H{"error": "Invalid player update fields"})
			return
		}

		session, err := socketio_utils.ValidateSessionMembership(redisClient, client, username, sessionID)
		if err != nil {
			return
		}

		state := &redis_models.PlayerState{
			Username: username,
			Name:     username,
			Score:    int(score),
			Lives:    int(lives),
			Status:   redis_models.SessionPlayerStatus(status),
		}
		if err := redisClient.SavePlayerState(sessionID, state); err != nil {
			log.Printf("[SESSION-ERROR] Error saving state for %s in %s: %v", username, sessionID, err)
			client.Emit("error", gin.H{"error": "Error saving player state"})
			return
		}

		states, err := redisClient.GetSessionPlayers(session)
		if err != nil {
			log.Printf("[SESSION-ERROR] Error reading players for %s: %v", sessionID, err)
			client.Emit("error", gin.H{"error": "Error reading session"})
			return
		}

		room := socket.Room(redis_utils.FormatSessionKey(sessionID))
		sio.Sio_server.To(room).Emit("session_update", gin.H{
			"session_id": sessionID,
			"players":    states,
		})
	}
}

// Function to handle a client declaring that it observed the termination
// predicate. Both participants may fire this near-simultaneously; the
// outcome is recomputed here from the shared record, and only a caller whose
// outcome is a win performs the respect mutation and the result sync. A
// duplicate win declaration double-credits, which is accepted (additive,
// small magnitude).
func HandleDeclareResult(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, username string, sio *socketio_types.SocketServer,
	syncManager *syncpkg.SyncManager) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing session id"})
			return
		}
		sessionID, ok := args[0].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid session id"})
			return
		}

		session, err := socketio_utils.ValidateSessionMembership(redisClient, client, username, sessionID)
		if err != nil {
			return
		}

		states, err := redisClient.GetSessionPlayers(session)
		if err != nil {
			log.Printf("[DUEL-ERROR] Error reading players for %s: %v", sessionID, err)
			client.Emit("error", gin.H{"error": "Error reading session"})
			return
		}

		opponent := socketio_utils.Opponent(session, username)
		self, opp := states[username], states[opponent]

		if !duel.Terminal(self, opp) {
			client.Emit("error", gin.H{"error": "Duel has not ended yet"})
			return
		}

		result := duel.Outcome(self, opp)
		if result == duel.ResultWin {
			if err := duel.ResolveRespectDuel(redisClient, username, opponent); err != nil {
				log.Printf("[DUEL-ERROR] Error resolving respect for %s: %v", sessionID, err)
				client.Emit("error", gin.H{"error": "Error updating respect"})
				return
			}
		}

		client.Emit("duel_result", gin.H{
			"session_id": sessionID,
			"result":     result,
		})

		// The whole record goes out so the other side can compute its own
		// outcome locally even if the session is reaped underneath it.
		room := socket.Room(redis_utils.FormatSessionKey(sessionID))
		sio.Sio_server.To(room).Emit("session_terminal", gin.H{
			"session_id": sessionID,
			"players":    states,
		})

		if result == duel.ResultWin {
			if err := syncManager.SyncDuelResult(session, states); err != nil {
				log.Printf("[DUEL-ERROR] %v", err)
			}
			if err := syncManager.CleanupSession(sessionID); err != nil {
				log.Printf("[DUEL-ERROR] %v", err)
			}
		}
		log.Printf("[DUEL] %s declared %s in session %s", username, result, sessionID)
	}
}
