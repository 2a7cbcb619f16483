package handlers

import (
	redis_models "TuneDuel/models/redis"
	"TuneDuel/services/duel"
	"TuneDuel/services/redis"
	redis_utils "TuneDuel/services/redis/utils"
	socketio_types "TuneDuel/services/socket_io/types"
	socketio_utils "TuneDuel/services/socket_io/utils"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// Function to handle one player's guess for a higher/lower round. Moves are
// write-once per (round, player); the round resolves only when both moves
// exist, at which point every client in the room is told and advances its
// own local round index. There is no cross-client "advance" acknowledgement,
// so indices can transiently differ until the slower side catches up.
func HandleRoundGuess(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, username string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 3 {
			client.Emit("error", gin.H{"error": "Missing round guess fields"})
			return
		}
		sessionID, ok1 := args[0].(string)
		roundFloat, ok2 := args[1].(float64)
		guess, ok3 := args[2].(string)
		if !ok1 || !ok2 || !ok3 || (guess != "higher" && guess != "lower") {
			client.Emit("error", gin.H{"error": "Invalid round guess fields"})
			return
		}
		round := int(roundFloat)

		session, err := socketio_utils.ValidateSessionMembership(redisClient, client, username, sessionID)
		if err != nil {
			return
		}

		move := &redis_models.RoundMove{
			Guess: guess,
			At:    time.Now().UnixMilli(),
		}
		written, err := redisClient.SaveRoundMove(sessionID, round, username, move)
		if err != nil {
			log.Printf("[ROUND-ERROR] Error saving move for %s round %d: %v", sessionID, round, err)
			client.Emit("error", gin.H{"error": "Error saving round move"})
			return
		}
		if !written {
			client.Emit("error", gin.H{"error": "Move already submitted for this round"})
			return
		}

		moves, err := redisClient.GetRoundMoves(sessionID, round, session.Players)
		if err != nil {
			log.Printf("[ROUND-ERROR] Error reading moves for %s round %d: %v", sessionID, round, err)
			client.Emit("error", gin.H{"error": "Error reading round moves"})
			return
		}

		room := socket.Room(redis_utils.FormatSessionKey(sessionID))
		if !duel.RoundResolved(moves, session.Players) {
			// One move present: nothing resolves until the opponent writes
			client.Emit("round_waiting", gin.H{
				"session_id": sessionID,
				"round":      round,
			})
			return
		}

		sio.Sio_server.To(room).Emit("round_resolved", gin.H{
			"session_id": sessionID,
			"round":      round,
			"moves":      moves,
		})
		log.Printf("[ROUND] Session %s round %d resolved", sessionID, round)
	}
}
