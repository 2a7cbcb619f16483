package handlers

import (
	redis_models "TuneDuel/models/redis"
	"TuneDuel/services/redis"
	socketio_types "TuneDuel/services/socket_io/types"
	socketio_utils "TuneDuel/services/socket_io/utils"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// Function to handle sending a taunt to the duel opponent. The taunt is
// queued under the session for the single recipient and the recipient is
// nudged to consume it.
func HandleSendTaunt(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, username string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 2 {
			client.Emit("error", gin.H{"error": "Missing taunt fields"})
			return
		}
		sessionID, ok1 := args[0].(string)
		msg, ok2 := args[1].(string)
		if !ok1 || !ok2 || msg == "" {
			client.Emit("error", gin.H{"error": "Invalid taunt"})
			return
		}

		session, err := socketio_utils.ValidateSessionMembership(redisClient, client, username, sessionID)
		if err != nil {
			return
		}
		target := socketio_utils.Opponent(session, username)

		taunt := &redis_models.Taunt{
			From: username,
			Msg:  msg,
			At:   time.Now().UnixMilli(),
		}
		if err := redisClient.PushTaunt(sessionID, target, taunt); err != nil {
			log.Printf("[TAUNT-ERROR] Error pushing taunt in %s: %v", sessionID, err)
			client.Emit("error", gin.H{"error": "Error sending taunt"})
			return
		}

		if targetSocket, online := sio.GetConnection(target); online {
			targetSocket.Emit("taunt_ready", gin.H{"session_id": sessionID})
		}
	}
}

// Function to handle the recipient consuming its taunt queue. Each pop
// removes the entry, so a taunt is delivered at most once even if the
// consume event fires twice.
func HandleConsumeTaunt(redisClient *redis.RedisClient, client *socket.Socket,
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

		if _, err := socketio_utils.ValidateSessionMembership(redisClient, client, username, sessionID); err != nil {
			return
		}

		taunt, err := redisClient.PopTaunt(sessionID, username)
		if err != nil {
			log.Printf("[TAUNT-ERROR] Error popping taunt in %s: %v", sessionID, err)
			client.Emit("error", gin.H{"error": "Error reading taunt"})
			return
		}
		if taunt == nil {
			return
		}

		client.Emit("taunt", gin.H{
			"session_id": sessionID,
			"from":       taunt.From,
			"msg":        taunt.Msg,
			"at":         taunt.At,
		})
	}
}
