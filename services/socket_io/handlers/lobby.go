package handlers

import (
	redis_models "TuneDuel/models/redis"
	"TuneDuel/services/redis"
	redis_utils "TuneDuel/services/redis/utils"
	socketio_types "TuneDuel/services/socket_io/types"
	socketio_utils "TuneDuel/services/socket_io/utils"
	"TuneDuel/utils"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// Function to handle the act of joining a game-type lobby: the player starts
// advertising availability for that game type. Any invites still sitting in
// the player's mailbox are cleared first, the entry is written to Redis, and
// a disconnect hook is armed so the entry disappears server-side if the
// client vanishes without leaving.
func HandleJoinLobby(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, username string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[LOBBY] HandleJoinLobby - user: %s, socket: %s", username, client.Id())

		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing game type"})
			return
		}
		gameType, ok := args[0].(string)
		if !ok || !socketio_utils.ValidGameType(gameType) {
			client.Emit("error", gin.H{"error": "Unknown game type"})
			return
		}

		// The icon comes from the player's own profile, not from the event;
		// the client only sends its level
		icon := utils.UserIcon(db, username)
		level := 0
		if len(args) > 1 {
			if v, ok := args[1].(float64); ok {
				level = int(v)
			}
		}

		// Joining a lobby invalidates whatever invites were pending for us
		if err := redisClient.DeleteInbox(username); err != nil {
			log.Printf("[LOBBY-ERROR] Error clearing inbox for %s: %v", username, err)
			client.Emit("error", gin.H{"error": "Error joining lobby"})
			return
		}

		entry := &redis_models.LobbyEntry{
			Username:   username,
			Icon:       icon,
			Level:      level,
			Status:     redis_models.StatusIdle,
			LastActive: time.Now().Unix(),
		}
		if err := redisClient.SaveLobbyEntry(gameType, entry); err != nil {
			log.Printf("[LOBBY-ERROR] Error saving lobby entry for %s: %v", username, err)
			client.Emit("error", gin.H{"error": "Error joining lobby"})
			return
		}

		room := socket.Room(redis_utils.FormatLobbyKey(gameType))
		client.Join(room)

		// Server-side cleanup: if this connection drops, the entry goes away
		// without any other client's cooperation.
		sio.RegisterDisconnectHook(username, "lobby:"+gameType, func() {
			if err := redisClient.DeleteLobbyEntry(gameType, username); err != nil {
				log.Printf("[DISCONNECT-ERROR] Error removing %s from %s lobby: %v", username, gameType, err)
				return
			}
			sio.Sio_server.To(room).Emit("lobby_update", gin.H{
				"action":    "removed",
				"game_type": gameType,
				"username":  username,
			})
			log.Printf("[DISCONNECT] Removed %s from %s lobby", username, gameType)
		})

		// Initial listing for the caller, everyone else gets the increment
		entries, err := redisClient.GetLobbyEntries(gameType)
		if err != nil {
			log.Printf("[LOBBY-ERROR] Error listing %s lobby: %v", gameType, err)
			client.Emit("error", gin.H{"error": "Error listing lobby"})
			return
		}
		others := make([]redis_models.LobbyEntry, 0, len(entries))
		for _, e := range entries {
			if e.Username != username {
				others = append(others, e)
			}
		}

		client.Emit("joined_lobby", gin.H{
			"game_type": gameType,
			"players":   others,
		})
		sio.Sio_server.To(room).Emit("lobby_update", gin.H{
			"action":    "added",
			"game_type": gameType,
			"entry":     entry,
		})
		log.Printf("[LOBBY-SUCCESS] User %s joined %s lobby", username, gameType)
	}
}

// Function to handle the act of leaving a lobby voluntarily. Removes the
// entry and the player's own invite mailbox, and disarms the disconnect
// hook. Idempotent.
func HandleExitLobby(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, username string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing game type"})
			return
		}
		gameType, ok := args[0].(string)
		if !ok || !socketio_utils.ValidGameType(gameType) {
			client.Emit("error", gin.H{"error": "Unknown game type"})
			return
		}

		if err := redisClient.DeleteLobbyEntry(gameType, username); err != nil {
			log.Printf("[LOBBY-ERROR] Error removing %s from %s lobby: %v", username, gameType, err)
			client.Emit("error", gin.H{"error": "Error leaving lobby"})
			return
		}
		if err := redisClient.DeleteInbox(username); err != nil {
			log.Printf("[LOBBY-ERROR] Error clearing inbox for %s: %v", username, err)
		}
		sio.UnregisterDisconnectHook(username, "lobby:"+gameType)

		room := socket.Room(redis_utils.FormatLobbyKey(gameType))
		client.Leave(room)
		sio.Sio_server.To(room).Emit("lobby_update", gin.H{
			"action":    "removed",
			"game_type": gameType,
			"username":  username,
		})

		client.Emit("left_lobby", gin.H{"game_type": gameType})
		log.Printf("[LOBBY] User %s left %s lobby", username, gameType)
	}
}
