package socketio_utils

import (
	game_constants "TuneDuel/constants/game"
	"TuneDuel/middleware"
	models "TuneDuel/models/postgres"
	redis_models "TuneDuel/models/redis"
	"TuneDuel/services/redis"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// Function that verifies a socket.io client connection using JWT authentication.
// It extracts the email from the JWT token and retrieves the associated username from the database.
func VerifyUserConnection(client *socket.Socket, db *gorm.DB) (success bool, username, email string) {
	// Checks if we have auth data in the connection
	authData, ok := client.Handshake().Auth.(map[string]interface{})
	if !ok {
		client.Emit("error", gin.H{"error": "Authentication failed: missing auth data"})
		return false, "", ""
	}

	email, err := middleware.Socketio_JWT_decoder(authData)
	if err != nil {
		client.Emit("error", gin.H{
			"error": "Authentication failed: invalid JWT. Remember to set it on the 'authorization' field and with the 'Bearer ' prefix.",
		})
		return false, "", ""
	}

	// Fetch username from database using the email
	var user models.User
	result := db.Where("email = ?", email).First(&user)
	if result.Error != nil {
		client.Emit("error", gin.H{"error": "Authentication failed: could not find user"})
		return false, "", email
	}

	return true, user.ProfileUsername, email
}

// ValidGameType rejects unknown game types before any state is written.
func ValidGameType(gameType string) bool {
	switch gameType {
	case game_constants.GameTypeMatching,
		game_constants.GameTypeRhythm,
		game_constants.GameTypeHigherLower,
		game_constants.GameTypeQuiz:
		return true
	}
	return false
}

// ValidPlayerStatus rejects unknown session player statuses before they land
// in the caller's subtree.
func ValidPlayerStatus(status string) bool {
	switch redis_models.SessionPlayerStatus(status) {
	case redis_models.PlayerStatusPlaying,
		redis_models.PlayerStatusFinished,
		redis_models.PlayerStatusGameOver:
		return true
	}
	return false
}

// ValidateSessionMembership loads a session and checks the caller is one of
// its two players, emitting the error to the client on failure.
func ValidateSessionMembership(redisClient *redis.RedisClient, client *socket.Socket,
	username string, sessionID string) (*redis_models.MatchSession, error) {

	session, err := redisClient.GetMatchSession(sessionID)
	if err != nil {
		client.Emit("error", gin.H{"error": "Session not found"})
		return nil, err
	}

	if session.Players[0] != username && session.Players[1] != username {
		client.Emit("error", gin.H{"error": "You are not part of this session"})
		return nil, fmt.Errorf("user %s not in session %s", username, sessionID)
	}
	return session, nil
}

// Opponent returns the other participant of a session.
func Opponent(session *redis_models.MatchSession, username string) string {
	if session.Players[0] == username {
		return session.Players[1]
	}
	return session.Players[0]
}
