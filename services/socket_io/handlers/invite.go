package handlers

import (
	game_constants "TuneDuel/constants/game"
	redis_models "TuneDuel/models/redis"
	"TuneDuel/services/catalog"
	"TuneDuel/services/invites"
	"TuneDuel/services/pool"
	"TuneDuel/services/redis"
	redis_utils "TuneDuel/services/redis/utils"
	socketio_types "TuneDuel/services/socket_io/types"
	socketio_utils "TuneDuel/services/socket_io/utils"
	"TuneDuel/utils"
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

const defaultSearchTerm = "top hits"
const catalogFetchLimit = 50
const triviaQuestionCount = 10

func inviteRoom(recipient, sender string) socket.Room {
	return socket.Room(fmt.Sprintf("invite:%s:%s", recipient, sender))
}

// Function to handle sending a duel invite. The invite lands in the target's
// mailbox (overwriting any previous one from the same sender), the sender
// subscribes to that exact invite waiting for acceptance, and a disconnect
// hook is armed that retracts the invite if the sender vanishes before the
// target accepts.
func HandleSendInvite(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, username string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[INVITE] HandleSendInvite - user: %s", username)

		if len(args) < 2 {
			client.Emit("error", gin.H{"error": "Missing target or game type"})
			return
		}
		target, ok1 := args[0].(string)
		gameType, ok2 := args[1].(string)
		if !ok1 || !ok2 || !socketio_utils.ValidGameType(gameType) {
			client.Emit("error", gin.H{"error": "Invalid invite parameters"})
			return
		}
		category := ""
		if len(args) > 2 {
			category, _ = args[2].(string)
		}
		if target == username {
			client.Emit("error", gin.H{"error": "You cannot challenge yourself"})
			return
		}
		exists, err := utils.ProfileExists(db, target)
		if err != nil || !exists {
			client.Emit("error", gin.H{"error": "No such player"})
			return
		}

		invite := &redis_models.Invite{
			Sender:     username,
			SenderName: username,
			GameType:   gameType,
			Category:   category,
			Status:     redis_models.InviteStatusPending,
			SentAt:     time.Now().Unix(),
		}
		if err := redisClient.SaveInvite(target, invite); err != nil {
			log.Printf("[INVITE-ERROR] Error saving invite %s->%s: %v", username, target, err)
			client.Emit("error", gin.H{"error": "Error sending invite"})
			return
		}

		// The sender's subscription: wait on this exact invite for acceptance
		client.Join(inviteRoom(target, username))

		// Stale invites from vanished senders are retracted server-side,
		// but only while still pending.
		sio.RegisterDisconnectHook(username, "invite:"+target, func() {
			pending, err := redisClient.GetInvite(target, username)
			if err != nil || pending == nil || pending.Status != redis_models.InviteStatusPending {
				return
			}
			if err := redisClient.DeleteInvite(target, username); err != nil {
				log.Printf("[DISCONNECT-ERROR] Error retracting invite %s->%s: %v", username, target, err)
				return
			}
			if targetSocket, online := sio.GetConnection(target); online {
				targetSocket.Emit("invite_retracted", gin.H{"sender": username})
			}
			log.Printf("[DISCONNECT] Retracted pending invite %s->%s", username, target)
		})

		if targetSocket, online := sio.GetConnection(target); online {
			targetSocket.Emit("invite_received", invite)
		}
		client.Emit("invite_sent", gin.H{"target": target, "game_type": gameType})
		log.Printf("[INVITE-SUCCESS] Invite %s->%s (%s)", username, target, gameType)
	}
}

// Function to handle a sender explicitly withdrawing a pending invite.
func HandleCancelInvite(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, username string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing target"})
			return
		}
		target, ok := args[0].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid target"})
			return
		}

		if err := redisClient.DeleteInvite(target, username); err != nil {
			log.Printf("[INVITE-ERROR] Error canceling invite %s->%s: %v", username, target, err)
			client.Emit("error", gin.H{"error": "Error canceling invite"})
			return
		}
		sio.UnregisterDisconnectHook(username, "invite:"+target)
		client.Leave(inviteRoom(target, username))

		if targetSocket, online := sio.GetConnection(target); online {
			targetSocket.Emit("invite_retracted", gin.H{"sender": username})
		}
		client.Emit("invite_canceled", gin.H{"target": target})
	}
}

// Function to handle invite acceptance. This is the single point of session
// creation: only the accepter produces the content payload and creates the
// MatchSession, with both players seeded, then flips the invite to accepted
// with the new game id. If content generation yields too few usable tracks
// the accept is abandoned, nothing is created, and the inviter's listener
// simply never fires.
func HandleAcceptInvite(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, username string, sio *socketio_types.SocketServer,
	catalogClient *catalog.Client) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[INVITE] HandleAcceptInvite - user: %s", username)

		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing challenger"})
			return
		}
		challenger, ok := args[0].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid challenger"})
			return
		}

		invite, err := redisClient.GetInvite(username, challenger)
		if err != nil || invite == nil {
			client.Emit("error", gin.H{"error": "No pending invite from that player"})
			return
		}
		if invite.Status != redis_models.InviteStatusPending {
			client.Emit("error", gin.H{"error": "Invite was already accepted"})
			return
		}

		payload, err := buildPayload(catalogClient, invite.GameType, invite.Category)
		if err != nil {
			log.Printf("[INVITE-ERROR] Content generation failed for %s (%s/%s): %v",
				username, invite.GameType, invite.Category, err)
			client.Emit("invite_error", gin.H{
				"error": "Not enough songs for that category, try another one",
			})
			return
		}

		sessionID := uuid.NewString()
		session := &redis_models.MatchSession{
			ID:        sessionID,
			GameType:  invite.GameType,
			Status:    "active",
			CreatedAt: time.Now().Unix(),
			Payload:   *payload,
			Players:   [2]string{challenger, username},
		}
		players := []redis_models.PlayerState{
			newPlayerState(challenger),
			newPlayerState(username),
		}
		if err := redisClient.CreateMatchSession(session, players); err != nil {
			log.Printf("[INVITE-ERROR] Error creating session: %v", err)
			client.Emit("error", gin.H{"error": "Error creating game session"})
			return
		}

		if _, err := invites.Accept(redisClient, username, challenger, sessionID); err != nil {
			log.Printf("[INVITE-ERROR] Error accepting invite: %v", err)
			client.Emit("error", gin.H{"error": "Error accepting invite"})
			return
		}

		// Neither side is available while the duel runs
		for _, player := range session.Players {
			if err := redisClient.SetLobbyStatus(invite.GameType, player, redis_models.StatusInGame); err != nil {
				log.Printf("[INVITE-ERROR] Error marking %s in game: %v", player, err)
			}
		}

		// The accepter is in the game already; the sender consumes the
		// accepted invite from its subscription and joins afterwards.
		client.Join(socket.Room(redis_utils.FormatSessionKey(sessionID)))
		sio.Sio_server.To(inviteRoom(username, challenger)).Emit("invite_accepted", gin.H{
			"recipient": username,
			"game_id":   sessionID,
			"session":   session,
		})

		client.Emit("game_created", gin.H{"session": session})
		log.Printf("[INVITE-SUCCESS] %s accepted %s, session %s", username, challenger, sessionID)
	}
}

// Function to handle the sender observing acceptance: exactly one transition
// to accepted is consumed, after which the invite record is deleted, the
// subscription torn down, and the retraction hook disarmed.
func HandleConsumeInvite(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, username string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing recipient"})
			return
		}
		recipient, ok := args[0].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid recipient"})
			return
		}

		gameID, err := invites.Consume(redisClient, recipient, username)
		if err != nil {
			if errors.Is(err, invites.ErrNotAccepted) {
				client.Emit("error", gin.H{"error": "No accepted invite to consume"})
				return
			}
			log.Printf("[INVITE-ERROR] Error consuming invite %s->%s: %v", username, recipient, err)
			client.Emit("error", gin.H{"error": "Error consuming invite"})
			return
		}
		sio.UnregisterDisconnectHook(username, "invite:"+recipient)
		client.Leave(inviteRoom(recipient, username))
		client.Join(socket.Room(redis_utils.FormatSessionKey(gameID)))

		client.Emit("invite_consumed", gin.H{"game_id": gameID})
		log.Printf("[INVITE] %s consumed accepted invite, session %s", username, gameID)
	}
}

func newPlayerState(username string) redis_models.PlayerState {
	return redis_models.PlayerState{
		Username: username,
		Name:     username,
		Score:    0,
		Lives:    game_constants.StartingLives,
		Status:   redis_models.PlayerStatusPlaying,
	}
}

// buildPayload produces the game-type-specific session content. Every game
// type requires at least MinSequencePool unique playable tracks; below that
// the accept is abandoned.
func buildPayload(catalogClient *catalog.Client, gameType, category string) (*redis_models.GamePayload, error) {
	term := category
	if term == "" {
		term = defaultSearchTerm
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	tracks, err := catalogClient.Search(ctx, term, catalogFetchLimit)
	if err != nil {
		return nil, err
	}
	unique := pool.Dedupe(tracks)
	if len(unique) < game_constants.MinSequencePool {
		return nil, pool.ErrInsufficientPool
	}

	switch gameType {
	case game_constants.GameTypeHigherLower, game_constants.GameTypeMatching:
		content, err := pool.GenerateGameSequence(unique)
		if err != nil {
			return nil, err
		}
		return &redis_models.GamePayload{
			Reference: &content.Reference,
			Sequence:  content.Sequence,
		}, nil

	case game_constants.GameTypeQuiz:
		questions, err := pool.GenerateTriviaQuestions(unique, triviaQuestionCount)
		if err != nil {
			return nil, err
		}
		return &redis_models.GamePayload{Questions: questions}, nil

	case game_constants.GameTypeRhythm:
		track := unique[rand.Intn(len(unique))]
		return &redis_models.GamePayload{
			BPM:     90 + rand.Intn(50),
			SongURL: track.PreviewURL,
		}, nil
	}
	return nil, fmt.Errorf("unknown game type %q", gameType)
}
