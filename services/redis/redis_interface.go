package redis

import (
	redis_models "TuneDuel/models/redis"
	redis_utils "TuneDuel/services/redis/utils"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
)

// Ephemeral keys follow the store-wide 24h convention; abandoned duels fall
// out of the store on this TTL, deliberate deletion goes through ReapSession.
const keyTTL = 24 * time.Hour

// RedisClient handles Redis operations
type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(Addr string, DB int) *RedisClient {
	var client *redis.Client
	if Addr != "localhost:6379" {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(Addr)
		if err != nil {
			panic("Error parsing Redis URL")
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: Addr,
			DB:   DB,
		})
	}
	return &RedisClient{
		client: client,
		ctx:    context.Background(),
	}
}

// ---------------------------------------------------------------------------
// Lobby presence
// ---------------------------------------------------------------------------

// SaveLobbyEntry writes a player's availability entry for a game type.
// Key format: "lobby:{gameType}", hash field = username
func (rc *RedisClient) SaveLobbyEntry(gameType string, entry *redis_models.LobbyEntry) error {
	key := redis_utils.FormatLobbyKey(gameType)
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("error marshaling lobby entry: %v", err)
	}
	pipe := rc.client.TxPipeline()
	pipe.HSet(rc.ctx, key, entry.Username, data)
	pipe.Expire(rc.ctx, key, keyTTL)
	if _, err := pipe.Exec(rc.ctx); err != nil {
		return fmt.Errorf("error saving lobby entry: %v", err)
	}
	return nil
}

// DeleteLobbyEntry removes a player's entry from a game type lobby. Idempotent.
func (rc *RedisClient) DeleteLobbyEntry(gameType string, username string) error {
	key := redis_utils.FormatLobbyKey(gameType)
	if err := rc.client.HDel(rc.ctx, key, username).Err(); err != nil {
		return fmt.Errorf("error deleting lobby entry: %v", err)
	}
	return nil
}

// GetLobbyEntries returns every player currently advertising availability
// for a game type. Ordering is not meaningful.
func (rc *RedisClient) GetLobbyEntries(gameType string) ([]redis_models.LobbyEntry, error) {
	key := redis_utils.FormatLobbyKey(gameType)
	raw, err := rc.client.HGetAll(rc.ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("error getting lobby entries: %v", err)
	}

	entries := make([]redis_models.LobbyEntry, 0, len(raw))
	for _, data := range raw {
		var entry redis_models.LobbyEntry
		if err := json.Unmarshal([]byte(data), &entry); err != nil {
			return nil, fmt.Errorf("error unmarshaling lobby entry: %v", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// SetLobbyStatus flips the status of an existing lobby entry, used to mark
// both participants inGame when their duel session is created. Players absent
// from the lobby (never advertised, or already left) are skipped.
func (rc *RedisClient) SetLobbyStatus(gameType string, username string, status redis_models.PlayerStatus) error {
	key := redis_utils.FormatLobbyKey(gameType)
	data, err := rc.client.HGet(rc.ctx, key, username).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil
		}
		return fmt.Errorf("error getting lobby entry: %v", err)
	}

	var entry redis_models.LobbyEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return fmt.Errorf("error unmarshaling lobby entry: %v", err)
	}
	entry.Status = status
	return rc.SaveLobbyEntry(gameType, &entry)
}

// ---------------------------------------------------------------------------
// Invites
// ---------------------------------------------------------------------------

// SaveInvite writes an invite into the recipient's mailbox, overwriting any
// previous invite from the same sender.
// Key format: "inbox:{recipient}", hash field = sender
func (rc *RedisClient) SaveInvite(recipient string, invite *redis_models.Invite) error {
	key := redis_utils.FormatInboxKey(recipient)
	data, err := json.Marshal(invite)
	if err != nil {
		return fmt.Errorf("error marshaling invite: %v", err)
	}
	pipe := rc.client.TxPipeline()
	pipe.HSet(rc.ctx, key, invite.Sender, data)
	pipe.Expire(rc.ctx, key, keyTTL)
	if _, err := pipe.Exec(rc.ctx); err != nil {
		return fmt.Errorf("error saving invite: %v", err)
	}
	return nil
}

// GetInvite retrieves the invite from one sender in the recipient's mailbox.
// Returns nil when no such invite exists.
func (rc *RedisClient) GetInvite(recipient string, sender string) (*redis_models.Invite, error) {
	key := redis_utils.FormatInboxKey(recipient)
	data, err := rc.client.HGet(rc.ctx, key, sender).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting invite: %v", err)
	}

	var invite redis_models.Invite
	if err := json.Unmarshal(data, &invite); err != nil {
		return nil, fmt.Errorf("error unmarshaling invite: %v", err)
	}
	return &invite, nil
}

// DeleteInvite removes one sender's invite from a recipient's mailbox. Idempotent.
func (rc *RedisClient) DeleteInvite(recipient string, sender string) error {
	key := redis_utils.FormatInboxKey(recipient)
	if err := rc.client.HDel(rc.ctx, key, sender).Err(); err != nil {
		return fmt.Errorf("error deleting invite: %v", err)
	}
	return nil
}

// DeleteInbox removes a player's whole mailbox (used when leaving a lobby).
func (rc *RedisClient) DeleteInbox(recipient string) error {
	key := redis_utils.FormatInboxKey(recipient)
	if err := rc.client.Del(rc.ctx, key).Err(); err != nil {
		return fmt.Errorf("error deleting inbox: %v", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Match sessions
// ---------------------------------------------------------------------------

// CreateMatchSession creates the shared duel record exactly once, with both
// player subtrees seeded. The SetNX on the session key is the single-creation
// guard: only the invite accepter calls this, and a second call for the same
// id fails instead of overwriting.
func (rc *RedisClient) CreateMatchSession(session *redis_models.MatchSession, players []redis_models.PlayerState) error {
	if len(players) != 2 {
		return fmt.Errorf("a match session requires exactly two players, got %d", len(players))
	}

	key := redis_utils.FormatSessionKey(session.ID)
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("error marshaling session: %v", err)
	}

	created, err := rc.client.SetNX(rc.ctx, key, data, keyTTL).Result()
	if err != nil {
		return fmt.Errorf("error creating session: %v", err)
	}
	if !created {
		return fmt.Errorf("session %s already exists", session.ID)
	}

	pipe := rc.client.TxPipeline()
	for i := range players {
		pdata, err := json.Marshal(&players[i])
		if err != nil {
			return fmt.Errorf("error marshaling player state: %v", err)
		}
		pipe.Set(rc.ctx, redis_utils.FormatSessionPlayerKey(session.ID, players[i].Username), pdata, keyTTL)
	}
	if _, err := pipe.Exec(rc.ctx); err != nil {
		return fmt.Errorf("error seeding player states: %v", err)
	}
	return nil
}

// GetMatchSession retrieves the shared session record.
func (rc *RedisClient) GetMatchSession(sessionID string) (*redis_models.MatchSession, error) {
	key := redis_utils.FormatSessionKey(sessionID)
	data, err := rc.client.Get(rc.ctx, key).Bytes()
	if err != nil {
		return nil, fmt.Errorf("error getting session data: %v", err)
	}

	var session redis_models.MatchSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("error unmarshaling session data: %v", err)
	}
	return &session, nil
}

// SavePlayerState writes one player's subtree of a session. Callers only ever
// pass their own state; the opponent's subtree is never written from here.
func (rc *RedisClient) SavePlayerState(sessionID string, state *redis_models.PlayerState) error {
	key := redis_utils.FormatSessionPlayerKey(sessionID, state.Username)
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("error marshaling player state: %v", err)
	}
	return rc.client.Set(rc.ctx, key, data, keyTTL).Err()
}

// GetPlayerState retrieves one player's subtree of a session.
func (rc *RedisClient) GetPlayerState(sessionID string, username string) (*redis_models.PlayerState, error) {
	key := redis_utils.FormatSessionPlayerKey(sessionID, username)
	data, err := rc.client.Get(rc.ctx, key).Bytes()
	if err != nil {
		return nil, fmt.Errorf("error getting player state: %v", err)
	}

	var state redis_models.PlayerState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("error unmarshaling player state: %v", err)
	}
	return &state, nil
}

// GetSessionPlayers reads both player subtrees of a session.
func (rc *RedisClient) GetSessionPlayers(session *redis_models.MatchSession) (map[string]redis_models.PlayerState, error) {
	states := make(map[string]redis_models.PlayerState, 2)
	for _, username := range session.Players {
		state, err := rc.GetPlayerState(session.ID, username)
		if err != nil {
			return nil, err
		}
		states[username] = *state
	}
	return states, nil
}

// ---------------------------------------------------------------------------
// Rounds (higher/lower duels)
// ---------------------------------------------------------------------------

// SaveRoundMove appends one player's move for a round. Write-once: returns
// false without error when a move for this (round, player) already exists.
func (rc *RedisClient) SaveRoundMove(sessionID string, round int, username string, move *redis_models.RoundMove) (bool, error) {
	key := redis_utils.FormatRoundMoveKey(sessionID, round, username)
	data, err := json.Marshal(move)
	if err != nil {
		return false, fmt.Errorf("error marshaling round move: %v", err)
	}
	written, err := rc.client.SetNX(rc.ctx, key, data, keyTTL).Result()
	if err != nil {
		return false, fmt.Errorf("error saving round move: %v", err)
	}
	return written, nil
}

// GetRoundMoves returns the moves present for a round, keyed by username.
// A round resolves only once both players' moves are present.
func (rc *RedisClient) GetRoundMoves(sessionID string, round int, players [2]string) (map[string]redis_models.RoundMove, error) {
	moves := make(map[string]redis_models.RoundMove, 2)
	for _, username := range players {
		key := redis_utils.FormatRoundMoveKey(sessionID, round, username)
		data, err := rc.client.Get(rc.ctx, key).Bytes()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("error getting round move: %v", err)
		}
		var move redis_models.RoundMove
		if err := json.Unmarshal(data, &move); err != nil {
			return nil, fmt.Errorf("error unmarshaling round move: %v", err)
		}
		moves[username] = move
	}
	return moves, nil
}

// ---------------------------------------------------------------------------
// Taunts
// ---------------------------------------------------------------------------

// PushTaunt appends a taunt to the target's per-session queue.
func (rc *RedisClient) PushTaunt(sessionID string, target string, taunt *redis_models.Taunt) error {
	key := redis_utils.FormatTauntsKey(sessionID, target)
	data, err := json.Marshal(taunt)
	if err != nil {
		return fmt.Errorf("error marshaling taunt: %v", err)
	}
	pipe := rc.client.TxPipeline()
	pipe.RPush(rc.ctx, key, data)
	pipe.Expire(rc.ctx, key, keyTTL)
	if _, err := pipe.Exec(rc.ctx); err != nil {
		return fmt.Errorf("error pushing taunt: %v", err)
	}
	return nil
}

// PopTaunt consumes the oldest taunt for the target, at most once.
// Returns nil when the queue is empty.
func (rc *RedisClient) PopTaunt(sessionID string, target string) (*redis_models.Taunt, error) {
	key := redis_utils.FormatTauntsKey(sessionID, target)
	data, err := rc.client.LPop(rc.ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("error popping taunt: %v", err)
	}

	var taunt redis_models.Taunt
	if err := json.Unmarshal(data, &taunt); err != nil {
		return nil, fmt.Errorf("error unmarshaling taunt: %v", err)
	}
	return &taunt, nil
}

// ---------------------------------------------------------------------------
// Respect counters
// ---------------------------------------------------------------------------

// AdjustRespect applies the post-duel respect adjustment: +delta for the
// winner and -delta for the loser, on both the public ranking sorted set and
// the private profile mirror, in a single multi-path write. The four updates
// always move together. Deliberately additive, not idempotent: the
// winner-declaration race can double-apply it and that is accepted.
func (rc *RedisClient) AdjustRespect(winner string, loser string, delta int) error {
	pipe := rc.client.TxPipeline()
	pipe.ZIncrBy(rc.ctx, redis_utils.RespectLeaderboardKey, float64(delta), winner)
	pipe.ZIncrBy(rc.ctx, redis_utils.RespectLeaderboardKey, float64(-delta), loser)
	pipe.HIncrBy(rc.ctx, redis_utils.FormatProfileKey(winner), "respect", int64(delta))
	pipe.HIncrBy(rc.ctx, redis_utils.FormatProfileKey(loser), "respect", int64(-delta))
	if _, err := pipe.Exec(rc.ctx); err != nil {
		return fmt.Errorf("error adjusting respect: %v", err)
	}
	return nil
}

// GetRespect reads a player's private respect mirror. Missing players have 0.
func (rc *RedisClient) GetRespect(username string) (int64, error) {
	val, err := rc.client.HGet(rc.ctx, redis_utils.FormatProfileKey(username), "respect").Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("error getting respect: %v", err)
	}
	return val, nil
}

// RespectRank is one row of the public respect ranking.
type RespectRank struct {
	Username string `json:"username"`
	Respect  int64  `json:"respect"`
}

// TopRespect returns the public ranking, highest first, via an ordered
// limited query on the sorted set.
func (rc *RedisClient) TopRespect(limit int64) ([]RespectRank, error) {
	rows, err := rc.client.ZRevRangeWithScores(rc.ctx, redis_utils.RespectLeaderboardKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("error reading respect ranking: %v", err)
	}

	ranking := make([]RespectRank, 0, len(rows))
	for _, row := range rows {
		ranking = append(ranking, RespectRank{
			Username: row.Member.(string),
			Respect:  int64(row.Score),
		})
	}
	return ranking, nil
}

// AllRespectSorted is the fallback path when the ordered query is rejected:
// read the full set unordered and sort client-side.
func (rc *RedisClient) AllRespectSorted() ([]RespectRank, error) {
	rows, err := rc.client.ZRangeWithScores(rc.ctx, redis_utils.RespectLeaderboardKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("error reading respect set: %v", err)
	}

	ranking := make([]RespectRank, 0, len(rows))
	for _, row := range rows {
		ranking = append(ranking, RespectRank{
			Username: row.Member.(string),
			Respect:  int64(row.Score),
		})
	}
	sort.Slice(ranking, func(i, j int) bool {
		return ranking[i].Respect > ranking[j].Respect
	})
	return ranking, nil
}

// ---------------------------------------------------------------------------
// Session reaping
// ---------------------------------------------------------------------------

// ReapSession deletes a session and everything under it (player subtrees,
// round moves, taunt queues). This is the explicit deletion hook; nothing
// calls it automatically during play.
func (rc *RedisClient) ReapSession(sessionID string) error {
	pattern := redis_utils.FormatSessionKey(sessionID) + "*"
	iter := rc.client.Scan(rc.ctx, 0, pattern, 0).Iterator()

	var keys []string
	for iter.Next(rc.ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("error scanning session keys: %v", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return rc.CleanupKeys(keys)
}

// CleanupKeys removes the specified keys from Redis
func (rc *RedisClient) CleanupKeys(keys []string) error {
	for _, key := range keys {
		if err := rc.client.Del(rc.ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to cleanup Redis key %s: %v", key, err)
		}
	}
	return nil
}
