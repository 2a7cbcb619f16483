package sync

import (
	"TuneDuel/models/postgres"
	redis_models "TuneDuel/models/redis"
	"TuneDuel/services/duel"
	"TuneDuel/services/redis"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SyncManager copies the durable part of a finished duel out of Redis into
// PostgreSQL, then hands the session to the reaper. Respect itself never
// moves here: it lives in Redis on both of its paths.
type SyncManager struct {
	redisClient *redis.RedisClient
	db          *gorm.DB
	reaper      duel.SessionReaper
}

// NewSyncManager creates a new instance of the synchronization manager
func NewSyncManager(redisClient *redis.RedisClient, db *gorm.DB) *SyncManager {
	return &SyncManager{
		redisClient: redisClient,
		db:          db,
		reaper:      redisClient,
	}
}

// SyncDuelResult upserts both players' final scores into the leaderboard
// table in one transaction. Last-write-wins per player: a worse later score
// overwrites a better earlier one, which matches the observed behavior of
// the leaderboard and is preserved deliberately.
func (sm *SyncManager) SyncDuelResult(session *redis_models.MatchSession,
	states map[string]redis_models.PlayerState) error {

	entries := make([]postgres.LeaderboardEntry, 0, len(states))
	for _, state := range states {
		entries = append(entries, postgres.LeaderboardEntry{
			Username:    state.Username,
			DisplayName: state.Name,
			Score:       state.Score,
			SubmittedAt: time.Now(),
		})
	}

	err := sm.db.Transaction(func(tx *gorm.DB) error {
		for i := range entries {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "username"}},
				UpdateAll: true,
			}).Create(&entries[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("error syncing duel result for session %s: %v", session.ID, err)
	}
	return nil
}

// CleanupSession deletes the session's Redis keys once the result has been
// persisted. This is the only deliberate session deletion in the system.
func (sm *SyncManager) CleanupSession(sessionID string) error {
	if err := sm.reaper.ReapSession(sessionID); err != nil {
		return fmt.Errorf("error cleaning up session %s: %v", sessionID, err)
	}
	return nil
}
