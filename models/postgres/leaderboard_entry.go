package postgres

import (
	"time"
)

/*
 * 'LeaderboardEntry' holds the latest submitted mini-game score for a player.
 * One row per username; a new submission overwrites the previous one
 * (last-write-wins, not best-score). It contains a reference to GameProfile.
 */
type LeaderboardEntry struct {
	Username    string    `gorm:"primaryKey;size:50;not null"`
	DisplayName string    `gorm:"size:100"`
	Score       int       `gorm:"default:0;index:idx_leaderboard_score"`
	SubmittedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	GameProfile GameProfile `gorm:"foreignKey:Username;constraint:OnDelete:CASCADE"`
}
