package postgres

import (
	"gorm.io/datatypes"
)

/*
 * 'GameProfile' defines the structure for a user's game profile. It is
 * referenced in User and LeaderboardEntry. The respect counter shown on the
 * profile lives in Redis (the private mirror); this row only carries durable
 * identity and aggregate play stats.
 */
type GameProfile struct {
	Username  string         `gorm:"primaryKey;size:50;not null"`
	UserStats datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	UserIcon  int            `gorm:"default:0"`
	IsInAGame bool           `gorm:"default:false"`

	LeaderboardEntries []LeaderboardEntry `gorm:"foreignKey:Username"`
}
