package controllers

import (
	models "TuneDuel/models/postgres"
	"TuneDuel/services/redis"
	"TuneDuel/utils"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetRespectLeaderboard godoc
// @Summary Respect ranking
// @Description Top players by respect, read from the sorted set. If the ordered
// @Description query fails the handler falls back to a full read sorted in Go.
// @Produce json
// @Success 200 {object} map[string]interface{} "leaderboard"
// @Router /leaderboard [get]
func GetRespectLeaderboard(redisClient *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 50
		if raw := c.Query("limit"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
				limit = parsed
			}
		}

		ranks, err := redisClient.TopRespect(int64(limit))
		if err != nil {
			// Ordered query unavailable, sort client-side instead
			ranks, err = redisClient.AllRespectSorted()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reading leaderboard"})
				return
			}
			if len(ranks) > limit {
				ranks = ranks[:limit]
			}
		}

		c.JSON(http.StatusOK, gin.H{"leaderboard": ranks})
	}
}

// SubmitScore godoc
// @Summary Submit a mini-game score
// @Description Upserts the caller's row. A resubmission replaces the previous
// @Description score even when it is lower.
// @Accept x-www-form-urlencoded
// @Produce json
// @Success 200 {object} map[string]interface{} "username, score"
// @Failure 400 {object} map[string]string "error: Invalid score"
// @Router /auth/leaderboard [post]
func SubmitScore(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		email := session.Get("Email").(string)

		user, err := utils.FindUserByEmail(db, email)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		rawScore := c.PostForm("score")
		score, err := strconv.Atoi(strings.Trim(rawScore, " "))
		if err != nil || score < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid score"})
			return
		}

		entry := models.LeaderboardEntry{
			Username:    user.ProfileUsername,
			DisplayName: user.FullName,
			Score:       score,
			SubmittedAt: time.Now(),
		}
		err = db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			UpdateAll: true,
		}).Create(&entry).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving score"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"username": entry.Username,
			"score":    entry.Score,
		})
	}
}

// GetScoreLeaderboard godoc
// @Summary Mini-game score ranking
// @Produce json
// @Success 200 {object} map[string]interface{} "leaderboard"
// @Router /leaderboard/scores [get]
func GetScoreLeaderboard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var entries []models.LeaderboardEntry
		if err := db.Order("score DESC").Limit(50).Find(&entries).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reading leaderboard"})
			return
		}

		rows := make([]gin.H, 0, len(entries))
		for _, entry := range entries {
			rows = append(rows, gin.H{
				"username":     entry.Username,
				"display_name": entry.DisplayName,
				"score":        entry.Score,
				"submitted_at": entry.SubmittedAt,
			})
		}
		c.JSON(http.StatusOK, gin.H{"leaderboard": rows})
	}
}
