package controllers

import (
	"TuneDuel/services/catalog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// SearchSongs godoc
// @Summary Search the song catalog
// @Description Passthrough to the catalog client. Results are already filtered
// @Description to tracks with a playable preview and artwork.
// @Produce json
// @Success 200 {object} map[string]interface{} "tracks"
// @Failure 400 {object} map[string]string "error: Missing search term"
// @Failure 502 {object} map[string]string "error: Catalog unavailable"
// @Router /songs/search [get]
func SearchSongs(catalogClient *catalog.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		term := strings.Trim(c.Query("term"), " ")
		if term == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing search term"})
			return
		}

		limit := 25
		if raw := c.Query("limit"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 50 {
				limit = parsed
			}
		}

		tracks, err := catalogClient.Search(c.Request.Context(), term, limit)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Catalog unavailable"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"tracks": tracks})
	}
}
