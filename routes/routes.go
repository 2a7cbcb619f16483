package routes

import (
	"TuneDuel/controllers"
	"TuneDuel/middleware"
	"TuneDuel/services/catalog"
	"TuneDuel/services/redis"
	utils "TuneDuel/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *gorm.DB,
	redisClient *redis.RedisClient, catalogClient *catalog.Client) {

	// utils global
	router.Use(utils.ErrorHandler())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes group
	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	api.POST("/login", controllers.Login(db))

	api.POST("/signup", controllers.SignUp(db))

	api.GET("/users/:username", controllers.GetUserPublicInfo(db, redisClient))

	// Token-authed variant for realtime clients holding only the JWT
	api.GET("/me", controllers.GetUserPrivateInfo(db, redisClient))

	api.GET("/leaderboard", controllers.GetRespectLeaderboard(redisClient))

	api.GET("/leaderboard/scores", controllers.GetScoreLeaderboard(db))

	api.GET("/songs/search", controllers.SearchSongs(catalogClient))

	authentication := api.Group("/auth")
	authentication.Use(middleware.AuthRequired)
	{
		authentication.DELETE("/logout", controllers.Logout)

		authentication.POST("/leaderboard", controllers.SubmitScore(db))
	}
}
