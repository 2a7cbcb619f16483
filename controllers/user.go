package controllers

import (
	"TuneDuel/middleware"
	models "TuneDuel/models/postgres"
	"TuneDuel/services/redis"
	"TuneDuel/utils"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Ping godoc
// @Summary Liveness check
// @Produce json
// @Success 200 {object} map[string]string "message: pong"
// @Router /ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// Login godoc
// @Summary Log in with email and password
// @Description Validates credentials, opens a session and returns the JWT used for the socket.io handshake.
// @Accept x-www-form-urlencoded
// @Produce json
// @Success 200 {object} map[string]string "token"
// @Failure 401 {object} map[string]string "error: Invalid email or password!"
// @Router /login [post]
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		email := c.PostForm("email")
		password := c.PostForm("password")

		// Minimum input sanitizing
		if strings.Trim(email, " ") == "" || strings.Trim(password, " ") == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parameters can't be empty"})
			return
		}

		var user models.User
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password!"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password!"})
			return
		}

		session.Set("Email", user.Email)
		if err := session.Save(); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No session!"})
			return
		}

		token, err := middleware.GenerateJWT(user.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"token":    token,
			"username": user.ProfileUsername,
		})
	}
}

// Logout from server, deletes the session associated with the Email key
func Logout(c *gin.Context) {
	session := sessions.Default(c)
	user := session.Get("Email")
	// There is no session for the user, won't delete nothing
	if user == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session token"})
		return
	}

	session.Delete("Email")
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

// SignUp godoc
// @Summary Create an account and its game profile
// @Accept x-www-form-urlencoded
// @Produce json
// @Success 201 {object} map[string]string "username"
// @Failure 409 {object} map[string]string "error: Email or username already taken"
// @Router /signup [post]
func SignUp(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.PostForm("email")
		username := c.PostForm("username")
		password := c.PostForm("password")

		if strings.Trim(email, " ") == "" || strings.Trim(username, " ") == "" || strings.Trim(password, " ") == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parameters can't be empty"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password"})
			return
		}

		profile := models.GameProfile{Username: username}
		user := models.User{
			Email:           email,
			ProfileUsername: username,
			PasswordHash:    string(hash),
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&profile).Error; err != nil {
				return err
			}
			return tx.Create(&user).Error
		})
		if err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Email or username already taken"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"username": username})
	}
}

// GetUserPrivateInfo godoc
// @Summary Get the caller's own account
// @Description Authenticates with the same bearer JWT used for the socket.io
// @Description handshake, so realtime clients can introspect their account
// @Description without holding a session cookie.
// @Produce json
// @Success 200 {object} map[string]interface{} "email, username, full_name, respect"
// @Failure 401 {object} map[string]string "error: Invalid or missing token"
// @Router /me [get]
func GetUserPrivateInfo(db *gorm.DB, redisClient *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, err := middleware.JWT_decoder(c)
		if err != nil {
			// JWT_decoder already wrote the 401
			return
		}

		user, err := utils.FindUserByEmail(db, email)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		respect, err := redisClient.GetRespect(user.ProfileUsername)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reading profile"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"email":     user.Email,
			"username":  user.ProfileUsername,
			"full_name": user.FullName,
			"respect":   respect,
		})
	}
}

// GetUserPublicInfo godoc
// @Summary Get a player's public profile
// @Description Identity and icon come from PostgreSQL; the respect counter is the private Redis mirror.
// @Produce json
// @Success 200 {object} map[string]interface{} "username, icon, respect"
// @Failure 404 {object} map[string]string "error: User not found"
// @Router /users/{username} [get]
func GetUserPublicInfo(db *gorm.DB, redisClient *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")

		var profile models.GameProfile
		if err := db.Where("username = ?", username).First(&profile).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		respect, err := redisClient.GetRespect(username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reading profile"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"username": profile.Username,
			"icon":     profile.UserIcon,
			"stats":    profile.UserStats,
			"respect":  respect,
		})
	}
}
