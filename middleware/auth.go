package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthRequired is a simple middleware to check the session.
func AuthRequired(c *gin.Context) {
	session := sessions.Default(c)
	user := session.Get("Email")
	if user == nil {
		// Abort the request with the appropriate error code
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	// Continue down the chain to handler etc
	c.Next()
}

func jwtSecret() []byte {
	return []byte(os.Getenv("KEY"))
}

// GenerateJWT signs a token carrying the user's email, handed out at login
// and presented in the socket.io handshake.
func GenerateJWT(email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString(jwtSecret())
}

func decodeJWT(tokenString string) (string, error) {
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	email, ok := claims["email"].(string)
	if !ok {
		return "", fmt.Errorf("token has no email claim")
	}
	return email, nil
}

// JWT_decoder extracts the authenticated user's email from the request's
// Authorization header.
func JWT_decoder(c *gin.Context) (string, error) {
	email, err := decodeJWT(c.GetHeader("Authorization"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing token"})
		return "", err
	}
	return email, nil
}

// Socketio_JWT_decoder extracts the user's email from a socket.io handshake
// auth payload.
func Socketio_JWT_decoder(authData map[string]interface{}) (string, error) {
	token, ok := authData["authorization"].(string)
	if !ok {
		return "", fmt.Errorf("missing authorization token")
	}
	return decodeJWT(token)
}
