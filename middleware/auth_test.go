package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	t.Setenv("KEY", "test-signing-key")

	token, err := GenerateJWT("rosa@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	email, err := Socketio_JWT_decoder(map[string]interface{}{
		"authorization": "Bearer " + token,
	})
	require.NoError(t, err)
	assert.Equal(t, "rosa@example.com", email)
}

func TestJWTDecoderFromHeader(t *testing.T) {
	t.Setenv("KEY", "test-signing-key")
	gin.SetMode(gin.TestMode)

	token, err := GenerateJWT("samir@example.com")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/me", nil)
	c.Request.Header.Set("Authorization", "Bearer "+token)

	email, err := JWT_decoder(c)
	require.NoError(t, err)
	assert.Equal(t, "samir@example.com", email)
}

func TestJWTDecoderRejectsBadToken(t *testing.T) {
	t.Setenv("KEY", "test-signing-key")
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/me", nil)
	c.Request.Header.Set("Authorization", "Bearer not-a-token")

	_, err := JWT_decoder(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSocketioDecoderMissingAuth(t *testing.T) {
	t.Setenv("KEY", "test-signing-key")

	_, err := Socketio_JWT_decoder(map[string]interface{}{})
	assert.Error(t, err)
}

func TestJWTRejectsWrongKey(t *testing.T) {
	t.Setenv("KEY", "test-signing-key")
	token, err := GenerateJWT("rosa@example.com")
	require.NoError(t, err)

	t.Setenv("KEY", "another-key")
	_, err = Socketio_JWT_decoder(map[string]interface{}{
		"authorization": "Bearer " + token,
	})
	assert.Error(t, err)
}
