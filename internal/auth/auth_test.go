package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	codec := TokenCodec{Key: []byte("secret"), TTL: time.Hour}

	token, err := codec.Encode("alice")
	require.NoError(t, err)

	username, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestTokenWrongKey(t *testing.T) {
	token, err := TokenCodec{Key: []byte("secret"), TTL: time.Hour}.Encode("alice")
	require.NoError(t, err)

	_, err = TokenCodec{Key: []byte("other"), TTL: time.Hour}.Decode(token)
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	token, err := TokenCodec{Key: []byte("secret"), TTL: -time.Minute}.Encode("alice")
	require.NoError(t, err)

	_, err = TokenCodec{Key: []byte("secret"), TTL: time.Hour}.Decode(token)
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)
	assert.True(t, CheckPassword(hash, "hunter2"))
	assert.False(t, CheckPassword(hash, "hunter3"))
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	codec := TokenCodec{Key: []byte("secret"), TTL: time.Hour}

	r := gin.New()
	r.GET("/protected", Middleware(codec), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": c.GetString(ContextUserKey)})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := codec.Encode("alice")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
}
