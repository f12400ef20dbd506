package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newAuthedRouter(admin bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("", NewJWTAuth(&JWTConfig{Secret: testSecret}))
	group.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c)})
	})
	if admin {
		group.GET("/admin", RequireAdmin(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
	}
	return router
}

func doRequest(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	router := newAuthedRouter(false)

	token, err := GenerateToken("user-1", "alice", false, testSecret, 3600)
	require.NoError(t, err)

	w := doRequest(router, "/me", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")

	w = doRequest(router, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(router, "/me", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	expired, err := GenerateToken("user-1", "alice", false, testSecret, -60)
	require.NoError(t, err)
	w = doRequest(router, "/me", expired)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	wrongKey, err := GenerateToken("user-1", "alice", false, "other-secret", 3600)
	require.NoError(t, err)
	w = doRequest(router, "/me", wrongKey)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	router := newAuthedRouter(true)

	userToken, err := GenerateToken("user-1", "alice", false, testSecret, 3600)
	require.NoError(t, err)
	w := doRequest(router, "/admin", userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminToken, err := GenerateToken("admin-1", "root", true, testSecret, 3600)
	require.NoError(t, err)
	w = doRequest(router, "/admin", adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
}
