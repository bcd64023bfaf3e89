package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": utils.CurrentUserID(c), "role": utils.CurrentRole(c)})
	})
	r.GET("/admin", AuthMiddleware(testSecret, "admin"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMissingToken(t *testing.T) {
	w := get(testRouter(), "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthBadToken(t *testing.T) {
	w := get(testRouter(), "/me", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthValidToken(t *testing.T) {
	token, err := utils.GenerateToken(42, "customer", testSecret, time.Hour)
	require.NoError(t, err)

	w := get(testRouter(), "/me", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":42`)
}

func TestAuthWrongSecret(t *testing.T) {
	token, err := utils.GenerateToken(42, "customer", "other-secret", time.Hour)
	require.NoError(t, err)

	w := get(testRouter(), "/me", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRoleGate(t *testing.T) {
	customer, err := utils.GenerateToken(1, "customer", testSecret, time.Hour)
	require.NoError(t, err)
	admin, err := utils.GenerateToken(2, "admin", testSecret, time.Hour)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, get(testRouter(), "/admin", customer).Code)
	assert.Equal(t, http.StatusOK, get(testRouter(), "/admin", admin).Code)
}

func TestAuthExpiredToken(t *testing.T) {
	token, err := utils.GenerateToken(1, "customer", testSecret, -time.Minute)
	require.NoError(t, err)

	w := get(testRouter(), "/me", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthTokenViaQueryParam(t *testing.T) {
	token, err := utils.GenerateToken(3, "admin", testSecret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin?token="+token, nil)
	w := httptest.NewRecorder()
	testRouter().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
