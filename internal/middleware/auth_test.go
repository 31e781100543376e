package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "middleware_test_secret"

func protectedRouter(roles ...string) *gin.Engine {
	router := gin.New()
	router.GET("/protected", RequireRole(roles...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString("userID"),
			"role":    c.GetString("userRole"),
		})
	})
	return router
}

func sign(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestRequireRoleMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	router := protectedRouter("admin")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoleBadSignature(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	router := protectedRouter("admin")

	token := sign(t, jwt.MapClaims{"sub": "u1", "role": "admin", "exp": time.Now().Add(time.Hour).Unix()}, "wrong_secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoleExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	router := protectedRouter("admin")

	token := sign(t, jwt.MapClaims{"sub": "u1", "role": "admin", "exp": time.Now().Add(-time.Hour).Unix()}, testSecret)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoleInsufficientRole(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	router := protectedRouter("admin", "manager")

	token := sign(t, jwt.MapClaims{"sub": "u1", "role": "staff", "exp": time.Now().Add(time.Hour).Unix()}, testSecret)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRoleBearerHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	router := protectedRouter("admin")

	token := sign(t, jwt.MapClaims{"sub": "u1", "role": "admin", "exp": time.Now().Add(time.Hour).Unix()}, testSecret)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"u1"`)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)
}

func TestRequireRoleCookie(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	router := protectedRouter("staff")

	token := sign(t, jwt.MapClaims{"sub": "u2", "role": "staff", "exp": time.Now().Add(time.Hour).Unix()}, testSecret)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"u2"`)
}
