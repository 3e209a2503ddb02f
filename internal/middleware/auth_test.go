package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellora/retail_backoffice_app/internal/middleware"
)

const (
	testJWTSecret = "test-secret"
	testJWTIssuer = "retail-backoffice-app"
)

func newAuthTestRouter(issuer string, gotUserID *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", middleware.AuthMiddleware(testJWTSecret, issuer), func(c *gin.Context) {
		userID, _ := middleware.GetUserIDFromContext(c)
		*gotUserID = userID
		c.String(http.StatusOK, "OK")
	})
	return r
}

func signTestToken(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

func doAuthRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_AcceptsMatchingIssuer(t *testing.T) {
	var gotUserID string
	r := newAuthTestRouter(testJWTIssuer, &gotUserID)

	token := signTestToken(t, jwt.RegisteredClaims{
		Subject:   "user-1",
		Issuer:    testJWTIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	w := doAuthRequest(r, token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", gotUserID)
}

func TestAuthMiddleware_RejectsWrongIssuer(t *testing.T) {
	var gotUserID string
	r := newAuthTestRouter(testJWTIssuer, &gotUserID)

	token := signTestToken(t, jwt.RegisteredClaims{
		Subject:   "user-1",
		Issuer:    "someone-else",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	w := doAuthRequest(r, token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, gotUserID)
}

func TestAuthMiddleware_EmptyIssuerSkipsCheck(t *testing.T) {
	var gotUserID string
	r := newAuthTestRouter("", &gotUserID)

	token := signTestToken(t, jwt.RegisteredClaims{
		Subject:   "user-2",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	w := doAuthRequest(r, token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-2", gotUserID)
}

func TestAuthMiddleware_RejectsExpiredToken(t *testing.T) {
	var gotUserID string
	r := newAuthTestRouter(testJWTIssuer, &gotUserID)

	token := signTestToken(t, jwt.RegisteredClaims{
		Subject:   "user-1",
		Issuer:    testJWTIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})
	w := doAuthRequest(r, token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}

func TestAuthMiddleware_MissingHeaderRejected(t *testing.T) {
	var gotUserID string
	r := newAuthTestRouter(testJWTIssuer, &gotUserID)

	w := doAuthRequest(r, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
