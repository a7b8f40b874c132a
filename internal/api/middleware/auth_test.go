package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ctchen222/ShareBnB/internal/api/models"
	"ctchen222/ShareBnB/internal/api/response"
	"ctchen222/ShareBnB/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRevoker map[string]bool

func (m memoryRevoker) Revoke(_ context.Context, jti string, _ time.Time) error {
	m[jti] = true
	return nil
}

func (m memoryRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	return m[jti], nil
}

func newRouter(issuer *auth.Issuer, revoker auth.Revoker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", RequireToken(issuer, revoker), func(c *gin.Context) {
		claims := ClaimsFrom(c)
		c.JSON(http.StatusOK, gin.H{"username": CurrentUser(c), "jti": claims.ID})
	})
	return r
}

func get(r http.Handler, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireToken(t *testing.T) {
	issuer := auth.NewIssuer("secret", time.Hour)
	token, err := issuer.Issue(&models.User{Username: "alice"})
	require.NoError(t, err)

	otherIssuer := auth.NewIssuer("other-secret", time.Hour)
	forged, err := otherIssuer.Issue(&models.User{Username: "alice"})
	require.NoError(t, err)

	stale := auth.ClaimsFor(&models.User{Username: "alice"}, time.Now().Add(-2*time.Hour), time.Hour)
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, stale).SignedString([]byte("secret"))
	require.NoError(t, err)

	r := newRouter(issuer, nil)

	tests := []struct {
		name          string
		authorization string
		wantCode      int
	}{
		{"valid", "Bearer " + token, http.StatusOK},
		{"lowercase scheme", "bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"garbage", "Bearer not.a.jwt", http.StatusUnprocessableEntity},
		{"wrong signature", "Bearer " + forged, http.StatusUnprocessableEntity},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(r, tt.authorization)
			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode != http.StatusOK {
				var body response.Errors
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Len(t, body.Errors, 1)
			}
		})
	}

	w := get(r, "Bearer "+token)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "alice", body["username"])
	assert.NotEmpty(t, body["jti"])
}

func TestRequireTokenRevoked(t *testing.T) {
	issuer := auth.NewIssuer("secret", time.Hour)
	token, err := issuer.Issue(&models.User{Username: "alice"})
	require.NoError(t, err)
	claims, err := issuer.Verify(token)
	require.NoError(t, err)

	revoker := memoryRevoker{}
	r := newRouter(issuer, revoker)
	require.Equal(t, http.StatusOK, get(r, "Bearer "+token).Code)

	require.NoError(t, revoker.Revoke(context.Background(), claims.ID, time.Time{}))
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer "+token).Code)
}

func TestRequestLoggerPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/teapot", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/teapot", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
}
