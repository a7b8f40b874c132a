package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"ctchen222/ShareBnB/internal/api/response"
	"ctchen222/ShareBnB/internal/auth"

	"github.com/gin-gonic/gin"
)

const (
	usernameKey = "username"
	claimsKey   = "claims"
)

// TokenVerifier checks a raw access token.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// RequireToken rejects requests without a valid bearer token and stores the
// token's subject for the handlers. revoker may be nil.
func RequireToken(verifier TokenVerifier, revoker auth.Revoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := verifier.Verify(bearerToken(c.GetHeader("Authorization")))
		if err != nil {
			abortWithTokenError(c, err)
			return
		}

		if revoker != nil {
			revoked, err := revoker.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				response.FromError(c, err)
				return
			}
			if revoked {
				abortWithTokenError(c, auth.ErrTokenRevoked)
				return
			}
		}

		c.Set(usernameKey, claims.Subject)
		c.Set(claimsKey, claims)
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Missing, expired and revoked tokens are 401; anything unparseable is 422.
func abortWithTokenError(c *gin.Context, err error) {
	code := http.StatusUnprocessableEntity
	switch {
	case errors.Is(err, auth.ErrTokenMissing),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrTokenRevoked):
		code = http.StatusUnauthorized
	}
	slog.DebugContext(c.Request.Context(), "Token rejected", "error", err, "http.route", c.FullPath())
	response.ErrorResponse(c, code, err.Error())
}

// CurrentUser returns the username of the token holder.
func CurrentUser(c *gin.Context) string {
	return c.GetString(usernameKey)
}

// ClaimsFrom returns the verified claims of the current request, or nil outside RequireToken.
func ClaimsFrom(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}
