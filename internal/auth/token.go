package auth

import (
	"errors"
	"fmt"
	"time"

	"ctchen222/ShareBnB/internal/api/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenTypeAccess = "access"

var (
	ErrTokenMissing = errors.New("missing authorization token")
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = fmt.Errorf("%w: token has expired", ErrTokenInvalid)
	ErrTokenRevoked = errors.New("token has been revoked")
)

// Claims is the claim set carried by an access token. The subject is the username.
type Claims struct {
	Username string `json:"username"`
	Type     string `json:"type"`
	jwt.RegisteredClaims
}

// ClaimsFor maps a user to the claims of a fresh access token.
// A zero ttl produces a token without an expiry.
func ClaimsFor(user *models.User, issuedAt time.Time, ttl time.Duration) Claims {
	claims := Claims{
		Username: user.Username,
		Type:     tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(issuedAt.Add(ttl))
	}
	return claims
}

// Issuer mints and verifies HS256 access tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer creates an Issuer signing with secret.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a new access token for user.
func (i *Issuer) Issue(user *models.User) (string, error) {
	claims := ClaimsFor(user, i.now(), i.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and time claims of tokenString and returns its claims.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrTokenMissing
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if claims.Subject == "" || claims.Type != tokenTypeAccess {
		return nil, fmt.Errorf("%w: not an access token", ErrTokenInvalid)
	}
	return &claims, nil
}

// TTL returns the lifetime given to new tokens. Zero means they never expire.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}
