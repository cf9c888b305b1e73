// Package auth implements the session-token layer: signed stateless JWTs,
// bcrypt password digests, and the cookie that carries a token between
// requests. There is no server-side session storage; a token's validity is
// fully determined by its signature and expiry.
package auth

import (
	"time"

	"github.com/dmitrijs2005/authd/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the set of statements embedded in a session token: the standard
// registered claims (iat, exp) plus the authenticated identity.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

// GenerateToken issues a signed HS256 session token for the given identity.
// The token carries IssuedAt=now and ExpiresAt=now+validityDuration.
func GenerateToken(userID int64, username string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID:   userID,
		Username: username,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies a session token and returns its claims. Every failure
// mode — bad signature, wrong algorithm, expired, malformed, missing identity
// claims — collapses to common.ErrInvalidToken so callers cannot branch on
// the reason.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	// A signature-valid token without an identity is still not a session.
	if claims.UserID == 0 || claims.Username == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
