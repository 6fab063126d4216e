// Package auth issues and verifies the JWT access tokens and hashes
// passwords for the server.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophdrive/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the standard claims plus the owning user's id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

// now is a seam for tests.
var now = time.Now

func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	issued := now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(validityDuration)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken verifies tokenString and returns the user id it was
// issued for. Expired tokens yield common.ErrTokenExpired; every other
// failure wraps common.ErrInvalidToken.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}
