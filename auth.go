package main

import (
	"errors"
	"fmt"
	"time"

	"foliohub/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is deliberately above the library default; password hashing
// is the one place slow is correct.
const bcryptCost = 12

var errNoSecret = errors.New("jwt secret is not configured")

// Claims is the payload embedded in every bearer token. Role is the role
// at time of issuance; requireAdmin re-checks it against storage.
type Claims struct {
	UserID   uint   `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func hashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
}

func checkPassword(hash []byte, password string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}

// issueToken signs a time-limited HS256 token for u. It refuses to sign
// without a configured secret rather than fall back to anything insecure.
func issueToken(u *models.User, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errNoSecret
	}
	now := time.Now()
	claims := Claims{
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(u.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// parseToken verifies signature and expiry and returns the claims.
func parseToken(tokenString, secret string) (*Claims, error) {
	if secret == "" {
		return nil, errNoSecret
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrInvalidKeyType
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}
