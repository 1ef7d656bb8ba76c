package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tangokultura/internal/models"
)

var ErrInvalidToken = errors.New("invalid token")

// NewToken mints an HS256 bearer token for the user. The email claim is the
// authorization identity; role carries the admin capability.
func NewToken(user *models.User, secret string, ttl time.Duration) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["email"] = user.Email
	claims["uid"] = user.ID
	claims["role"] = user.Role
	claims["exp"] = time.Now().Add(ttl).Unix()

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// VerifyToken validates signature and expiry and returns the principal
// encoded in the claims.
func VerifyToken(tokenString, secret string) (models.Principal, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return models.Principal{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.Principal{}, ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return models.Principal{}, ErrInvalidToken
	}
	uid, _ := claims["uid"].(string)
	role, _ := claims["role"].(string)

	return models.Principal{UserID: uid, Email: email, Role: role}, nil
}
