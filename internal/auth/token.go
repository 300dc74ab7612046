package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenLifetime matches the fixed 36000-second expiry tokens have always
// carried; clients cache them for the whole window.
const TokenLifetime = 36000 * time.Second

var ErrInvalidToken = errors.New("token is not valid")

// Claims embeds the user id under a nested "user" object, the payload shape
// the frontend already decodes.
type Claims struct {
	jwt.RegisteredClaims
	User UserClaim `json:"user"`
}

type UserClaim struct {
	ID string `json:"id"`
}

// GenerateToken signs a credential bound to userID. Signing only fails on a
// misconfigured key, which callers treat as a startup error.
func GenerateToken(userID string, secret []byte) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		User: UserClaim{ID: userID},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifyToken checks signature and expiry and returns the embedded user id.
// It does not check that the user still exists; a token issued for a since
// deleted account verifies until it expires.
func VerifyToken(tokenString string, secret []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}
	if !token.Valid || claims.User.ID == "" {
		return "", ErrInvalidToken
	}

	return claims.User.ID, nil
}
