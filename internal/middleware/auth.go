package middleware

import (
	"context"
	"net/http"

	"github.com/devconnector/backend/internal/auth"
	"github.com/devconnector/backend/internal/models"
)

type contextKey string

const UserIDKey contextKey = "userID"

// TokenHeader is the single header carrying the credential.
const TokenHeader = "x-auth-token"

// TokenAuth validates the x-auth-token header and puts the authenticated
// user id on the request context. It never consults the user store, so a
// token for a deleted account passes until it expires.
func TokenAuth(jwtSecret string) func(http.Handler) http.Handler {
	secret := []byte(jwtSecret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := r.Header.Get(TokenHeader)
			if tokenString == "" {
				writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("No token, authorization denied"))
				return
			}

			userID, err := auth.VerifyToken(tokenString, secret)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Token is not valid"))
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts the authenticated user id from context.
func GetUserID(ctx context.Context) string {
	userID, ok := ctx.Value(UserIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}
