package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/devconnect/devconnect-api/internal/service"
	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey contextKey = "userID"

	// TokenHeader is the single designated header protected routes read.
	TokenHeader = "x-auth-token"
)

// Auth rejects requests without a verifiable token and attaches the verified
// user id to the request context. It never touches stored state.
func Auth(tokens *service.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(TokenHeader)
			if token == "" {
				unauthorized(w, "No token, authorization denied")
				return
			}

			userID, err := tokens.Verify(token)
			if err != nil {
				log.Printf("ERROR [middleware.Auth] token verification failed: %v", err)
				unauthorized(w, "Token is not valid")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID returns the authenticated user id attached by Auth.
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"msg": msg})
}
