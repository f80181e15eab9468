package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"splitmate/pkg/response"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// UserIDKey is the context key for the authenticated user ID
	UserIDKey ContextKey = "user_id"
)

// RequestUser extracts the acting user from the X-User-ID header.
// Authentication itself lives outside this service; the gateway in front of
// it is expected to have verified the identity it forwards here.
func RequestUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-User-ID")
		if raw == "" {
			response.Unauthorized(w, "X-User-ID header required")
			return
		}

		userID, err := uuid.Parse(raw)
		if err != nil {
			response.Unauthorized(w, "X-User-ID must be a valid UUID")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID extracts the user ID from the request context
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}
