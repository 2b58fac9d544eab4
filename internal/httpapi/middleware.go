package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type contextKey string

const sessionIDKey contextKey = "session_id"

// TokenVerifier validates an auth provider ID token and returns the user
// id it belongs to.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (string, error)
}

// SessionMiddleware resolves the cart session identity for a request:
// a verified bearer token wins, then an explicit X-Session-ID header, then
// a freshly generated guest id. The resolved id is echoed back in the
// X-Session-ID response header so guest clients can keep their cart.
func SessionMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""

			if verifier != nil {
				if token, ok := bearerToken(r); ok {
					if uid, err := verifier.Verify(r.Context(), token); err == nil {
						sessionID = uid
					}
				}
			}
			if sessionID == "" {
				sessionID = r.Header.Get("X-Session-ID")
			}
			if sessionID == "" {
				sessionID = "guest-" + uuid.NewString()
			}

			w.Header().Set("X-Session-ID", sessionID)
			ctx := context.WithValue(r.Context(), sessionIDKey, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionID returns the session identity resolved by SessionMiddleware.
func SessionID(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}
