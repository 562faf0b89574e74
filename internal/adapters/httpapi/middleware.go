package httpapi

import (
	"ImaniConsole/internal/auth"
	"context"
	"net/http"
	"strings"
)

type contextKey string

const operatorEmailKey contextKey = "operator_email"

// RequireAuth rejects requests without a valid Bearer session token and
// stores the operator email on the request context.
func RequireAuth(gate *auth.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				respondError(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			email, err := gate.Verify(token)
			if err != nil {
				respondError(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), operatorEmailKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OperatorEmail returns the authenticated operator's email, if any.
func OperatorEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(operatorEmailKey).(string)
	return email, ok
}
