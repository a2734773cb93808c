package auth

import (
	"context"
	"encoding/json"
	"net/http"
)

type contextKey string

const profileIDKey contextKey = "profile_id"
const isAdminKey contextKey = "is_admin"

// ProfileIDFromContext returns the authenticated profile id, if any.
func ProfileIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(profileIDKey).(string)
	return v, ok
}

// WithProfileID stores the profile id in the context.
func WithProfileID(ctx context.Context, profileID string) context.Context {
	return context.WithValue(ctx, profileIDKey, profileID)
}

// IsAdminFromContext returns whether the authenticated profile is an
// administrator. Returns false when not set.
func IsAdminFromContext(ctx context.Context) bool {
	v, _ := ctx.Value(isAdminKey).(bool)
	return v
}

// WithIsAdmin stores the admin flag in the context.
func WithIsAdmin(ctx context.Context, isAdmin bool) context.Context {
	return context.WithValue(ctx, isAdminKey, isAdmin)
}

// RequireAuth verifies the session cookie and puts the profile id and admin
// flag on the request context. Missing or invalid sessions get 401.
func RequireAuth(sessionSecret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName())
			if err != nil {
				unauthorized(w, "unauthorized")
				return
			}

			claims, err := VerifySessionToken(cookie.Value, sessionSecret)
			if err != nil {
				unauthorized(w, "invalid_session")
				return
			}

			ctx := WithProfileID(r.Context(), claims.ProfileID)
			ctx = WithIsAdmin(ctx, claims.IsAdmin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects non-admin sessions with 403. Must run after RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ProfileIDFromContext(r.Context()); !ok {
			unauthorized(w, "unauthorized")
			return
		}
		if !IsAdminFromContext(r.Context()) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "forbidden"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
