package middleware

import (
	"net/http"
	"strings"

	"github.com/stashbin/stashbin/internal/ctxkeys"
	"github.com/stashbin/stashbin/internal/service"
)

// Auth resolves the session cookie and, when it names a live session, puts
// user and session into the request context. Requests without a valid
// session pass through unauthenticated; gating happens in RequireAuth.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := service.SessionCookie(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			user, session, err := authService.Authenticate(token)
			if err != nil {
				// Stale or tampered cookie, drop it
				authService.ClearSessionCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			user.PasswordHash = ""

			ctx := ctxkeys.WithUser(r.Context(), user)
			ctx = ctxkeys.WithSession(ctx, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth ensures the request carries an authenticated user. API
// clients get a JSON 401; browser-style requests are redirected to login.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxkeys.User(r.Context())
		if user == nil {
			if wantsJSON(r) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"authentication required"}`))
				return
			}
			http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	}
}

// RequireGuest ensures the user is not authenticated
func RequireGuest(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxkeys.User(r.Context())
		if user != nil {
			http.Redirect(w, r, "/files", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	}
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
