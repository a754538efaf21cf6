package middleware

import (
	"net/http"
)

// RequireAdmin gates the admin area behind the session's admin flag.
func RequireAdmin(sm *SessionManager, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !sm.IsAdmin(r) {
			sm.Flash(w, r, "Silakan login terlebih dahulu")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}
