package middleware

import (
	"net/http"
)

// RequireLevel returns middleware that allows access only to accounts whose
// token level matches one of the given names (e.g. domain.LevelAdmin).
func RequireLevel(allowedLevels ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			for _, level := range allowedLevels {
				if claims.Level == level {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeJSONError(w, http.StatusForbidden, "access denied")
		})
	}
}
