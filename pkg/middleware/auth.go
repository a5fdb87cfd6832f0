package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

// APIKey returns middleware that guards a route group with a shared-secret
// header. The comparison is constant-time so response latency reveals nothing
// about how much of the key matched. Missing or wrong keys get the same
// generic 401 body.
func APIKey(header, key string) func(http.Handler) http.Handler {
	secret := []byte(key)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := r.Header.Get(header)
			if presented == "" || subtle.ConstantTimeCompare(secret, []byte(presented)) != 1 {
				writeAuthError(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    "rest_forbidden",
		"message": "Unauthorized",
	})
}
