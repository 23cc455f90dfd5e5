package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// AdminOnly gates the report routes behind the operator bearer token. The
// full user/role stack lives in the back-office service; this engine only
// needs to tell operators from everyone else.
func AdminOnly(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			presented := strings.TrimPrefix(req.Header.Get("Authorization"), "Bearer ")
			if presented == "" ||
				subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
				zerolog.Ctx(req.Context()).Warn().
					Str("path", req.URL.Path).
					Msg("rejected unauthenticated request")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized"}`))
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}
