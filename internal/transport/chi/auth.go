package chi

import (
	"net/http"
	"strings"
)

const bearerPrefix = "Bearer "

// BearerAuthMiddleware validates Bearer tokens against the configured
// key set. An empty key set disables authentication entirely. Health
// and metrics endpoints are always reachable without a token.
func BearerAuthMiddleware(apiKeys []string) func(http.Handler) http.Handler {
	validKeys := make(map[string]struct{}, len(apiKeys))
	for _, k := range apiKeys {
		if k != "" {
			validKeys[k] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		if len(validKeys) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isExempt(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			switch {
			case auth == "":
				writeError(w, http.StatusUnauthorized, codeBadRequest, "missing authorization header")
			case !strings.HasPrefix(auth, bearerPrefix):
				writeError(w, http.StatusUnauthorized, codeBadRequest, "authorization header must use Bearer scheme")
			default:
				if _, ok := validKeys[auth[len(bearerPrefix):]]; !ok {
					writeError(w, http.StatusUnauthorized, codeBadRequest, "invalid api key")
					return
				}
				next.ServeHTTP(w, r)
			}
		})
	}
}

func isExempt(path string) bool {
	return path == "/health" || path == "/metrics"
}
