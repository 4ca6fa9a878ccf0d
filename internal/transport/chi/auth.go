package chi

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/eacsearch/internal/logger"
)

// exemptPaths are routes that bypass authentication (health, metrics).
var exemptPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// defaultClient names keys configured without a "name:" prefix.
const defaultClient = "default"

// apiKey is one configured credential. Entries are "name:secret" so logs
// can tell the calling front ends apart; a bare secret gets defaultClient.
type apiKey struct {
	client string
	secret []byte
}

func parseAPIKeys(entries []string) []apiKey {
	keys := make([]apiKey, 0, len(entries))
	for _, e := range entries {
		client, secret, ok := strings.Cut(e, ":")
		if !ok {
			client, secret = defaultClient, e
		}
		if secret == "" {
			continue
		}
		keys = append(keys, apiKey{client: client, secret: []byte(secret)})
	}
	return keys
}

// BearerAuthMiddleware validates Bearer tokens and adds the matching client
// name to the request logger. With no usable key, authentication is disabled.
func BearerAuthMiddleware(entries []string) func(http.Handler) http.Handler {
	keys := parseAPIKeys(entries)

	return func(next http.Handler) http.Handler {
		if len(keys) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" {
				writeError(w, http.StatusUnauthorized, ErrorCodeUnauthorized, "missing authorization header")
				return
			}

			token, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok {
				writeError(w, http.StatusUnauthorized,
					ErrorCodeUnauthorized, "authorization header must use Bearer scheme")
				return
			}

			client, ok := matchKey(keys, token)
			if !ok {
				writeError(w, http.StatusUnauthorized, ErrorCodeUnauthorized, "invalid api key")
				return
			}

			ctx := logger.With(r.Context(), zap.String("api_client", client))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// matchKey compares against every key in constant time so the response
// delay leaks neither which key nor how much of it matched.
func matchKey(keys []apiKey, token string) (string, bool) {
	client, found := "", false
	for _, k := range keys {
		if subtle.ConstantTimeCompare(k.secret, []byte(token)) == 1 {
			client, found = k.client, true
		}
	}
	return client, found
}
