package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/global-remit/teller-desk/src/internal/commons"
	"github.com/global-remit/teller-desk/src/internal/logger"
)

const realm = `realm="teller-desk"`

// BasicAuth guards channel endpoints with the configured channel id and key.
// An empty id or key rejects every request.
func BasicAuth(channelID, channelKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if channelID == "" || channelKey == "" {
				logger.Error("channel auth middleware missing server configuration", nil, logger.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
				})
				reject(w, http.StatusInternalServerError, "", "server auth configuration is missing")
				return
			}

			id, key, ok := r.BasicAuth()
			if !ok || !secureEqual(id, channelID) || !secureEqual(key, channelKey) {
				logger.Info("channel auth middleware unauthorized request", logger.Fields{
					"method":    r.Method,
					"path":      r.URL.Path,
					"channelId": id,
				})
				reject(w, http.StatusUnauthorized, "Basic "+realm, "channel credentials invalid or missing")
				return
			}

			logger.Debug("channel auth middleware authorized request", logger.Fields{
				"method":    r.Method,
				"path":      r.URL.Path,
				"channelId": id,
			})
			next.ServeHTTP(w, r)
		})
	}
}

func secureEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// reject writes the standard error envelope. challenge, when set, goes out as
// WWW-Authenticate.
func reject(w http.ResponseWriter, status int, challenge string, reason string) {
	message := "unauthorized"
	if status == http.StatusInternalServerError {
		message = "server misconfigured"
	}
	if challenge != "" {
		w.Header().Set("WWW-Authenticate", challenge)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(commons.ErrorResponse[struct{}](message, reason))
}
