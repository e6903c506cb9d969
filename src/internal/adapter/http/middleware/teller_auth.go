package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/global-remit/teller-desk/src/internal/domain"
	"github.com/global-remit/teller-desk/src/internal/logger"
)

type TokenParser interface {
	ParseToken(token string) (domain.Teller, error)
}

type tellerContextKey struct{}

// TellerAuth requires an "Authorization: Bearer" token and puts the teller it
// names on the request context.
func TellerAuth(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				logger.Info("teller auth middleware missing bearer token", logger.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
				})
				reject(w, http.StatusUnauthorized, "Bearer "+realm, "bearer token required")
				return
			}

			teller, err := parser.ParseToken(token)
			if err != nil {
				logger.Info("teller auth middleware rejected token", logger.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
					"error":  err.Error(),
				})
				reject(w, http.StatusUnauthorized, `Bearer `+realm+`, error="invalid_token"`, "bearer token invalid or expired")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithTeller(r.Context(), teller)))
		})
	}
}

func WithTeller(ctx context.Context, teller domain.Teller) context.Context {
	return context.WithValue(ctx, tellerContextKey{}, teller)
}

func TellerFromContext(ctx context.Context) (domain.Teller, bool) {
	teller, ok := ctx.Value(tellerContextKey{}).(domain.Teller)
	if !ok || teller.ID == "" {
		return domain.Teller{}, false
	}
	return teller, true
}

func bearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
