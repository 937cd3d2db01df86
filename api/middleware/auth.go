package middleware

import (
	"context"
	"net/http"

	"github.com/cognitiondigest/digest-backend/api/responses"
	pkgAuth "github.com/cognitiondigest/digest-backend/pkg/auth"
	"github.com/cognitiondigest/digest-backend/pkg/config"
	pkgerrors "github.com/cognitiondigest/digest-backend/pkg/errors"
	"github.com/cognitiondigest/digest-backend/pkg/logger"
)

type ctxKey string

const ctxSessionEmail ctxKey = "session_email"

// SessionEmail returns the authenticated session email, if any.
func SessionEmail(ctx context.Context) string {
	if email, ok := ctx.Value(ctxSessionEmail).(string); ok {
		return email
	}
	return ""
}

// Auth admits a request carrying either a valid session cookie or an
// allow-listed token (bearer header or token cookie). An empty allow-set
// accepts any non-empty token.
func Auth(cfg config.AuthConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	allowed := cfg.AllowedTokens()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cookie, err := r.Cookie(cfg.SessionCookie); err == nil && cookie.Value != "" {
				if claims, err := pkgAuth.ParseSessionToken(cfg, cookie.Value); err == nil {
					ctx := context.WithValue(r.Context(), ctxSessionEmail, claims.Email)
					if logg != nil {
						ctx = logg.WithField(ctx, "session_email", claims.Email)
					}
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			token := pkgAuth.BearerToken(r.Header.Get("Authorization"))
			if token == "" {
				if cookie, err := r.Cookie(cfg.TokenCookie); err == nil {
					token = cookie.Value
				}
			}
			if pkgAuth.TokenAccepted(allowed, token) {
				next.ServeHTTP(w, r)
				return
			}

			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing or invalid credentials"))
		})
	}
}
