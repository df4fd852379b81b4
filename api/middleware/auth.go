package middleware

import (
	"net/http"
	"strings"

	"github.com/avdiagram/catalog-backend/api/responses"
	pkgAuth "github.com/avdiagram/catalog-backend/pkg/auth"
	"github.com/avdiagram/catalog-backend/pkg/auth/session"
	"github.com/avdiagram/catalog-backend/pkg/config"
	pkgerrors "github.com/avdiagram/catalog-backend/pkg/errors"
	"github.com/avdiagram/catalog-backend/pkg/logger"
	"github.com/avdiagram/catalog-backend/pkg/metrics"
)

// Auth validates the access token and seeds the request context with the
// claims. The token is taken from the Authorization header when present,
// falling back to the session cookie.
func Auth(cfg config.JWTConfig, verifier session.AccessSessionChecker, reqMetrics *metrics.RequestMetrics, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r, cfg.CookieName)
			if token == "" {
				reqMetrics.IncDenied("missing_credentials")
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				reqMetrics.IncDenied("invalid_token")
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			if claims.ID == "" {
				reqMetrics.IncDenied("missing_session_id")
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id"))
				return
			}

			if verifier != nil {
				ok, err := verifier.HasSession(r.Context(), claims.ID)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
					return
				}
				if !ok {
					reqMetrics.IncDenied("session_ended")
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable"))
					return
				}
			}

			ctx := WithUserID(r.Context(), claims.UserID.String())
			ctx = WithUsername(ctx, claims.Username)
			ctx = WithRole(ctx, string(claims.Role))

			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"user_id":    claims.UserID.String(),
					"actor_role": string(claims.Role),
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request, cookieName string) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw != "" {
		token := raw
		if strings.HasPrefix(strings.ToLower(token), "bearer ") {
			token = strings.TrimSpace(token[7:])
		}
		return token
	}

	if cookieName != "" {
		if cookie, err := r.Cookie(cookieName); err == nil {
			return strings.TrimSpace(cookie.Value)
		}
	}
	return ""
}
