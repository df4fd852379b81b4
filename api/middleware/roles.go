package middleware

import (
	"net/http"

	"github.com/avdiagram/catalog-backend/api/responses"
	"github.com/avdiagram/catalog-backend/pkg/enums"
	pkgerrors "github.com/avdiagram/catalog-backend/pkg/errors"
	"github.com/avdiagram/catalog-backend/pkg/logger"
	"github.com/avdiagram/catalog-backend/pkg/metrics"
)

// RequireRole gates the wrapped handler on the actor role seeded by Auth.
func RequireRole(role enums.Role, reqMetrics *metrics.RequestMetrics, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if RoleFromContext(r.Context()) != string(role) {
				reqMetrics.IncDenied("insufficient_role")
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient role"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
