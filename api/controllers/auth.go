package controllers

import (
	"net/http"
	"time"

	"github.com/avdiagram/catalog-backend/api/responses"
	"github.com/avdiagram/catalog-backend/api/validators"
	"github.com/avdiagram/catalog-backend/internal/auth"
	"github.com/avdiagram/catalog-backend/pkg/config"
	pkgerrors "github.com/avdiagram/catalog-backend/pkg/errors"
	"github.com/avdiagram/catalog-backend/pkg/logger"
)

const accessTokenHeader = "X-Catalog-Token"

// AuthLogin wires the login endpoint into the HTTP layer. The access token is
// returned in the body and mirrored into an HttpOnly cookie for browser
// clients.
func AuthLogin(svc auth.Service, cfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		setSessionCookie(w, cfg, result.AccessToken)
		w.Header().Set(accessTokenHeader, result.AccessToken)
		responses.WriteSuccess(w, result)
	}
}

func setSessionCookie(w http.ResponseWriter, cfg config.JWTConfig, token string) {
	if cfg.CookieName == "" {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   cfg.ExpirationMinutes * 60,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter, cfg config.JWTConfig) {
	if cfg.CookieName == "" {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
