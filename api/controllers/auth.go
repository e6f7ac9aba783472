package controllers

import (
	"net/http"

	"github.com/kaamsetu/gigwork-backend/api/middleware"
	"github.com/kaamsetu/gigwork-backend/api/responses"
	"github.com/kaamsetu/gigwork-backend/api/validators"
	"github.com/kaamsetu/gigwork-backend/internal/auth"
	"github.com/kaamsetu/gigwork-backend/pkg/config"
	pkgerrors "github.com/kaamsetu/gigwork-backend/pkg/errors"
	"github.com/kaamsetu/gigwork-backend/pkg/logger"
)

// AuthSignup handles account creation for both workers and clients.
func AuthSignup(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body auth.SignupRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Signup(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// AuthLogin wires the login endpoint into the HTTP layer. The access token
// travels in the body for API clients and in an HTTP-only cookie for
// browsers.
func AuthLogin(svc auth.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
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

		http.SetCookie(w, sessionCookie(cfg, result.AccessToken))
		responses.WriteSuccess(w, result)
	}
}

// AuthLogout clears the session cookie. The token itself stays valid until
// expiry since no revocation list is kept.
func AuthLogout(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie := sessionCookie(cfg, "")
		cookie.MaxAge = -1
		http.SetCookie(w, cookie)
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}

func sessionCookie(cfg *config.Config, token string) *http.Cookie {
	cookie := &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if cfg != nil {
		cookie.MaxAge = int(cfg.JWT.SessionTTL().Seconds())
		cookie.Secure = !cfg.App.IsDev()
	}
	return cookie
}
