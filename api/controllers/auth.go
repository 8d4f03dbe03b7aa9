package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/duracem/nameplate-backend/api/middleware"
	"github.com/duracem/nameplate-backend/api/responses"
	"github.com/duracem/nameplate-backend/api/validators"
	"github.com/duracem/nameplate-backend/internal/auth"
	"github.com/duracem/nameplate-backend/pkg/config"
	pkgerrors "github.com/duracem/nameplate-backend/pkg/errors"
	"github.com/duracem/nameplate-backend/pkg/logger"
)

// AuthRegister onboards a user and assigns the officer number.
func AuthRegister(svc auth.RegisterService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body auth.RegisterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Register(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// AuthLogin exchanges credentials for a session. The token is returned in the
// body and also set as an HttpOnly cookie for browser clients. The cookie is
// Secure everywhere except local dev.
func AuthLogin(svc auth.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
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

		http.SetCookie(w, &http.Cookie{
			Name:     cfg.JWT.CookieName,
			Value:    result.Token,
			Path:     "/",
			Expires:  time.Now().Add(cfg.JWT.Expiration()),
			MaxAge:   int(cfg.JWT.Expiration().Seconds()),
			HttpOnly: true,
			Secure:   !cfg.App.IsDev(),
			SameSite: http.SameSiteStrictMode,
		})

		responses.WriteSuccess(w, result)
	}
}

// AuthMe returns the profile behind the active session.
func AuthMe(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		userID, err := uuid.Parse(middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session required"))
			return
		}

		profile, err := svc.Me(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}

// AuthLogout clears the session cookie. The token itself simply expires.
func AuthLogout(cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     cfg.JWT.CookieName,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   !cfg.App.IsDev(),
			SameSite: http.SameSiteStrictMode,
		})

		responses.WriteSuccess(w, map[string]string{"status": "logged out"})
	}
}
