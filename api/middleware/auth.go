package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/duracem/nameplate-backend/api/responses"
	pkgAuth "github.com/duracem/nameplate-backend/pkg/auth"
	"github.com/duracem/nameplate-backend/pkg/config"
	pkgerrors "github.com/duracem/nameplate-backend/pkg/errors"
	"github.com/duracem/nameplate-backend/pkg/logger"
)

// Auth validates the session token and seeds the request context with the
// claims. The token is read from the session cookie first, with an
// Authorization bearer header as fallback for non-browser clients.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r, cfg.CookieName)
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseSessionToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			ctx := context.WithValue(r.Context(), ctxUserID, claims.UserID.String())
			ctx = context.WithValue(ctx, ctxRole, string(claims.Role))
			if claims.OfficerNumber != "" {
				ctx = context.WithValue(ctx, ctxOfficerNumber, claims.OfficerNumber)
			}
			if claims.RMO != "" {
				ctx = context.WithValue(ctx, ctxRMO, claims.RMO)
			}

			if logg != nil {
				fields := map[string]any{
					"user_id":    claims.UserID.String(),
					"actor_role": string(claims.Role),
				}
				if claims.OfficerNumber != "" {
					fields["officer"] = claims.OfficerNumber
				}
				if claims.RMO != "" {
					fields["rmo"] = claims.RMO
				}
				ctx = logg.WithFields(ctx, fields)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request, cookieName string) string {
	if cookieName != "" {
		if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
			return cookie.Value
		}
	}
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}
