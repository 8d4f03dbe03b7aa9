package controllers

import (
	"net/http"

	"github.com/duracem/nameplate-backend/api/middleware"
	"github.com/duracem/nameplate-backend/api/responses"
	"github.com/duracem/nameplate-backend/internal/dashboard"
	"github.com/duracem/nameplate-backend/pkg/enums"
	pkgerrors "github.com/duracem/nameplate-backend/pkg/errors"
	"github.com/duracem/nameplate-backend/pkg/logger"
)

// DashboardStats returns the landing-page counters. Officers see their own
// workload, admins and rmo users see the whole program.
func DashboardStats(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		role, err := enums.ParseRole(middleware.RoleFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session required"))
			return
		}

		stats, err := svc.Stats(r.Context(), role, middleware.OfficerNumberFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, stats)
	}
}
