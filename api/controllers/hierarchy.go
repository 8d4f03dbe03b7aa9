package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/duracem/nameplate-backend/api/middleware"
	"github.com/duracem/nameplate-backend/api/responses"
	"github.com/duracem/nameplate-backend/internal/hierarchy"
	"github.com/duracem/nameplate-backend/pkg/enums"
	pkgerrors "github.com/duracem/nameplate-backend/pkg/errors"
	"github.com/duracem/nameplate-backend/pkg/logger"
)

// checkHierarchyScope rejects drill-downs outside the caller's own slice of
// the hierarchy. Admins pass unconditionally.
func checkHierarchyScope(r *http.Request, rmo, officer string) error {
	ctx := r.Context()
	switch middleware.RoleFromContext(ctx) {
	case string(enums.RoleRMO):
		if own := middleware.RMOFromContext(ctx); !strings.EqualFold(rmo, own) {
			return pkgerrors.New(pkgerrors.CodeForbidden, "rmo users may only browse their own regional office")
		}
	case string(enums.RoleOfficer):
		if officer != "" && officer != middleware.OfficerNumberFromContext(ctx) {
			return pkgerrors.New(pkgerrors.CodeForbidden, "officers may only browse their own lots")
		}
	}
	return nil
}

// HierarchyRMOs lists every regional office with its officer count.
func HierarchyRMOs(svc hierarchy.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "hierarchy service unavailable"))
			return
		}

		rmos, err := svc.ListRMOs(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rmos)
	}
}

// HierarchyOfficers lists the officers under one regional office.
func HierarchyOfficers(svc hierarchy.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "hierarchy service unavailable"))
			return
		}

		rmo := strings.TrimSpace(chi.URLParam(r, "rmo"))
		if err := checkHierarchyScope(r, rmo, ""); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		officers, err := svc.ListOfficers(r.Context(), rmo)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, officers)
	}
}

// HierarchyLots lists the lots an officer has submitted nameplates under.
func HierarchyLots(svc hierarchy.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "hierarchy service unavailable"))
			return
		}

		rmo := strings.TrimSpace(chi.URLParam(r, "rmo"))
		officer := strings.TrimSpace(chi.URLParam(r, "officer"))
		if err := checkHierarchyScope(r, rmo, officer); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lots, err := svc.ListLots(r.Context(), rmo, officer)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, lots)
	}
}
