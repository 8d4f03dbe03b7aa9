package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/duracem/nameplate-backend/api/middleware"
	"github.com/duracem/nameplate-backend/api/responses"
	"github.com/duracem/nameplate-backend/api/validators"
	"github.com/duracem/nameplate-backend/internal/nameplates"
	"github.com/duracem/nameplate-backend/pkg/enums"
	pkgerrors "github.com/duracem/nameplate-backend/pkg/errors"
	"github.com/duracem/nameplate-backend/pkg/logger"
	"github.com/duracem/nameplate-backend/pkg/pagination"
)

// NameplateCreate accepts a new nameplate submission for the officer and lot
// named in the path. Submissions always land in the verification queue.
func NameplateCreate(svc nameplates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "nameplates service unavailable"))
			return
		}

		officer := strings.TrimSpace(chi.URLParam(r, "officer"))
		lot := strings.TrimSpace(chi.URLParam(r, "lot"))
		if officer == "" || lot == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "officer and lot are required"))
			return
		}

		var body nameplates.CreateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		body.HouseName = validators.SanitizeString(body.HouseName, 128)
		body.OwnerName = validators.SanitizeString(body.OwnerName, 128)
		body.SpouseName = validators.SanitizeString(body.SpouseName, 128)
		body.Address = validators.SanitizeString(body.Address, 256)
		body.OfficerName = validators.SanitizeString(body.OfficerName, 128)
		body.Designation = validators.SanitizeString(body.Designation, 64)

		record, err := svc.Create(r.Context(), nameplates.CreateParams{
			Officer: officer,
			Lot:     lot,
			Request: body,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, record)
	}
}

// NameplateList returns a page of the verification queue, optionally filtered
// by rmo, officer, and verification state.
func NameplateList(svc nameplates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "nameplates service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		offset, err := validators.ParseQueryInt(r, "offset", 0, 0, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := nameplates.ListParams{
			RMO:     strings.TrimSpace(r.URL.Query().Get("rmo")),
			Officer: strings.TrimSpace(r.URL.Query().Get("officer")),
			Limit:   limit,
			Offset:  offset,
		}
		if err := scopeListParams(r, &params); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("verified")); raw != "" {
			value, err := strconv.ParseBool(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid verified value"))
				return
			}
			params.Verified = &value
		}

		result, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// scopeListParams narrows queue filters to the caller's own slice. Officers
// only see their own records, rmo users only their regional office.
func scopeListParams(r *http.Request, params *nameplates.ListParams) error {
	ctx := r.Context()
	switch middleware.RoleFromContext(ctx) {
	case string(enums.RoleOfficer):
		own := middleware.OfficerNumberFromContext(ctx)
		if params.Officer != "" && params.Officer != own {
			return pkgerrors.New(pkgerrors.CodeForbidden, "officers may only list their own records")
		}
		params.Officer = own
	case string(enums.RoleRMO):
		own := middleware.RMOFromContext(ctx)
		if params.RMO != "" && !strings.EqualFold(params.RMO, own) {
			return pkgerrors.New(pkgerrors.CodeForbidden, "rmo users may only list their own regional office")
		}
		params.RMO = own
	}
	return nil
}

// NameplateVerify flips one queued record to verified. The record is addressed
// through its full hierarchy path so a stale link cannot verify the wrong row.
func NameplateVerify(svc nameplates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "nameplates service unavailable"))
			return
		}

		rawID := strings.TrimSpace(chi.URLParam(r, "id"))
		id, err := uuid.Parse(rawID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid nameplate id"))
			return
		}

		pathRMO := strings.TrimSpace(chi.URLParam(r, "rmo"))
		switch middleware.RoleFromContext(r.Context()) {
		case string(enums.RoleRMO):
			if own := middleware.RMOFromContext(r.Context()); !strings.EqualFold(pathRMO, own) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "rmo users may only verify within their own regional office"))
				return
			}
		case string(enums.RoleAdmin):
			// admins verify anywhere
		default:
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "verification requires an rmo or admin session"))
			return
		}

		record, err := svc.Verify(r.Context(), nameplates.VerifyParams{
			RMO:     pathRMO,
			Officer: strings.TrimSpace(chi.URLParam(r, "officer")),
			Lot:     strings.TrimSpace(chi.URLParam(r, "lot")),
			ID:      id,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}
