package controllers

import (
	"net/http"
	"strings"

	"github.com/duracem/nameplate-backend/api/middleware"
	"github.com/duracem/nameplate-backend/api/responses"
	"github.com/duracem/nameplate-backend/internal/uploads"
	"github.com/duracem/nameplate-backend/pkg/config"
	pkgerrors "github.com/duracem/nameplate-backend/pkg/errors"
	"github.com/duracem/nameplate-backend/pkg/logger"
)

// UploadImage stores a nameplate image from a multipart form. The officer
// number comes from the session when present, otherwise from the form field.
func UploadImage(svc uploads.Service, cfg config.UploadConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "uploads service unavailable"))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, cfg.MaxBytes()+1024)
		if err := r.ParseMultipartForm(cfg.MaxBytes()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file field is required"))
			return
		}
		defer file.Close()

		officer := middleware.OfficerNumberFromContext(r.Context())
		if officer == "" {
			officer = strings.TrimSpace(r.FormValue("officer"))
		}

		result, err := svc.Upload(r.Context(), uploads.UploadParams{
			Officer:   officer,
			Filename:  header.Filename,
			SizeBytes: header.Size,
			Body:      file,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
