package uploads

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/duracem/nameplate-backend/pkg/config"
	pkgerrors "github.com/duracem/nameplate-backend/pkg/errors"
	"github.com/duracem/nameplate-backend/pkg/metrics"
	"github.com/duracem/nameplate-backend/pkg/storage/s3"
)

var allowedExtensions = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
}

// UploadParams describes one incoming image.
type UploadParams struct {
	Officer   string
	Filename  string
	SizeBytes int64
	Body      io.Reader
}

// UploadResult returns the stored object's public location.
type UploadResult struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// Service stores nameplate images in the object store.
type Service interface {
	Upload(ctx context.Context, params UploadParams) (*UploadResult, error)
}

type service struct {
	store    s3.Uploader
	cfg      config.UploadConfig
	nowFn    func() time.Time
	uploadMx *metrics.NameplateMetrics
}

// ServiceParams bundles the upload dependencies. Store may be nil when
// object storage is not configured; uploads then fail with a dependency error.
type ServiceParams struct {
	Store   s3.Uploader
	Config  config.UploadConfig
	Metrics *metrics.NameplateMetrics
}

// NewService wires the upload service.
func NewService(params ServiceParams) Service {
	return &service{
		store:    params.Store,
		cfg:      params.Config,
		nowFn:    time.Now,
		uploadMx: params.Metrics,
	}
}

func (s *service) Upload(ctx context.Context, params UploadParams) (*UploadResult, error) {
	if s.store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "object storage is not configured")
	}

	officer := strings.TrimSpace(params.Officer)
	if officer == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "officer is required")
	}
	if params.Body == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file is required")
	}

	ext := strings.ToLower(filepath.Ext(params.Filename))
	contentType, ok := allowedExtensions[ext]
	if !ok {
		s.uploadMx.IncUploadFailure()
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported image type").
			WithDetails(map[string]any{"extension": ext})
	}

	maxBytes := s.cfg.MaxBytes()
	if maxBytes > 0 && params.SizeBytes > maxBytes {
		s.uploadMx.IncUploadFailure()
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file exceeds the upload size limit").
			WithDetails(map[string]any{"maxBytes": maxBytes})
	}

	key := fmt.Sprintf("nameplate-%s-%d%s", officer, s.nowFn().UnixMilli(), ext)

	url, err := s.store.Put(ctx, key, contentType, params.Body)
	if err != nil {
		s.uploadMx.IncUploadFailure()
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store image")
	}

	s.uploadMx.ObserveUpload(params.SizeBytes)
	return &UploadResult{URL: url, Key: key}, nil
}
