package notifications

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/duracem/nameplate-backend/pkg/db/models"
	"github.com/duracem/nameplate-backend/pkg/enums"
	pkgerrors "github.com/duracem/nameplate-backend/pkg/errors"
	"github.com/duracem/nameplate-backend/pkg/pagination"
)

// Service defines the append-only notification operations.
type Service interface {
	Append(ctx context.Context, tx *gorm.DB, userID uuid.UUID, message string, kind enums.NotificationType) error
	List(ctx context.Context, params ListParams) (*ListResult, error)
}

type service struct {
	repo Repository
}

// ListParams configures pagination for a user's notifications.
type ListParams struct {
	UserID uuid.UUID
	Limit  int
	Offset int
}

// ListResult wraps returned notifications and the offset pagination metadata.
type ListResult struct {
	Data       []models.Notification `json:"data"`
	Pagination pagination.Page       `json:"pagination"`
}

// NewService wires notifications dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Append(ctx context.Context, tx *gorm.DB, userID uuid.UUID, message string, kind enums.NotificationType) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "message is required")
	}
	if kind == "" {
		kind = enums.NotificationTypeInfo
	}
	if !kind.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid notification type")
	}

	err := s.repo.WithTx(tx).Create(ctx, &models.Notification{
		UserID:  userID,
		Message: message,
		Type:    kind,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create notification")
	}
	return nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	normalized := pagination.Normalize(pagination.Params{Limit: params.Limit, Offset: params.Offset})

	rows, total, err := s.repo.List(ctx, listNotificationsParams{
		UserID: params.UserID,
		Limit:  normalized.Limit,
		Offset: normalized.Offset,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notifications")
	}
	if rows == nil {
		rows = []models.Notification{}
	}

	return &ListResult{
		Data:       rows,
		Pagination: pagination.PageFor(normalized, total),
	}, nil
}
