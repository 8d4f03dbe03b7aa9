package nameplates

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/duracem/nameplate-backend/pkg/db/models"
	"github.com/duracem/nameplate-backend/pkg/enums"
	pkgerrors "github.com/duracem/nameplate-backend/pkg/errors"
	"github.com/duracem/nameplate-backend/pkg/metrics"
	"github.com/duracem/nameplate-backend/pkg/pagination"
)

// Service defines the nameplate lifecycle operations.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*models.UnverifiedNameplate, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Verify(ctx context.Context, params VerifyParams) (*models.UnverifiedNameplate, error)
	Print(ctx context.Context, actorID uuid.UUID, req PrintRequest) (*PrintResult, error)
}

type repository interface {
	Create(ctx context.Context, record *models.UnverifiedNameplate) error
	List(ctx context.Context, params listQuery) ([]models.UnverifiedNameplate, int64, error)
	MarkVerified(ctx context.Context, params VerifyParams) (verifyResult, error)
	FindByPath(ctx context.Context, params VerifyParams) (*models.UnverifiedNameplate, error)
}

type printRepository interface {
	InsertPrinted(ctx context.Context, rows []models.VerifiedNameplate) error
}

type notificationAppender interface {
	Append(ctx context.Context, tx *gorm.DB, userID uuid.UUID, message string, kind enums.NotificationType) error
}

// TxRunner executes a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams bundles the dependencies for the nameplate service.
type ServiceParams struct {
	Repo             repository
	TxRunner         TxRunner
	PrintRepoFactory func(tx *gorm.DB) printRepository
	Notifier         notificationAppender
	Metrics          *metrics.NameplateMetrics
}

type service struct {
	repo        repository
	tx          TxRunner
	printRepo   func(tx *gorm.DB) printRepository
	notifier    notificationAppender
	nowFn       func() time.Time
	lifecycleMx *metrics.NameplateMetrics
}

// NewService wires the nameplate lifecycle dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "nameplates repository required")
	}
	if params.TxRunner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transaction runner required")
	}
	printRepo := params.PrintRepoFactory
	if printRepo == nil {
		printRepo = func(tx *gorm.DB) printRepository {
			return NewRepository(tx)
		}
	}
	return &service{
		repo:        params.Repo,
		tx:          params.TxRunner,
		printRepo:   printRepo,
		notifier:    params.Notifier,
		nowFn:       time.Now,
		lifecycleMx: params.Metrics,
	}, nil
}

func (s *service) Create(ctx context.Context, params CreateParams) (*models.UnverifiedNameplate, error) {
	officer := strings.TrimSpace(params.Officer)
	lot := strings.TrimSpace(params.Lot)
	if officer == "" || lot == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "officer and lot are required")
	}

	req := params.Request
	record := &models.UnverifiedNameplate{
		Theme:        strings.TrimSpace(req.Theme),
		Background:   strings.TrimSpace(req.Background),
		HouseName:    strings.TrimSpace(req.HouseName),
		OwnerName:    strings.TrimSpace(req.OwnerName),
		SpouseName:   strings.TrimSpace(req.SpouseName),
		Address:      strings.TrimSpace(req.Address),
		TextColor:    strings.TrimSpace(req.TextColor),
		FontSize:     strings.TrimSpace(req.FontSize),
		RMO:          strings.ToUpper(strings.TrimSpace(req.RMO)),
		Officer:      officer,
		Lot:          lot,
		OfficerName:  strings.TrimSpace(req.OfficerName),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		MobileNumber: strings.TrimSpace(req.MobileNumber),
		Designation:  strings.TrimSpace(req.Designation),
		ImageURL:     strings.TrimSpace(req.ImageURL),
		// submissions always enter the queue unverified, whatever the client sent
		Verified: false,
	}
	if record.TextColor == "" {
		record.TextColor = "#000000"
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create nameplate")
	}
	s.lifecycleMx.IncCreated(record.RMO)
	return record, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	normalized := pagination.Normalize(pagination.Params{Limit: params.Limit, Offset: params.Offset})

	records, total, err := s.repo.List(ctx, listQuery{
		RMO:      strings.TrimSpace(params.RMO),
		Officer:  strings.TrimSpace(params.Officer),
		Verified: params.Verified,
		Limit:    normalized.Limit,
		Offset:   normalized.Offset,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list nameplates")
	}
	if records == nil {
		records = []models.UnverifiedNameplate{}
	}

	return &ListResult{
		Data:       records,
		Pagination: pagination.PageFor(normalized, total),
	}, nil
}

func (s *service) Verify(ctx context.Context, params VerifyParams) (*models.UnverifiedNameplate, error) {
	if params.ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nameplate id required")
	}

	result, err := s.repo.MarkVerified(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "verify nameplate")
	}
	if !result.Found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "nameplate not found")
	}
	if !result.Updated {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "nameplate already verified")
	}

	s.lifecycleMx.IncVerified()

	record, err := s.repo.FindByPath(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload nameplate")
	}
	return record, nil
}

func (s *service) Print(ctx context.Context, actorID uuid.UUID, req PrintRequest) (*PrintResult, error) {
	if len(req.Records) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "records are required")
	}

	rmo := strings.ToUpper(strings.TrimSpace(req.RMO))
	officer := strings.TrimSpace(req.OfficerID)
	lot := strings.TrimSpace(req.Lot)
	if rmo == "" || officer == "" || lot == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rmo, officerId and lot are required")
	}

	rows := make([]models.VerifiedNameplate, 0, len(req.Records))
	for i, rec := range req.Records {
		if strings.TrimSpace(rec.HouseName) == "" || strings.TrimSpace(rec.OwnerName) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "record is missing house or owner name").
				WithDetails(map[string]any{"index": i})
		}
		rows = append(rows, models.VerifiedNameplate{
			RMO:        rmo,
			OfficerID:  officer,
			Lot:        lot,
			HouseName:  strings.TrimSpace(rec.HouseName),
			OwnerName:  strings.TrimSpace(rec.OwnerName),
			SpouseName: strings.TrimSpace(rec.SpouseName),
			Address:    strings.TrimSpace(rec.Address),
			ImageURL:   strings.TrimSpace(rec.ImageURL),
		})
	}

	started := s.nowFn()
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.printRepo(tx).InsertPrinted(ctx, rows); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert printed rows")
		}
		if s.notifier != nil && actorID != uuid.Nil {
			message := fmt.Sprintf("Printed %d nameplates for %s/%s lot %s", len(rows), rmo, officer, lot)
			if err := s.notifier.Append(ctx, tx, actorID, message, enums.NotificationTypeSuccess); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record print notification")
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.lifecycleMx.ObservePrint(len(rows), s.nowFn().Sub(started))

	return &PrintResult{
		Inserted:  len(rows),
		RMO:       rmo,
		Officer:   officer,
		Lot:       lot,
		PrintedAt: started.UTC(),
	}, nil
}
