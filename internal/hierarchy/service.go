package hierarchy

import (
	"context"
	"strings"

	"github.com/duracem/nameplate-backend/internal/nameplates"
	"github.com/duracem/nameplate-backend/internal/users"
	"github.com/duracem/nameplate-backend/pkg/db/models"
	pkgerrors "github.com/duracem/nameplate-backend/pkg/errors"
)

// Service exposes the RMO / officer / lot drill-down used by the dashboard.
type Service interface {
	ListRMOs(ctx context.Context) ([]users.RMOOfficerCount, error)
	ListOfficers(ctx context.Context, rmo string) ([]users.OfficerSummary, error)
	ListLots(ctx context.Context, rmo, officer string) ([]nameplates.LotSummary, error)
}

type userRepository interface {
	GroupByRMO(ctx context.Context) ([]users.RMOOfficerCount, error)
	ListByRMO(ctx context.Context, rmo string) ([]models.User, error)
}

type nameplateRepository interface {
	GroupByLot(ctx context.Context, rmo, officer string) ([]nameplates.LotSummary, error)
}

type service struct {
	users      userRepository
	nameplates nameplateRepository
}

// ServiceParams bundles the hierarchy dependencies.
type ServiceParams struct {
	UserRepo      userRepository
	NameplateRepo nameplateRepository
}

// NewService wires the drill-down service.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "user repository required")
	}
	if params.NameplateRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "nameplate repository required")
	}
	return &service{users: params.UserRepo, nameplates: params.NameplateRepo}, nil
}

func (s *service) ListRMOs(ctx context.Context) ([]users.RMOOfficerCount, error) {
	rows, err := s.users.GroupByRMO(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list regional offices")
	}
	if rows == nil {
		rows = []users.RMOOfficerCount{}
	}
	return rows, nil
}

func (s *service) ListOfficers(ctx context.Context, rmo string) ([]users.OfficerSummary, error) {
	rmo = strings.ToUpper(strings.TrimSpace(rmo))
	if rmo == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rmo is required")
	}

	officers, err := s.users.ListByRMO(ctx, rmo)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list officers")
	}

	summaries := make([]users.OfficerSummary, 0, len(officers))
	for _, officer := range officers {
		summaries = append(summaries, users.SummaryFromModel(officer))
	}
	return summaries, nil
}

func (s *service) ListLots(ctx context.Context, rmo, officer string) ([]nameplates.LotSummary, error) {
	rmo = strings.ToUpper(strings.TrimSpace(rmo))
	officer = strings.TrimSpace(officer)
	if rmo == "" || officer == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rmo and officer are required")
	}

	lots, err := s.nameplates.GroupByLot(ctx, rmo, officer)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list lots")
	}
	if lots == nil {
		lots = []nameplates.LotSummary{}
	}
	return lots, nil
}
