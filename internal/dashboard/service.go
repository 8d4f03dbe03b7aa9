package dashboard

import (
	"context"
	"strings"

	"github.com/duracem/nameplate-backend/internal/users"
	"github.com/duracem/nameplate-backend/pkg/enums"
	pkgerrors "github.com/duracem/nameplate-backend/pkg/errors"
)

// Stats is the aggregate snapshot rendered on the dashboard landing page.
type Stats struct {
	Officers   int64 `json:"officers"`
	RMOs       int64 `json:"rmos"`
	Unverified int64 `json:"unverified"`
	Verified   int64 `json:"verified"`
	Printed    int64 `json:"printed"`
}

// Service computes dashboard aggregates.
type Service interface {
	Stats(ctx context.Context, role enums.Role, officerNumber string) (*Stats, error)
}

type userRepository interface {
	GroupByRMO(ctx context.Context) ([]users.RMOOfficerCount, error)
}

type nameplateRepository interface {
	CountByVerified(ctx context.Context, officer string) (unverified, verified int64, err error)
	CountPrinted(ctx context.Context, officer string) (int64, error)
}

type service struct {
	users      userRepository
	nameplates nameplateRepository
}

// ServiceParams bundles the dashboard dependencies.
type ServiceParams struct {
	UserRepo      userRepository
	NameplateRepo nameplateRepository
}

// NewService wires the dashboard service.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "user repository required")
	}
	if params.NameplateRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "nameplate repository required")
	}
	return &service{users: params.UserRepo, nameplates: params.NameplateRepo}, nil
}

// Stats returns program-wide totals for admins and RMO users, and the
// officer's own slice for officer accounts.
func (s *service) Stats(ctx context.Context, role enums.Role, officerNumber string) (*Stats, error) {
	officerScope := ""
	if role == enums.RoleOfficer {
		officerScope = strings.TrimSpace(officerNumber)
		if officerScope == "" {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "officer scope missing")
		}
	}

	groups, err := s.users.GroupByRMO(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count officers")
	}
	stats := &Stats{RMOs: int64(len(groups))}
	for _, g := range groups {
		stats.Officers += g.Count
	}

	unverified, verified, err := s.nameplates.CountByVerified(ctx, officerScope)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count records")
	}
	stats.Unverified = unverified
	stats.Verified = verified

	printed, err := s.nameplates.CountPrinted(ctx, officerScope)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count printed")
	}
	stats.Printed = printed

	return stats, nil
}
