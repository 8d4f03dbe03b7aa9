package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/duracem/nameplate-backend/internal/users"
	"github.com/duracem/nameplate-backend/pkg/config"
	"github.com/duracem/nameplate-backend/pkg/db"
	"github.com/duracem/nameplate-backend/pkg/db/models"
	"github.com/duracem/nameplate-backend/pkg/enums"
	pkgerrors "github.com/duracem/nameplate-backend/pkg/errors"
	"github.com/duracem/nameplate-backend/pkg/security"
)

// RegisterService handles officer onboarding.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
}

// TxRunner executes a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type registerUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	CountByRMO(ctx context.Context, rmo string) (int64, error)
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
}

// RegisterServiceParams packages the dependencies for the registration flow.
type RegisterServiceParams struct {
	TxRunner        TxRunner
	UserRepoFactory func(tx *gorm.DB) registerUserRepository
	PasswordConfig  config.PasswordConfig
}

type registerService struct {
	tx          TxRunner
	userRepo    func(tx *gorm.DB) registerUserRepository
	passwordCfg config.PasswordConfig
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.TxRunner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	userRepo := params.UserRepoFactory
	if userRepo == nil {
		userRepo = func(tx *gorm.DB) registerUserRepository {
			return users.NewRepository(tx)
		}
	}
	return &registerService{
		tx:          params.TxRunner,
		userRepo:    userRepo,
		passwordCfg: params.PasswordConfig,
	}, nil
}

func (s *registerService) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	rmo := strings.ToUpper(strings.TrimSpace(req.RMO))
	if rmo == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rmo is required")
	}

	role := enums.RoleOfficer
	if req.Role != "" {
		parsed, err := enums.ParseRole(req.Role)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role")
		}
		role = parsed
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var created *users.UserDTO
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.userRepo(tx)

		if _, err := repo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check user email")
		}

		// officer numbers are assigned sequentially within a regional office,
		// so the count has to run inside the insert transaction
		count, err := repo.CountByRMO(ctx, rmo)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count officers")
		}
		officerNumber := OfficerNumberFor(rmo, count+1)

		user, err := repo.Create(ctx, users.CreateUserDTO{
			OfficerName:    strings.TrimSpace(req.OfficerName),
			Email:          email,
			PasswordHash:   passwordHash,
			MobileNumber:   strings.TrimSpace(req.MobileNumber),
			Designation:    strings.TrimSpace(req.Designation),
			Area:           strings.TrimSpace(req.Area),
			DeliveryOffice: strings.TrimSpace(req.DeliveryOffice),
			Address:        strings.TrimSpace(req.Address),
			Role:           role,
			RMO:            rmo,
			OfficerNumber:  officerNumber,
		})
		if err != nil {
			if db.IsUniqueViolation(err, "idx_users_email") {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "email already registered")
			}
			// two concurrent registrations in one regional office race for
			// the same officer number; the loser should retry, not 500
			if db.IsUniqueViolation(err, "idx_users_officer_number") {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "officer number already assigned, retry registration")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}

		created = users.FromModel(user)
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return &RegisterResponse{User: created}, nil
}

// OfficerNumberFor derives the officer number from the regional office code
// and the officer's ordinal within it: RMO1's first officer is OFF11.
func OfficerNumberFor(rmo string, ordinal int64) string {
	var digits strings.Builder
	for _, r := range rmo {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return fmt.Sprintf("OFF%s%d", digits.String(), ordinal)
}
