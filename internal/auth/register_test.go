package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/duracem/nameplate-backend/internal/users"
	"github.com/duracem/nameplate-backend/pkg/config"
	pkgmodels "github.com/duracem/nameplate-backend/pkg/db/models"
	"github.com/duracem/nameplate-backend/pkg/enums"
	pkgerrors "github.com/duracem/nameplate-backend/pkg/errors"
)

type stubTxRunner struct{}

func (s stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubUserRepository struct {
	data      map[string]*pkgmodels.User
	created   *pkgmodels.User
	createErr error
}

func newStubUserRepository() *stubUserRepository {
	return &stubUserRepository{data: map[string]*pkgmodels.User{}}
}

func (s *stubUserRepository) FindByEmail(ctx context.Context, email string) (*pkgmodels.User, error) {
	if user, ok := s.data[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepository) CountByRMO(ctx context.Context, rmo string) (int64, error) {
	var count int64
	for _, u := range s.data {
		if u.RMO == rmo {
			count++
		}
	}
	return count, nil
}

func (s *stubUserRepository) Create(ctx context.Context, dto users.CreateUserDTO) (*pkgmodels.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	user := dto.ToModel()
	user.ID = uuid.New()
	s.data[dto.Email] = user
	s.created = user
	return user, nil
}

func newRegisterTestService(t *testing.T, repo *stubUserRepository) RegisterService {
	t.Helper()
	svc, err := NewRegisterService(RegisterServiceParams{
		TxRunner: stubTxRunner{},
		UserRepoFactory: func(tx *gorm.DB) registerUserRepository {
			return repo
		},
		PasswordConfig: config.PasswordConfig{},
	})
	if err != nil {
		t.Fatalf("new register service: %v", err)
	}
	return svc
}

func sampleRegisterRequest(email string) RegisterRequest {
	return RegisterRequest{
		OfficerName:  "Anila Thomas",
		Email:        email,
		Password:     "Secret123!",
		MobileNumber: "9876543210",
		Designation:  "Postmaster",
		RMO:          "RMO1",
	}
}

func TestRegisterAssignsFirstOfficerNumber(t *testing.T) {
	repo := newStubUserRepository()
	svc := newRegisterTestService(t, repo)

	resp, err := svc.Register(context.Background(), sampleRegisterRequest("new@example.com"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if repo.created == nil {
		t.Fatalf("expected user to be created")
	}
	if repo.created.OfficerNumber != "OFF11" {
		t.Fatalf("expected OFF11, got %s", repo.created.OfficerNumber)
	}
	if repo.created.Role != enums.RoleOfficer {
		t.Fatalf("expected officer role, got %s", repo.created.Role)
	}
	if resp.User == nil || resp.User.OfficerNumber != "OFF11" {
		t.Fatalf("expected officer number in response")
	}
	if repo.created.PasswordHash == "Secret123!" {
		t.Fatal("password must not be stored in plain text")
	}
}

func TestRegisterIncrementsOfficerNumberWithinRMO(t *testing.T) {
	repo := newStubUserRepository()
	svc := newRegisterTestService(t, repo)

	if _, err := svc.Register(context.Background(), sampleRegisterRequest("first@example.com")); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), sampleRegisterRequest("second@example.com")); err != nil {
		t.Fatalf("second register failed: %v", err)
	}
	if repo.created.OfficerNumber != "OFF12" {
		t.Fatalf("expected OFF12 for second officer, got %s", repo.created.OfficerNumber)
	}

	other := sampleRegisterRequest("third@example.com")
	other.RMO = "RMO3"
	if _, err := svc.Register(context.Background(), other); err != nil {
		t.Fatalf("third register failed: %v", err)
	}
	if repo.created.OfficerNumber != "OFF31" {
		t.Fatalf("expected OFF31 in fresh RMO, got %s", repo.created.OfficerNumber)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newStubUserRepository()
	svc := newRegisterTestService(t, repo)

	if _, err := svc.Register(context.Background(), sampleRegisterRequest("dup@example.com")); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, err := svc.Register(context.Background(), sampleRegisterRequest("dup@example.com"))
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRegisterOfficerNumberRaceYieldsConflict(t *testing.T) {
	repo := newStubUserRepository()
	repo.createErr = &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_officer_number"}
	svc := newRegisterTestService(t, repo)

	_, err := svc.Register(context.Background(), sampleRegisterRequest("race@example.com"))
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict for officer number race, got %v", err)
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	repo := newStubUserRepository()
	svc := newRegisterTestService(t, repo)

	req := sampleRegisterRequest("role@example.com")
	req.Role = "superuser"
	_, err := svc.Register(context.Background(), req)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestOfficerNumberFor(t *testing.T) {
	tests := []struct {
		rmo     string
		ordinal int64
		want    string
	}{
		{"RMO1", 1, "OFF11"},
		{"RMO1", 12, "OFF112"},
		{"RMO12", 3, "OFF123"},
		{"HQ", 1, "OFF1"},
	}
	for _, tt := range tests {
		if got := OfficerNumberFor(tt.rmo, tt.ordinal); got != tt.want {
			t.Fatalf("OfficerNumberFor(%s,%d)=%s want %s", tt.rmo, tt.ordinal, got, tt.want)
		}
	}
}
