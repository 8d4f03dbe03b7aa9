package nameplates

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/duracem/nameplate-backend/pkg/db/models"
	"github.com/duracem/nameplate-backend/pkg/enums"
	pkgerrors "github.com/duracem/nameplate-backend/pkg/errors"
)

type fakeRepository struct {
	createFn       func(ctx context.Context, record *models.UnverifiedNameplate) error
	listFn         func(ctx context.Context, params listQuery) ([]models.UnverifiedNameplate, int64, error)
	markVerifiedFn func(ctx context.Context, params VerifyParams) (verifyResult, error)
	findByPathFn   func(ctx context.Context, params VerifyParams) (*models.UnverifiedNameplate, error)
}

func (f *fakeRepository) Create(ctx context.Context, record *models.UnverifiedNameplate) error {
	if f.createFn != nil {
		return f.createFn(ctx, record)
	}
	return nil
}

func (f *fakeRepository) List(ctx context.Context, params listQuery) ([]models.UnverifiedNameplate, int64, error) {
	if f.listFn != nil {
		return f.listFn(ctx, params)
	}
	return nil, 0, nil
}

func (f *fakeRepository) MarkVerified(ctx context.Context, params VerifyParams) (verifyResult, error) {
	if f.markVerifiedFn != nil {
		return f.markVerifiedFn(ctx, params)
	}
	return verifyResult{}, nil
}

func (f *fakeRepository) FindByPath(ctx context.Context, params VerifyParams) (*models.UnverifiedNameplate, error) {
	if f.findByPathFn != nil {
		return f.findByPathFn(ctx, params)
	}
	return nil, gorm.ErrRecordNotFound
}

type fakePrintRepo struct {
	rows []models.VerifiedNameplate
	err  error
}

func (f *fakePrintRepo) InsertPrinted(ctx context.Context, rows []models.VerifiedNameplate) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, rows...)
	return nil
}

type fakeNotifier struct {
	messages []string
	types    []enums.NotificationType
	userIDs  []uuid.UUID
	err      error
}

func (f *fakeNotifier) Append(ctx context.Context, tx *gorm.DB, userID uuid.UUID, message string, kind enums.NotificationType) error {
	if f.err != nil {
		return f.err
	}
	f.userIDs = append(f.userIDs, userID)
	f.messages = append(f.messages, message)
	f.types = append(f.types, kind)
	return nil
}

type passthroughTx struct{}

func (passthroughTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newTestService(t *testing.T, repo *fakeRepository, printRepo *fakePrintRepo, notifier *fakeNotifier) Service {
	t.Helper()
	params := ServiceParams{
		Repo:     repo,
		TxRunner: passthroughTx{},
		PrintRepoFactory: func(tx *gorm.DB) printRepository {
			return printRepo
		},
	}
	if notifier != nil {
		params.Notifier = notifier
	}
	svc, err := NewService(params)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func sampleCreateParams() CreateParams {
	return CreateParams{
		Officer: "OFF11",
		Lot:     "LOT-A",
		Request: CreateRequest{
			Theme:       "classic",
			Background:  "teak",
			HouseName:   "Rose Villa",
			OwnerName:   "K. Menon",
			Address:     "12 Hill Road",
			RMO:         "rmo1",
			OfficerName: "Anila Thomas",
			Email:       "Officer@Example.com",
		},
	}
}

func TestCreateForcesUnverifiedState(t *testing.T) {
	var stored *models.UnverifiedNameplate
	repo := &fakeRepository{
		createFn: func(ctx context.Context, record *models.UnverifiedNameplate) error {
			stored = record
			return nil
		},
	}
	svc := newTestService(t, repo, &fakePrintRepo{}, nil)

	record, err := svc.Create(context.Background(), sampleCreateParams())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if stored == nil {
		t.Fatal("expected record to be persisted")
	}
	if record.Verified {
		t.Fatal("submissions must enter the queue unverified")
	}
	if record.RMO != "RMO1" {
		t.Fatalf("expected normalized rmo, got %q", record.RMO)
	}
	if record.Email != "officer@example.com" {
		t.Fatalf("expected normalized email, got %q", record.Email)
	}
	if record.Officer != "OFF11" || record.Lot != "LOT-A" {
		t.Fatalf("path placement lost: %+v", record)
	}
	if record.TextColor != "#000000" {
		t.Fatalf("expected default text color, got %q", record.TextColor)
	}
}

func TestCreateAllowsDuplicateSubmissions(t *testing.T) {
	var count int
	repo := &fakeRepository{
		createFn: func(ctx context.Context, record *models.UnverifiedNameplate) error {
			count++
			return nil
		},
	}
	svc := newTestService(t, repo, &fakePrintRepo{}, nil)

	params := sampleCreateParams()
	if _, err := svc.Create(context.Background(), params); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), params); err != nil {
		t.Fatalf("identical resubmission must succeed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected two inserts, got %d", count)
	}
}

func TestListNormalizesPaginationAndFilters(t *testing.T) {
	verified := false
	repo := &fakeRepository{
		listFn: func(ctx context.Context, params listQuery) ([]models.UnverifiedNameplate, int64, error) {
			if params.Limit != 50 || params.Offset != 0 {
				t.Fatalf("expected normalized paging, got limit=%d offset=%d", params.Limit, params.Offset)
			}
			if params.RMO != "RMO1" || params.Officer != "OFF11" {
				t.Fatalf("filters lost: %+v", params)
			}
			if params.Verified == nil || *params.Verified {
				t.Fatal("expected verified=false filter")
			}
			return []models.UnverifiedNameplate{{ID: uuid.New()}}, 120, nil
		},
	}
	svc := newTestService(t, repo, &fakePrintRepo{}, nil)

	result, err := svc.List(context.Background(), ListParams{
		RMO:      "RMO1",
		Officer:  "OFF11",
		Verified: &verified,
		Limit:    -3,
		Offset:   -1,
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(result.Data) != 1 {
		t.Fatalf("expected one record, got %d", len(result.Data))
	}
	if result.Pagination.Total != 120 || !result.Pagination.HasMore {
		t.Fatalf("unexpected pagination %+v", result.Pagination)
	}
}

func TestListReturnsEmptySliceNotNil(t *testing.T) {
	svc := newTestService(t, &fakeRepository{}, &fakePrintRepo{}, nil)
	result, err := svc.List(context.Background(), ListParams{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Data == nil {
		t.Fatal("data must serialize as [], not null")
	}
}

func TestVerifyFlipsUnverifiedRecord(t *testing.T) {
	id := uuid.New()
	repo := &fakeRepository{
		markVerifiedFn: func(ctx context.Context, params VerifyParams) (verifyResult, error) {
			if params.ID != id {
				t.Fatalf("unexpected id %s", params.ID)
			}
			return verifyResult{Updated: true, Found: true}, nil
		},
		findByPathFn: func(ctx context.Context, params VerifyParams) (*models.UnverifiedNameplate, error) {
			return &models.UnverifiedNameplate{ID: id, Verified: true}, nil
		},
	}
	svc := newTestService(t, repo, &fakePrintRepo{}, nil)

	record, err := svc.Verify(context.Background(), VerifyParams{RMO: "RMO1", Officer: "OFF11", Lot: "LOT-A", ID: id})
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if !record.Verified {
		t.Fatal("expected verified record")
	}
}

func TestVerifyUnknownRecordIsNotFound(t *testing.T) {
	repo := &fakeRepository{
		markVerifiedFn: func(ctx context.Context, params VerifyParams) (verifyResult, error) {
			return verifyResult{}, nil
		},
	}
	svc := newTestService(t, repo, &fakePrintRepo{}, nil)

	_, err := svc.Verify(context.Background(), VerifyParams{ID: uuid.New()})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestVerifyTwiceIsStateConflict(t *testing.T) {
	repo := &fakeRepository{
		markVerifiedFn: func(ctx context.Context, params VerifyParams) (verifyResult, error) {
			return verifyResult{Updated: false, Found: true}, nil
		},
	}
	svc := newTestService(t, repo, &fakePrintRepo{}, nil)

	_, err := svc.Verify(context.Background(), VerifyParams{ID: uuid.New()})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestPrintInsertsAllRowsAndNotifies(t *testing.T) {
	printRepo := &fakePrintRepo{}
	notifier := &fakeNotifier{}
	svc := newTestService(t, &fakeRepository{}, printRepo, notifier)
	actor := uuid.New()

	result, err := svc.Print(context.Background(), actor, PrintRequest{
		RMO:       "rmo1",
		OfficerID: "OFF11",
		Lot:       "LOT-A",
		Records: []PrintRecord{
			{HouseName: "Rose Villa", OwnerName: "K. Menon", Address: "12 Hill Road"},
			{HouseName: "Rose Villa", OwnerName: "K. Menon", Address: "12 Hill Road"},
		},
	})
	if err != nil {
		t.Fatalf("print failed: %v", err)
	}
	if result.Inserted != 2 {
		t.Fatalf("expected 2 inserted, got %d", result.Inserted)
	}
	if len(printRepo.rows) != 2 {
		t.Fatalf("expected duplicate rows to both persist, got %d", len(printRepo.rows))
	}
	for _, row := range printRepo.rows {
		if row.RMO != "RMO1" || row.OfficerID != "OFF11" || row.Lot != "LOT-A" {
			t.Fatalf("batch placement lost: %+v", row)
		}
	}
	if len(notifier.messages) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.messages))
	}
	if notifier.userIDs[0] != actor {
		t.Fatal("notification must target the printing admin")
	}
	if notifier.types[0] != enums.NotificationTypeSuccess {
		t.Fatalf("unexpected notification type %s", notifier.types[0])
	}
}

func TestPrintRejectsEmptyBatch(t *testing.T) {
	svc := newTestService(t, &fakeRepository{}, &fakePrintRepo{}, nil)

	_, err := svc.Print(context.Background(), uuid.New(), PrintRequest{RMO: "RMO1", OfficerID: "OFF11", Lot: "LOT-A"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPrintRollsUpRepoFailure(t *testing.T) {
	printRepo := &fakePrintRepo{err: errors.New("disk full")}
	svc := newTestService(t, &fakeRepository{}, printRepo, nil)

	_, err := svc.Print(context.Background(), uuid.New(), PrintRequest{
		RMO:       "RMO1",
		OfficerID: "OFF11",
		Lot:       "LOT-A",
		Records:   []PrintRecord{{HouseName: "A", OwnerName: "B", Address: "C"}},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestPrintResultTimestampIsUTC(t *testing.T) {
	svc := newTestService(t, &fakeRepository{}, &fakePrintRepo{}, nil)

	result, err := svc.Print(context.Background(), uuid.Nil, PrintRequest{
		RMO:       "RMO1",
		OfficerID: "OFF11",
		Lot:       "LOT-A",
		Records:   []PrintRecord{{HouseName: "A", OwnerName: "B", Address: "C"}},
	})
	if err != nil {
		t.Fatalf("print failed: %v", err)
	}
	if result.PrintedAt.Location() != time.UTC {
		t.Fatal("printed timestamp must be UTC")
	}
}
