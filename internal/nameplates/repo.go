package nameplates

import (
	"context"

	"gorm.io/gorm"

	"github.com/duracem/nameplate-backend/internal/repo"
	"github.com/duracem/nameplate-backend/pkg/db/models"
)

// Repository exposes nameplate persistence operations.
type Repository struct {
	repo.Base
}

// NewRepository constructs a nameplates repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts an unverified record.
func (r *Repository) Create(ctx context.Context, record *models.UnverifiedNameplate) error {
	return r.DB(ctx).Create(record).Error
}

type listQuery struct {
	RMO      string
	Officer  string
	Verified *bool
	Limit    int
	Offset   int
}

// List returns a page of records newest-first plus the unpaged total.
func (r *Repository) List(ctx context.Context, params listQuery) ([]models.UnverifiedNameplate, int64, error) {
	query := r.DB(ctx).Model(&models.UnverifiedNameplate{})
	if params.RMO != "" {
		query = query.Where("rmo = ?", params.RMO)
	}
	if params.Officer != "" {
		query = query.Where("officer = ?", params.Officer)
	}
	if params.Verified != nil {
		query = query.Where("verified = ?", *params.Verified)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.UnverifiedNameplate
	err := query.
		Order("created_at DESC, id DESC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

type verifyResult struct {
	Updated bool
	Found   bool
}

// MarkVerified flips verified to true only when the record is still
// unverified and sits at the addressed hierarchy position.
func (r *Repository) MarkVerified(ctx context.Context, params VerifyParams) (verifyResult, error) {
	result := r.DB(ctx).
		Model(&models.UnverifiedNameplate{}).
		Where("id = ? AND rmo = ? AND officer = ? AND lot = ? AND verified = ?",
			params.ID, params.RMO, params.Officer, params.Lot, false).
		UpdateColumn("verified", true)
	if result.Error != nil {
		return verifyResult{}, result.Error
	}

	mark := verifyResult{Updated: result.RowsAffected > 0}
	if mark.Updated {
		mark.Found = true
		return mark, nil
	}

	var count int64
	err := r.DB(ctx).
		Model(&models.UnverifiedNameplate{}).
		Where("id = ? AND rmo = ? AND officer = ? AND lot = ?",
			params.ID, params.RMO, params.Officer, params.Lot).
		Count(&count).Error
	if err != nil {
		return verifyResult{}, err
	}
	mark.Found = count > 0
	return mark, nil
}

// FindByPath loads one record through its full hierarchy path.
func (r *Repository) FindByPath(ctx context.Context, params VerifyParams) (*models.UnverifiedNameplate, error) {
	var record models.UnverifiedNameplate
	err := r.DB(ctx).
		Where("id = ? AND rmo = ? AND officer = ? AND lot = ?",
			params.ID, params.RMO, params.Officer, params.Lot).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// InsertPrinted bulk-inserts the printed rows.
func (r *Repository) InsertPrinted(ctx context.Context, rows []models.VerifiedNameplate) error {
	if len(rows) == 0 {
		return nil
	}
	return r.DB(ctx).Create(&rows).Error
}

// LotSummary aggregates one lot of an officer.
type LotSummary struct {
	Lot      string `json:"lot"`
	Records  int64  `json:"records"`
	Verified int64  `json:"verified"`
}

// GroupByLot returns the lots an officer has submitted to, with counts.
func (r *Repository) GroupByLot(ctx context.Context, rmo, officer string) ([]LotSummary, error) {
	var rows []LotSummary
	err := r.DB(ctx).
		Model(&models.UnverifiedNameplate{}).
		Select("lot, COUNT(*) AS records, SUM(CASE WHEN verified THEN 1 ELSE 0 END) AS verified").
		Where("rmo = ? AND officer = ?", rmo, officer).
		Group("lot").
		Order("lot ASC").
		Scan(&rows).Error
	return rows, err
}

// CountByVerified tallies records by verification state, optionally scoped
// to one officer.
func (r *Repository) CountByVerified(ctx context.Context, officer string) (unverified, verified int64, err error) {
	base := func() *gorm.DB {
		q := r.DB(ctx).Model(&models.UnverifiedNameplate{})
		if officer != "" {
			q = q.Where("officer = ?", officer)
		}
		return q
	}
	if err = base().Where("verified = ?", false).Count(&unverified).Error; err != nil {
		return 0, 0, err
	}
	if err = base().Where("verified = ?", true).Count(&verified).Error; err != nil {
		return 0, 0, err
	}
	return unverified, verified, nil
}

// CountPrinted tallies rows in the printed table, optionally scoped to one officer.
func (r *Repository) CountPrinted(ctx context.Context, officer string) (int64, error) {
	query := r.DB(ctx).Model(&models.VerifiedNameplate{})
	if officer != "" {
		query = query.Where("officer_id = ?", officer)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}
