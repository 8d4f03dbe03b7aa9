package models

import (
	"time"

	"github.com/google/uuid"
)

// VerifiedNameplate is a print-ready record produced by the batch print
// action. Rows are insert-only; the source unverified record is left in place.
type VerifiedNameplate struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	RMO        string    `gorm:"column:rmo;not null;index:idx_verified_hierarchy,priority:1"`
	OfficerID  string    `gorm:"column:officer_id;index:idx_verified_hierarchy,priority:2"`
	Lot        string    `gorm:"column:lot;not null;index:idx_verified_hierarchy,priority:3"`
	HouseName  string    `gorm:"column:house_name;not null"`
	OwnerName  string    `gorm:"column:owner_name;not null"`
	SpouseName string    `gorm:"column:spouse_name"`
	Address    string    `gorm:"column:address"`
	ImageURL   string    `gorm:"column:image_url"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
