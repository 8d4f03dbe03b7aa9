package models

import (
	"time"

	"github.com/google/uuid"
)

// UnverifiedNameplate is a draft submission from the client-side editor.
// The hierarchy keys (RMO, Officer, Lot) are denormalized string codes and
// are never updated after creation; Verified is the only mutable column.
type UnverifiedNameplate struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Theme        string    `gorm:"column:theme;not null"`
	Background   string    `gorm:"column:background;not null"`
	HouseName    string    `gorm:"column:house_name;not null"`
	OwnerName    string    `gorm:"column:owner_name;not null"`
	SpouseName   string    `gorm:"column:spouse_name"`
	Address      string    `gorm:"column:address;not null"`
	TextColor    string    `gorm:"column:text_color;not null;default:#000000"`
	FontSize     string    `gorm:"column:font_size"`
	RMO          string    `gorm:"column:rmo;not null;index:idx_unverified_hierarchy,priority:1"`
	Officer      string    `gorm:"column:officer;not null;index:idx_unverified_hierarchy,priority:2"`
	Lot          string    `gorm:"column:lot;not null;index:idx_unverified_hierarchy,priority:3"`
	OfficerName  string    `gorm:"column:officer_name;not null"`
	Email        string    `gorm:"column:email;not null"`
	MobileNumber string    `gorm:"column:mobile_number"`
	Designation  string    `gorm:"column:designation"`
	ImageURL     string    `gorm:"column:image_url"`
	Verified     bool      `gorm:"column:verified;not null;default:false;index"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
