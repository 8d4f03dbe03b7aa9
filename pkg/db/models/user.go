package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/duracem/nameplate-backend/pkg/enums"
)

// User is an officer, RMO, or admin account. Accounts are deactivated via
// IsActive, never hard-deleted.
type User struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OfficerName    string     `gorm:"column:officer_name;not null"`
	Email          string     `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash   string     `gorm:"column:password_hash;not null"`
	MobileNumber   string     `gorm:"column:mobile_number;not null"`
	Designation    string     `gorm:"column:designation"`
	Area           string     `gorm:"column:area"`
	DeliveryOffice string     `gorm:"column:delivery_office"`
	Address        string     `gorm:"column:address"`
	Role           enums.Role `gorm:"type:text;not null;default:officer"`
	RMO            string     `gorm:"column:rmo;not null;index"`
	OfficerNumber  string     `gorm:"column:officer_number;not null;uniqueIndex"`
	ProfileImage   *string    `gorm:"column:profile_image"`
	IsActive       bool       `gorm:"column:is_active;not null;default:true"`
	LastLoginAt    *time.Time `gorm:"column:last_login_at"`
	LoginCount     int        `gorm:"column:login_count;not null;default:0"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
