package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/duracem/nameplate-backend/pkg/enums"
)

// Notification is an append-only in-app message scoped to one user.
type Notification struct {
	ID        uuid.UUID              `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID              `gorm:"type:uuid;not null;index"`
	Message   string                 `gorm:"type:text;not null"`
	Type      enums.NotificationType `gorm:"type:text;not null;default:info"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime"`
}
