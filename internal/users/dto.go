package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/duracem/nameplate-backend/pkg/db/models"
	"github.com/duracem/nameplate-backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID             uuid.UUID  `json:"id"`
	OfficerName    string     `json:"officerName"`
	Email          string     `json:"email"`
	MobileNumber   string     `json:"mobileNumber,omitempty"`
	Designation    string     `json:"designation,omitempty"`
	Area           string     `json:"area,omitempty"`
	DeliveryOffice string     `json:"deliveryOffice,omitempty"`
	Address        string     `json:"address,omitempty"`
	Role           enums.Role `json:"role"`
	RMO            string     `json:"rmo,omitempty"`
	OfficerNumber  string     `json:"officerNumber"`
	ProfileImage   *string    `json:"profileImage,omitempty"`
	IsActive       bool       `json:"isActive"`
	LastLoginAt    *time.Time `json:"lastLoginAt,omitempty"`
	LoginCount     int        `json:"loginCount"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	OfficerName    string
	Email          string
	PasswordHash   string
	MobileNumber   string
	Designation    string
	Area           string
	DeliveryOffice string
	Address        string
	Role           enums.Role
	RMO            string
	OfficerNumber  string
	IsActive       *bool
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:             u.ID,
		OfficerName:    u.OfficerName,
		Email:          u.Email,
		MobileNumber:   u.MobileNumber,
		Designation:    u.Designation,
		Area:           u.Area,
		DeliveryOffice: u.DeliveryOffice,
		Address:        u.Address,
		Role:           u.Role,
		RMO:            u.RMO,
		OfficerNumber:  u.OfficerNumber,
		ProfileImage:   u.ProfileImage,
		IsActive:       u.IsActive,
		LastLoginAt:    u.LastLoginAt,
		LoginCount:     u.LoginCount,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	isActive := true
	if c.IsActive != nil {
		isActive = *c.IsActive
	}

	role := c.Role
	if role == "" {
		role = enums.RoleOfficer
	}

	return &models.User{
		OfficerName:    c.OfficerName,
		Email:          c.Email,
		PasswordHash:   c.PasswordHash,
		MobileNumber:   c.MobileNumber,
		Designation:    c.Designation,
		Area:           c.Area,
		DeliveryOffice: c.DeliveryOffice,
		Address:        c.Address,
		Role:           role,
		RMO:            c.RMO,
		OfficerNumber:  c.OfficerNumber,
		IsActive:       isActive,
	}
}

// OfficerSummary is the listing shape used by the hierarchy endpoints.
type OfficerSummary struct {
	ID            uuid.UUID `json:"id"`
	OfficerName   string    `json:"officerName"`
	OfficerNumber string    `json:"officerNumber"`
	Designation   string    `json:"designation,omitempty"`
	Email         string    `json:"email"`
	RMO           string    `json:"rmo"`
}

// SummaryFromModel projects a user into the officer listing shape.
func SummaryFromModel(u models.User) OfficerSummary {
	return OfficerSummary{
		ID:            u.ID,
		OfficerName:   u.OfficerName,
		OfficerNumber: u.OfficerNumber,
		Designation:   u.Designation,
		Email:         u.Email,
		RMO:           u.RMO,
	}
}
