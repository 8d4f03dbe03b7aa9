package auth

import (
	"github.com/duracem/nameplate-backend/internal/users"
)

// RegisterRequest contains the payload required for onboarding a new officer.
type RegisterRequest struct {
	OfficerName    string `json:"officerName" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
	MobileNumber   string `json:"mobileNumber" validate:"required,mobile"`
	Designation    string `json:"designation,omitempty"`
	Area           string `json:"area,omitempty"`
	DeliveryOffice string `json:"deliveryOffice,omitempty"`
	Address        string `json:"address,omitempty"`
	RMO            string `json:"rmo" validate:"required"`
	Role           string `json:"role,omitempty" validate:"omitempty,oneof=admin rmo officer"`
}

// LoginRequest carries the credentials for a session.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the minted token alongside the user profile. The
// controller also sets the token as an HttpOnly cookie for browser clients.
type LoginResponse struct {
	Token    string         `json:"token"`
	Redirect string         `json:"redirect"`
	User     *users.UserDTO `json:"user"`
}

// RegisterResponse returns the created profile with its assigned officer number.
type RegisterResponse struct {
	User *users.UserDTO `json:"user"`
}
