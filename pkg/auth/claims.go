package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/duracem/nameplate-backend/pkg/enums"
)

// SessionTokenPayload captures the data available when minting a session JWT.
type SessionTokenPayload struct {
	UserID        uuid.UUID
	Role          enums.Role
	OfficerNumber string
	RMO           string
	JTI           string
}

// SessionTokenClaims is the typed JWT carried by the `token` cookie (or a
// bearer header for API clients).
type SessionTokenClaims struct {
	UserID        uuid.UUID  `json:"user_id"`
	Role          enums.Role `json:"role"`
	OfficerNumber string     `json:"officer_number,omitempty"`
	RMO           string     `json:"rmo,omitempty"`
	jwt.RegisteredClaims
}
