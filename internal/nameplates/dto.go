package nameplates

import (
	"time"

	"github.com/google/uuid"

	"github.com/duracem/nameplate-backend/pkg/db/models"
	"github.com/duracem/nameplate-backend/pkg/pagination"
)

// CreateRequest is the submission payload. The hierarchy placement (officer
// and lot) arrives through the URL path, everything else in the body.
type CreateRequest struct {
	Theme        string `json:"theme" validate:"required"`
	Background   string `json:"background" validate:"required"`
	HouseName    string `json:"houseName" validate:"required"`
	OwnerName    string `json:"ownerName" validate:"required"`
	SpouseName   string `json:"spouseName,omitempty"`
	Address      string `json:"address" validate:"required"`
	TextColor    string `json:"textColor,omitempty"`
	FontSize     string `json:"fontSize,omitempty"`
	RMO          string `json:"rmo" validate:"required"`
	OfficerName  string `json:"officerName" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	MobileNumber string `json:"mobileNumber,omitempty" validate:"omitempty,mobile"`
	Designation  string `json:"designation,omitempty"`
	ImageURL     string `json:"imageUrl,omitempty"`
}

// CreateParams couples the body with the path placement.
type CreateParams struct {
	Officer string
	Lot     string
	Request CreateRequest
}

// ListParams filters the verification queue.
type ListParams struct {
	RMO      string
	Officer  string
	Verified *bool
	Limit    int
	Offset   int
}

// ListResult wraps a page of records with offset pagination metadata.
type ListResult struct {
	Data       []models.UnverifiedNameplate `json:"data"`
	Pagination pagination.Page              `json:"pagination"`
}

// VerifyParams identifies one record through its full hierarchy path.
type VerifyParams struct {
	RMO     string
	Officer string
	Lot     string
	ID      uuid.UUID
}

// PrintRecord is one row of a print batch.
type PrintRecord struct {
	HouseName  string `json:"houseName" validate:"required"`
	OwnerName  string `json:"ownerName" validate:"required"`
	SpouseName string `json:"spouseName,omitempty"`
	Address    string `json:"address" validate:"required"`
	ImageURL   string `json:"imageUrl,omitempty"`
}

// PrintRequest is the bulk print payload.
type PrintRequest struct {
	RMO       string        `json:"rmo" validate:"required"`
	OfficerID string        `json:"officerId" validate:"required"`
	Lot       string        `json:"lot" validate:"required"`
	Records   []PrintRecord `json:"records" validate:"required,min=1,dive"`
}

// PrintResult reports the outcome of a print batch.
type PrintResult struct {
	Inserted  int       `json:"inserted"`
	RMO       string    `json:"rmo"`
	Officer   string    `json:"officerId"`
	Lot       string    `json:"lot"`
	PrintedAt time.Time `json:"printedAt"`
}
