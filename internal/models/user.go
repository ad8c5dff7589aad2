// Package models defines the domain entities of the ShiftWise API and the
// request/response shapes exchanged with clients.
package models

import (
	"strings"
	"time"

	"github.com/shiftwise/Shiftwise_Backend/internal/utils"
)

// AccountStatus describes where a staff member is in the onboarding
// lifecycle. Only Active accounts may log in with their permanent password.
type AccountStatus string

const (
	StatusPendingRegistration AccountStatus = "pending_registration"
	StatusAwaitingActivation  AccountStatus = "awaiting_activation"
	StatusActive              AccountStatus = "active"
	StatusRejected            AccountStatus = "rejected"
	StatusInactive            AccountStatus = "inactive"
)

// IsValid reports whether the status is one of the known lifecycle states.
func (s AccountStatus) IsValid() bool {
	switch s {
	case StatusPendingRegistration, StatusAwaitingActivation, StatusActive, StatusRejected, StatusInactive:
		return true
	}
	return false
}

// User represents a staff member of the ShiftWise application.
// It contains authentication information and core roster attributes.
type User struct {
	ID                     int64         `json:"id" db:"user_id"`
	NationalID             string        `json:"national_id" db:"national_id" validate:"required,national_id"`
	Email                  string        `json:"email" db:"email" validate:"required,email"`
	DisplayName            string        `json:"display_name" db:"display_name" validate:"required,min=2,max=100"`
	PasswordHash           string        `json:"-" db:"password_hash"`
	Salt                   string        `json:"-" db:"salt"`
	Role                   string        `json:"role" db:"role"`
	SectorID               *int64        `json:"sector_id,omitempty" db:"sector_id"`
	Position               *string       `json:"position,omitempty" db:"position"`
	AccountStatus          AccountStatus `json:"account_status" db:"account_status"`
	RequiresPasswordChange bool          `json:"requires_password_change" db:"requires_password_change"`
	CreatedAt              time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt              time.Time     `json:"updated_at" db:"updated_at"`
}

// NewUser creates a new User instance with the given identity attributes.
// Password fields are populated later during onboarding.
func NewUser(nationalID, email, displayName string) *User {
	now := time.Now()
	return &User{
		NationalID:    utils.NormalizeNationalID(nationalID),
		Email:         email,
		DisplayName:   displayName,
		Role:          "staff",
		AccountStatus: StatusPendingRegistration,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// TableName returns the database table name for the User model.
func (u *User) TableName() string {
	return "users"
}

// Sanitize removes sensitive information from the User object when sending to clients.
// This ensures fields like the password hash are never exposed.
func (u *User) Sanitize() *User {
	sanitized := *u
	sanitized.PasswordHash = ""
	sanitized.Salt = ""
	return &sanitized
}

// IdentifierKind distinguishes the two ways a caller may identify themselves
// at login.
type IdentifierKind string

const (
	IdentifierEmail      IdentifierKind = "email"
	IdentifierNationalID IdentifierKind = "national_id"
)

// LoginIdentifier is the parsed form of the free-text identifier a caller
// submits at login. The classification happens exactly once, at the entry
// point, so every layer below works with an unambiguous value.
type LoginIdentifier struct {
	Kind  IdentifierKind
	Value string
}

// ParseLoginIdentifier classifies the raw identifier: anything containing
// an '@' is treated as an email address, everything else as a national id
// with all non-digit characters stripped.
func ParseLoginIdentifier(raw string) LoginIdentifier {
	trimmed := strings.TrimSpace(raw)
	if strings.Contains(trimmed, "@") {
		return LoginIdentifier{Kind: IdentifierEmail, Value: strings.ToLower(trimmed)}
	}
	return LoginIdentifier{Kind: IdentifierNationalID, Value: utils.NormalizeNationalID(trimmed)}
}

// LoginRequest represents the credentials submitted to the login endpoint.
// Identifier may be an email address or a national id.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// LoginResponse is returned on successful authentication.
type LoginResponse struct {
	Token                  string    `json:"token"`
	ExpiresAt              time.Time `json:"expires_at"`
	RequiresPasswordChange bool      `json:"requires_password_change"`
	User                   *User     `json:"user"`
}

// ChangePasswordRequest represents a request to replace the caller's
// permanent password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// CreateUserRequest represents the data an admin supplies to register a new
// staff member. The account starts in AwaitingActivation.
type CreateUserRequest struct {
	NationalID  string  `json:"national_id" validate:"required,national_id"`
	Email       string  `json:"email" validate:"required,email"`
	DisplayName string  `json:"display_name" validate:"required,min=2,max=100"`
	Password    string  `json:"password" validate:"required,min=8"`
	Role        string  `json:"role" validate:"required,oneof=admin manager staff"`
	SectorID    *int64  `json:"sector_id,omitempty"`
	Position    *string `json:"position,omitempty"`
}

// UpdateUserRequest represents the mutable roster attributes of a user.
type UpdateUserRequest struct {
	Email       string  `json:"email" validate:"omitempty,email"`
	DisplayName string  `json:"display_name" validate:"omitempty,min=2,max=100"`
	Role        string  `json:"role" validate:"omitempty,oneof=admin manager staff"`
	SectorID    *int64  `json:"sector_id,omitempty"`
	Position    *string `json:"position,omitempty"`
}

// UpdateUserStatusRequest moves an account to a new lifecycle state.
type UpdateUserStatusRequest struct {
	Status AccountStatus `json:"status" validate:"required,oneof=pending_registration awaiting_activation active rejected inactive"`
}
