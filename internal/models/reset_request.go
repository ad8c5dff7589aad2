package models

import (
	"time"
)

// ResetRequest represents one admin-mediated password-reset flow for a user.
//
// A request starts unapproved (approved_at is nil). Approval attaches a
// hashed temporary credential and an expiry. The request ends in exactly one
// of three ways: consumed (used flag), expired (expires_at passes), or
// superseded (deleted flag, set when the owner logs in normally before
// approval). Expiry is never swept by a background job; it is evaluated
// lazily wherever the request is read.
type ResetRequest struct {
	ID                 int64      `json:"id" db:"request_id"`
	UserID             int64      `json:"user_id" db:"user_id"`
	TempCredentialHash *string    `json:"-" db:"temp_credential_hash"`
	TempCredentialSalt *string    `json:"-" db:"temp_credential_salt"`
	ExpiresAt          *time.Time `json:"expires_at,omitempty" db:"expires_at"`
	ApprovedBy         *int64     `json:"approved_by,omitempty" db:"approved_by"`
	ApprovedAt         *time.Time `json:"approved_at,omitempty" db:"approved_at"`
	Used               bool       `json:"used" db:"used"`
	UsedAt             *time.Time `json:"used_at,omitempty" db:"used_at"`
	Deleted            bool       `json:"-" db:"deleted"`
	DeletedAt          *time.Time `json:"-" db:"deleted_at"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
}

// TableName returns the database table name for the ResetRequest model.
func (r *ResetRequest) TableName() string {
	return "reset_requests"
}

// CurrentlyValid reports whether the request holds a temporary credential
// that may be used at the given instant: approved, not consumed, not
// superseded, and not past its expiry.
func (r *ResetRequest) CurrentlyValid(now time.Time) bool {
	return !r.Deleted &&
		r.ApprovedAt != nil &&
		!r.Used &&
		r.ExpiresAt != nil &&
		r.ExpiresAt.After(now)
}

// Active reports whether the request still occupies the user's single
// live-request slot: either awaiting approval, or approved and currently
// valid. At most one Active request exists per user.
func (r *ResetRequest) Active(now time.Time) bool {
	if r.Deleted {
		return false
	}
	if r.ApprovedAt == nil {
		return true
	}
	return r.CurrentlyValid(now)
}

// ResetRequestSummary is the admin-facing view of a pending request,
// joining in the owner's identity so the screen can show who is asking.
type ResetRequestSummary struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	NationalID  string     `json:"national_id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CreateResetRequest is the body of the public reset-request endpoint. Both
// fields must match the same account before anything is written.
type CreateResetRequest struct {
	NationalID string `json:"national_id" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
}

// ApproveResetResponse is returned to the approving admin. Credential is the
// only time the plaintext temporary password ever leaves the server.
type ApproveResetResponse struct {
	RequestID  int64     `json:"request_id"`
	UserID     int64     `json:"user_id"`
	Credential string    `json:"credential"`
	ExpiresAt  time.Time `json:"expires_at"`
}
