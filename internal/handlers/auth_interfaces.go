// Package handlers provides HTTP request handlers for the ShiftWise API.
package handlers

import (
	"context"
	"time"

	"github.com/shiftwise/Shiftwise_Backend/internal/models"
)

// AuthServiceInterface defines the methods required from the authentication
// service. The handlers depend on this interface rather than the concrete
// implementation so they can be tested against a mock.
type AuthServiceInterface interface {
	// Login verifies the submitted credentials and returns an access token.
	// The identifier may be an email address or a national id; the password
	// may be the permanent one or an outstanding temporary credential.
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)

	// ChangePassword replaces the caller's permanent password after
	// verifying the current one.
	ChangePassword(ctx context.Context, userID int64, req *models.ChangePasswordRequest) error
}

// ResetServiceInterface defines the methods required from the password-reset
// workflow service.
type ResetServiceInterface interface {
	// Request files a reset request. It succeeds silently when the supplied
	// identity matches no account.
	Request(ctx context.Context, req *models.CreateResetRequest) error

	// ListPending returns every request awaiting action, oldest first.
	ListPending(ctx context.Context) ([]*models.ResetRequestSummary, error)

	// Approve mints a temporary credential for the request and returns the
	// plaintext to the approving admin exactly once.
	Approve(ctx context.Context, requestID, adminID int64) (*models.ApproveResetResponse, error)

	// CleanupDeadRequests removes consumed, superseded and long-expired
	// requests created before the cutoff.
	CleanupDeadRequests(ctx context.Context, before time.Time) (int64, error)
}
