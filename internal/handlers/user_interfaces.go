package handlers

import (
	"context"

	"github.com/shiftwise/Shiftwise_Backend/internal/models"
)

// UserServiceInterface defines the methods required from the roster
// management service.
type UserServiceInterface interface {
	// CreateUser registers a new staff member in awaiting_activation.
	CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error)

	// GetUserByID retrieves a user without their credential material.
	GetUserByID(ctx context.Context, id int64) (*models.User, error)

	// ListUsers returns one page of the roster with the total count.
	ListUsers(ctx context.Context, page, pageSize int) ([]*models.User, int, error)

	// UpdateUser applies the supplied roster attributes.
	UpdateUser(ctx context.Context, id int64, req *models.UpdateUserRequest) (*models.User, error)

	// UpdateUserStatus moves an account to a new lifecycle state.
	UpdateUserStatus(ctx context.Context, id int64, status models.AccountStatus) error

	// DeleteUser removes a staff member and their reset requests.
	DeleteUser(ctx context.Context, id int64) error
}
