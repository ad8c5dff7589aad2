package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/shiftwise/Shiftwise_Backend/internal/auth"
	"github.com/shiftwise/Shiftwise_Backend/internal/models"
	"github.com/shiftwise/Shiftwise_Backend/internal/repository"
	"github.com/shiftwise/Shiftwise_Backend/internal/utils"
)

// UserService handles staff roster management operations
type UserService struct {
	userRepo    repository.UserRepository
	sectorRepo  repository.SectorRepository
	passwordCfg *auth.PasswordConfig
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo repository.UserRepository,
	sectorRepo repository.SectorRepository,
	passwordCfg *auth.PasswordConfig,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		sectorRepo:  sectorRepo,
		passwordCfg: passwordCfg,
	}
}

// CreateUser registers a new staff member. The account starts in
// awaiting_activation and cannot log in until an admin activates it.
func (s *UserService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	nationalID := utils.NormalizeNationalID(req.NationalID)

	existsNationalID, err := s.userRepo.ExistsByNationalID(ctx, nationalID)
	if err != nil {
		return nil, fmt.Errorf("failed to check national id existence: %w", err)
	}
	if existsNationalID {
		return nil, utils.NewDuplicateError("User", "national_id", utils.MaskNationalID(nationalID))
	}

	existsEmail, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if existsEmail {
		return nil, utils.NewDuplicateError("User", "email", req.Email)
	}

	if req.SectorID != nil {
		if _, err := s.sectorRepo.GetByID(ctx, *req.SectorID); err != nil {
			return nil, err
		}
	}

	passwordHash, salt, err := auth.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(nationalID, req.Email, req.DisplayName)
	user.PasswordHash = passwordHash
	user.Salt = salt
	user.Role = req.Role
	user.SectorID = req.SectorID
	user.Position = req.Position
	user.AccountStatus = models.StatusAwaitingActivation

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	utils.LogAuth("user_created", utils.FormatInt64(user.ID), user.Email, true, "")

	return user.Sanitize(), nil
}

// GetUserByID retrieves a user without their credential material
func (s *UserService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Sanitize(), nil
}

// ListUsers returns one page of the roster with the total count
func (s *UserService) ListUsers(ctx context.Context, page, pageSize int) ([]*models.User, int, error) {
	users, total, err := s.userRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	sanitized := make([]*models.User, len(users))
	for i, user := range users {
		sanitized[i] = user.Sanitize()
	}

	return sanitized, total, nil
}

// UpdateUser applies the supplied roster attributes. Empty fields keep their
// current value.
func (s *UserService) UpdateUser(ctx context.Context, id int64, req *models.UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != "" {
		user.Email = req.Email
	}
	if req.DisplayName != "" {
		user.DisplayName = req.DisplayName
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.SectorID != nil {
		if _, err := s.sectorRepo.GetByID(ctx, *req.SectorID); err != nil {
			return nil, err
		}
		user.SectorID = req.SectorID
	}
	if req.Position != nil {
		user.Position = req.Position
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user.Sanitize(), nil
}

// UpdateUserStatus moves an account to a new lifecycle state
func (s *UserService) UpdateUserStatus(ctx context.Context, id int64, status models.AccountStatus) error {
	if !status.IsValid() {
		return utils.NewValidationError("status", "unknown account status")
	}

	if err := s.userRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	log.Info().
		Int64("user_id", id).
		Str("status", string(status)).
		Msg("Account status updated")

	return nil
}

// DeleteUser removes a staff member and their reset requests
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	return s.userRepo.Delete(ctx, id)
}
