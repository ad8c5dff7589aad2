package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shiftwise/Shiftwise_Backend/internal/models"
	"github.com/shiftwise/Shiftwise_Backend/internal/repository"
	"github.com/shiftwise/Shiftwise_Backend/internal/utils"
)

// ActivityService handles scheduled roster activities and the visibility
// rules that decide which staff see them.
type ActivityService struct {
	activityRepo repository.ActivityRepository
	sectorRepo   repository.SectorRepository
	userRepo     repository.UserRepository
}

// NewActivityService creates a new ActivityService
func NewActivityService(
	activityRepo repository.ActivityRepository,
	sectorRepo repository.SectorRepository,
	userRepo repository.UserRepository,
) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		sectorRepo:   sectorRepo,
		userRepo:     userRepo,
	}
}

// CreateActivity schedules a new activity in a sector
func (s *ActivityService) CreateActivity(ctx context.Context, createdBy int64, req *models.CreateActivityRequest) (*models.Activity, error) {
	if !req.EndsAt.After(req.StartsAt) {
		return nil, utils.NewValidationError("ends_at", "activity must end after it starts")
	}
	if !req.Visibility.IsValid() {
		return nil, utils.NewValidationError("visibility", "unknown visibility level")
	}

	activity := &models.Activity{
		SectorID:    req.SectorID,
		Title:       req.Title,
		Description: req.Description,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Visibility:  req.Visibility,
		CreatedBy:   createdBy,
	}

	if err := s.activityRepo.Create(ctx, activity); err != nil {
		return nil, err
	}

	return activity, nil
}

// GetActivityByID retrieves an activity
func (s *ActivityService) GetActivityByID(ctx context.Context, id int64) (*models.Activity, error) {
	return s.activityRepo.GetByID(ctx, id)
}

// ListVisibleForUser returns the activities the given user may see within
// the optional time window. Visibility is resolved from the user's sector:
// sector-scoped activities in their own sector, department-scoped ones in
// their sector's department, and company-wide ones always. A user without a
// sector sees only company-wide activities.
func (s *ActivityService) ListVisibleForUser(ctx context.Context, userID int64, from, to *time.Time) ([]*models.Activity, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	filter := repository.ActivityFilter{From: from, To: to}

	if user.SectorID != nil {
		sector, err := s.sectorRepo.GetByID(ctx, *user.SectorID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve user sector: %w", err)
		}
		filter.SectorID = user.SectorID
		filter.DepartmentID = &sector.DepartmentID
	}

	return s.activityRepo.ListVisible(ctx, filter)
}

// UpdateActivity applies the supplied attributes to an activity
func (s *ActivityService) UpdateActivity(ctx context.Context, id int64, req *models.UpdateActivityRequest) (*models.Activity, error) {
	activity, err := s.activityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		activity.Title = req.Title
	}
	if req.Description != nil {
		activity.Description = req.Description
	}
	if req.StartsAt != nil {
		activity.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		activity.EndsAt = *req.EndsAt
	}
	if req.Visibility != nil {
		if !req.Visibility.IsValid() {
			return nil, utils.NewValidationError("visibility", "unknown visibility level")
		}
		activity.Visibility = *req.Visibility
	}

	if !activity.EndsAt.After(activity.StartsAt) {
		return nil, utils.NewValidationError("ends_at", "activity must end after it starts")
	}

	if err := s.activityRepo.Update(ctx, activity); err != nil {
		return nil, err
	}

	return activity, nil
}

// DeleteActivity removes an activity
func (s *ActivityService) DeleteActivity(ctx context.Context, id int64) error {
	return s.activityRepo.Delete(ctx, id)
}
